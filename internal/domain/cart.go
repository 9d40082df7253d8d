package domain

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrSessionNotFound = errors.New("session not found")
)

// MaxQuantity caps the quantity of a line and the item count of a cart.
const MaxQuantity = math.MaxInt32

// AddQuantity returns a+b for non-negative quantities, saturating at
// MaxQuantity.
func AddQuantity(a, b int) int {
	if b > MaxQuantity-a {
		return MaxQuantity
	}
	return a + b
}

// LineItem is one product entry in a cart. Quantity is always at least 1
// while the item is held by a cart.
type LineItem struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	ImageURL  string
}

// Total returns unit price times quantity.
func (i LineItem) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartSnapshot is a read-only view of a cart at one point in time.
type CartSnapshot struct {
	// Version increases with every applied mutation of the owning cart.
	Version   uint64
	Items     []LineItem
	ItemCount int
	Subtotal  decimal.Decimal
}

// NewCartSnapshot derives the totals from items. The slice is used as is,
// callers hand over a copy they no longer mutate.
func NewCartSnapshot(items []LineItem) CartSnapshot {
	snap := CartSnapshot{
		Items:    items,
		Subtotal: decimal.Zero,
	}
	for _, item := range items {
		snap.ItemCount = AddQuantity(snap.ItemCount, item.Quantity)
		snap.Subtotal = snap.Subtotal.Add(item.Total())
	}
	return snap
}

// IsEmpty reports whether the snapshot holds no items.
func (s CartSnapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

// Find returns the line item for productID, if any.
func (s CartSnapshot) Find(productID string) (LineItem, bool) {
	for _, item := range s.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return LineItem{}, false
}
