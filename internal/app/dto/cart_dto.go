package dto

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mrops-br/storefront-api/internal/app/notify"
	"github.com/mrops-br/storefront-api/internal/domain"
)

// AddItemRequest is the body of POST /cart/items
type AddItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  json.RawMessage `json:"quantity,omitempty"`
}

// UpdateQuantityRequest is the body of PUT /cart/items/{productID}
type UpdateQuantityRequest struct {
	Quantity json.RawMessage `json:"quantity"`
}

// ParseQuantity reads a quantity sent by the browser. Numbers and numeric
// strings are accepted and truncated toward zero; anything else yields
// fallback.
func ParseQuantity(raw json.RawMessage, fallback int) int {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return fallback
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	if f > domain.MaxQuantity {
		return domain.MaxQuantity
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

// LineItemResponse is one cart line
type LineItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
	ImageURL  string `json:"image_url,omitempty"`
}

// CartResponse is the snapshot of a cart
type CartResponse struct {
	Items     []LineItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Subtotal  string             `json:"subtotal"`
	Version   uint64             `json:"version"`
}

// ToCartResponse converts a cart snapshot
func ToCartResponse(snap domain.CartSnapshot) *CartResponse {
	items := make([]LineItemResponse, len(snap.Items))
	for i, item := range snap.Items {
		items[i] = LineItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: FormatMoney(item.UnitPrice),
			Quantity:  item.Quantity,
			LineTotal: FormatMoney(item.Total()),
			ImageURL:  item.ImageURL,
		}
	}
	return &CartResponse{
		Items:     items,
		ItemCount: snap.ItemCount,
		Subtotal:  FormatMoney(snap.Subtotal),
		Version:   snap.Version,
	}
}

// ModalResponse is the cart modal as rendered for the layout
type ModalResponse struct {
	Open bool          `json:"open"`
	Cart *CartResponse `json:"cart,omitempty"`
}

// CheckoutResponse is the result of a successful checkout
type CheckoutResponse struct {
	Order *CartResponse  `json:"order"`
	Modal *ModalResponse `json:"modal"`
}

// ToastResponse is one visible toast
type ToastResponse struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
	DurationMS int64     `json:"duration_ms"`
}

// ToToastResponseList converts toasts
func ToToastResponseList(toasts []notify.Toast) []ToastResponse {
	responses := make([]ToastResponse, len(toasts))
	for i, t := range toasts {
		responses[i] = ToastResponse{
			ID:         t.ID,
			Kind:       string(t.Kind),
			Message:    t.Message,
			CreatedAt:  t.CreatedAt,
			DurationMS: t.Duration.Milliseconds(),
		}
	}
	return responses
}
