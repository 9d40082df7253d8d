package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidProductName  = errors.New("product name is required")
	ErrInvalidProductPrice = errors.New("product price must be positive")
)

// Product represents a catalog entry that visitors can put in their cart
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	ImageURL    string
	Price       decimal.Decimal
	Featured    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct creates a new product with validation
func NewProduct(name, description, category, imageURL string, price decimal.Decimal, featured bool) (*Product, error) {
	now := time.Now()
	product := &Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(name),
		Description: description,
		Category:    category,
		ImageURL:    imageURL,
		Price:       price,
		Featured:    featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

// Validate performs business validation on the product
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrInvalidProductName
	}
	if !p.Price.IsPositive() {
		return ErrInvalidProductPrice
	}
	return nil
}
