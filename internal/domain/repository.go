package domain

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the contract for catalog storage
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
	FindFeatured(ctx context.Context) ([]*Product, error)
}

// SubscriberRepository defines the contract for newsletter signups
type SubscriberRepository interface {
	Create(ctx context.Context, subscriber *Subscriber) error
	FindByEmail(ctx context.Context, email string) (*Subscriber, error)
	Count(ctx context.Context) (int, error)
}
