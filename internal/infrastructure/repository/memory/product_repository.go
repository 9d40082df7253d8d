package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProductRepository is an in-memory implementation of domain.ProductRepository.
// Listings come back in insertion order so the storefront layout is stable.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	order    []string
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		products: make(map[string]*domain.Product),
		tracer:   tracer,
		logger:   logger,
	}
}

// Create stores a new product, replacing any product with the same ID
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Create")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", product.ID),
		attribute.String("product.name", product.Name),
	)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; !exists {
		r.order = append(r.order, product.ID)
	}
	r.products[product.ID] = product

	r.logger.InfoContext(ctx, "Product created in repository",
		slog.String("product_id", product.ID),
		slog.String("product_name", product.Name),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return nil
}

// FindByID retrieves a product by ID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		r.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", id),
		)
		return nil, domain.ErrProductNotFound
	}

	span.SetStatus(codes.Ok, "Product found")
	return product, nil
}

// FindAll retrieves all products
func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	return r.find(ctx, "ProductRepository.FindAll", func(*domain.Product) bool { return true })
}

// FindFeatured retrieves the products shown in the home page products section
func (r *ProductRepository) FindFeatured(ctx context.Context) ([]*domain.Product, error) {
	return r.find(ctx, "ProductRepository.FindFeatured", func(p *domain.Product) bool { return p.Featured })
}

func (r *ProductRepository) find(ctx context.Context, spanName string, keep func(*domain.Product) bool) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, spanName)
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.order))
	for _, id := range r.order {
		if product := r.products[id]; keep(product) {
			products = append(products, product)
		}
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))

	r.logger.DebugContext(ctx, "Products retrieved from repository",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}
