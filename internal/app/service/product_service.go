package service

import (
	"context"
	"log/slog"

	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ProductService handles catalog use cases
type ProductService struct {
	repo                  domain.ProductRepository
	tracer                trace.Tracer
	logger                *slog.Logger
	productCreatedCounter metric.Int64Counter
	productOperations     metric.Int64Counter
}

// NewProductService creates a new product service
func NewProductService(
	repo domain.ProductRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductService {
	productCreatedCounter, _ := meter.Int64Counter(
		"products.created.total",
		metric.WithDescription("Total number of products created"),
	)

	productOperations, _ := meter.Int64Counter(
		"products.operations",
		metric.WithDescription("Total number of product operations"),
	)

	return &ProductService{
		repo:                  repo,
		tracer:                tracer,
		logger:                logger,
		productCreatedCounter: productCreatedCounter,
		productOperations:     productOperations,
	}
}

// CreateProduct adds a product to the catalog
func (s *ProductService) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.CreateProduct")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.name", req.Name),
		attribute.String("product.price", req.Price.String()),
	)

	s.logger.InfoContext(ctx, "Creating product",
		slog.String("name", req.Name),
		slog.String("price", req.Price.String()),
	)

	product, err := domain.NewProduct(req.Name, req.Description, req.Category, req.ImageURL, req.Price, req.Featured)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Validation failed")
		s.logger.WarnContext(ctx, "Product validation failed",
			slog.String("error", err.Error()),
		)
		s.record(ctx, "create", "invalid")
		return nil, err
	}

	span.SetAttributes(attribute.String("product.id", product.ID))

	if err := s.repo.Create(ctx, product); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to store product")
		s.logger.ErrorContext(ctx, "Failed to store product",
			slog.String("error", err.Error()),
		)
		s.record(ctx, "create", "failure")
		return nil, err
	}

	s.productCreatedCounter.Add(ctx, 1)
	s.record(ctx, "create", "success")

	s.logger.InfoContext(ctx, "Product created successfully",
		slog.String("product_id", product.ID),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return dto.ToProductResponse(product), nil
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProductByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product not found")
		s.record(ctx, "read", "not_found")
		return nil, err
	}

	s.record(ctx, "read", "success")

	span.SetStatus(codes.Ok, "Product retrieved successfully")
	return dto.ToProductResponse(product), nil
}

// ListProducts retrieves the whole catalog
func (s *ProductService) ListProducts(ctx context.Context) ([]*dto.ProductResponse, error) {
	return s.list(ctx, "list", s.repo.FindAll)
}

// ListFeatured retrieves the products for the home page products section
func (s *ProductService) ListFeatured(ctx context.Context) ([]*dto.ProductResponse, error) {
	return s.list(ctx, "list_featured", s.repo.FindFeatured)
}

func (s *ProductService) list(
	ctx context.Context,
	operation string,
	find func(context.Context) ([]*domain.Product, error),
) ([]*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.List",
		trace.WithAttributes(attribute.String("operation", operation)),
	)
	defer span.End()

	products, err := find(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to retrieve products")
		s.logger.ErrorContext(ctx, "Failed to list products",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		s.record(ctx, operation, "failure")
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.record(ctx, operation, "success")

	s.logger.InfoContext(ctx, "Products listed successfully",
		slog.String("operation", operation),
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products listed successfully")
	return dto.ToProductResponseList(products), nil
}

func (s *ProductService) record(ctx context.Context, operation, result string) {
	s.productOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}
