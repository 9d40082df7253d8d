package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mrops-br/storefront-api/internal/app/cart"
	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/app/notify"
	"github.com/mrops-br/storefront-api/internal/app/session"
	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CartService handles cart and cart modal use cases for one visitor session
type CartService struct {
	products       domain.ProductRepository
	tracer         trace.Tracer
	logger         *slog.Logger
	toastLog       notify.Notifier
	cartOperations metric.Int64Counter
	cartMutations  metric.Int64Counter
	cartSubtotal   metric.Float64Histogram
	checkouts      metric.Int64Counter
}

// NewCartService creates a new cart service
func NewCartService(
	products domain.ProductRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CartService {
	cartOperations, _ := meter.Int64Counter(
		"cart.operations",
		metric.WithDescription("Total number of cart operations"),
	)

	cartMutations, _ := meter.Int64Counter(
		"cart.mutations",
		metric.WithDescription("Total number of applied cart mutations"),
	)

	cartSubtotal, _ := meter.Float64Histogram(
		"cart.subtotal",
		metric.WithDescription("Cart subtotal after each applied mutation"),
	)

	checkouts, _ := meter.Int64Counter(
		"cart.checkouts.total",
		metric.WithDescription("Total number of completed checkouts"),
	)

	return &CartService{
		products:       products,
		tracer:         tracer,
		logger:         logger,
		toastLog:       notify.NewLogNotifier(logger),
		cartOperations: cartOperations,
		cartMutations:  cartMutations,
		cartSubtotal:   cartSubtotal,
		checkouts:      checkouts,
	}
}

// Observe subscribes the cart metrics to a new session's store. It is
// installed as a session.Hook.
func (s *CartService) Observe(sess *session.Session) {
	sess.Cart.Subscribe(func(snap domain.CartSnapshot) {
		ctx := context.Background()
		s.cartMutations.Add(ctx, 1)
		s.cartSubtotal.Record(ctx, snap.Subtotal.InexactFloat64())
	})
}

// GetCart returns the session's cart
func (s *CartService) GetCart(ctx context.Context, sess *session.Session) *dto.CartResponse {
	ctx, span := s.start(ctx, "CartService.GetCart", sess)
	defer span.End()

	snap := sess.Cart.Snapshot()
	s.finish(ctx, span, "read", "success", snap)
	return dto.ToCartResponse(snap)
}

// AddItem puts a catalog product in the cart
func (s *CartService) AddItem(ctx context.Context, sess *session.Session, req *dto.AddItemRequest) (*dto.CartResponse, error) {
	ctx, span := s.start(ctx, "CartService.AddItem", sess)
	defer span.End()

	quantity := dto.ParseQuantity(req.Quantity, 1)
	span.SetAttributes(
		attribute.String("product.id", req.ProductID),
		attribute.Int("cart.quantity", quantity),
	)

	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product lookup failed")
		s.logger.WarnContext(ctx, "Cannot add product to cart",
			slog.String("product_id", req.ProductID),
			slog.String("error", err.Error()),
		)
		s.notifier(sess).Notify(ctx, notify.KindError, "This product is no longer available")
		s.record(ctx, "add", "not_found")
		return nil, fmt.Errorf("add %q to cart: %w", req.ProductID, err)
	}

	snap := sess.Cart.AddItem(*product, quantity)
	s.notifier(sess).Notify(ctx, notify.KindSuccess, product.Name+" added to cart")

	s.logger.InfoContext(ctx, "Item added to cart",
		slog.String("product_id", product.ID),
		slog.Int("quantity", quantity),
		slog.Int("item_count", snap.ItemCount),
	)

	s.finish(ctx, span, "add", "success", snap)
	return dto.ToCartResponse(snap), nil
}

// UpdateQuantity sets a line's quantity; zero or less removes it. Unknown
// products leave the cart unchanged.
func (s *CartService) UpdateQuantity(ctx context.Context, sess *session.Session, productID string, quantity int) *dto.CartResponse {
	ctx, span := s.start(ctx, "CartService.UpdateQuantity", sess)
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", productID),
		attribute.Int("cart.quantity", quantity),
	)

	snap, applied := sess.Cart.UpdateQuantity(productID, quantity)
	s.finish(ctx, span, "update", appliedResult(applied), snap)
	return dto.ToCartResponse(snap)
}

// RemoveItem drops a line. Unknown products leave the cart unchanged.
func (s *CartService) RemoveItem(ctx context.Context, sess *session.Session, productID string) *dto.CartResponse {
	ctx, span := s.start(ctx, "CartService.RemoveItem", sess)
	defer span.End()

	span.SetAttributes(attribute.String("product.id", productID))

	name := "Item"
	if item, ok := sess.Cart.Snapshot().Find(productID); ok {
		name = item.Name
	}

	snap, applied := sess.Cart.RemoveItem(productID)
	if applied {
		s.notifier(sess).Notify(ctx, notify.KindInfo, name+" removed from cart")
	}

	s.finish(ctx, span, "remove", appliedResult(applied), snap)
	return dto.ToCartResponse(snap)
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, sess *session.Session) *dto.CartResponse {
	ctx, span := s.start(ctx, "CartService.Clear", sess)
	defer span.End()

	snap := sess.Cart.Clear()
	s.finish(ctx, span, "clear", "success", snap)
	return dto.ToCartResponse(snap)
}

// Modal returns the cart modal as the layout renders it
func (s *CartService) Modal(ctx context.Context, sess *session.Session) *dto.ModalResponse {
	_, span := s.start(ctx, "CartService.Modal", sess)
	defer span.End()

	return modalResponse(sess.Modal)
}

// OpenModal handles the header cart icon click
func (s *CartService) OpenModal(ctx context.Context, sess *session.Session) *dto.ModalResponse {
	ctx, span := s.start(ctx, "CartService.OpenModal", sess)
	defer span.End()

	snap := sess.Modal.Open()
	s.finish(ctx, span, "modal_open", "success", snap)
	return modalResponse(sess.Modal)
}

// CloseModal handles the close button and backdrop click
func (s *CartService) CloseModal(ctx context.Context, sess *session.Session) *dto.ModalResponse {
	ctx, span := s.start(ctx, "CartService.CloseModal", sess)
	defer span.End()

	sess.Modal.Close()
	s.record(ctx, "modal_close", "success")
	span.SetStatus(codes.Ok, "Modal closed")
	return modalResponse(sess.Modal)
}

// Checkout completes the purchase of the cart contents, empties the cart and
// closes the modal
func (s *CartService) Checkout(ctx context.Context, sess *session.Session) (*dto.CheckoutResponse, error) {
	ctx, span := s.start(ctx, "CartService.Checkout", sess)
	defer span.End()

	final, err := sess.Modal.Checkout()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Checkout failed")
		s.notifier(sess).Notify(ctx, notify.KindError, "Your cart is empty")
		s.record(ctx, "checkout", resultFor(err))
		return nil, err
	}

	s.checkouts.Add(ctx, 1)
	s.notifier(sess).Notify(ctx, notify.KindSuccess, "Thank you for your purchase!")

	s.logger.InfoContext(ctx, "Checkout completed",
		slog.Int("item_count", final.ItemCount),
		slog.String("subtotal", dto.FormatMoney(final.Subtotal)),
	)

	s.finish(ctx, span, "checkout", "success", final)
	return &dto.CheckoutResponse{
		Order: dto.ToCartResponse(final),
		Modal: modalResponse(sess.Modal),
	}, nil
}

// Toasts returns the session's visible toasts
func (s *CartService) Toasts(ctx context.Context, sess *session.Session) []dto.ToastResponse {
	_, span := s.start(ctx, "CartService.Toasts", sess)
	defer span.End()

	return dto.ToToastResponseList(sess.Toasts.Active())
}

func (s *CartService) notifier(sess *session.Session) notify.Notifier {
	return notify.Multi{sess.Toasts, s.toastLog}
}

func (s *CartService) start(ctx context.Context, name string, sess *session.Session) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("session.id", sess.ID)))
}

func (s *CartService) finish(ctx context.Context, span trace.Span, operation, result string, snap domain.CartSnapshot) {
	span.SetAttributes(
		attribute.Int("cart.item_count", snap.ItemCount),
		attribute.String("cart.subtotal", dto.FormatMoney(snap.Subtotal)),
	)
	s.record(ctx, operation, result)
	span.SetStatus(codes.Ok, operation+" "+result)
}

func (s *CartService) record(ctx context.Context, operation, result string) {
	s.cartOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

func modalResponse(m *cart.Modal) *dto.ModalResponse {
	view, open := m.View()
	if !open {
		return &dto.ModalResponse{Open: false}
	}
	return &dto.ModalResponse{Open: true, Cart: dto.ToCartResponse(view)}
}

func appliedResult(applied bool) string {
	if applied {
		return "success"
	}
	return "noop"
}

func resultFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return "empty"
	case errors.Is(err, domain.ErrProductNotFound):
		return "not_found"
	default:
		return "failure"
	}
}
