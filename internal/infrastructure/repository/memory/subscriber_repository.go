package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SubscriberRepository is an in-memory implementation of
// domain.SubscriberRepository keyed by normalized email
type SubscriberRepository struct {
	mu          sync.RWMutex
	subscribers map[string]*domain.Subscriber
	tracer      trace.Tracer
	logger      *slog.Logger
}

// NewSubscriberRepository creates a new in-memory subscriber repository
func NewSubscriberRepository(tracer trace.Tracer, logger *slog.Logger) *SubscriberRepository {
	return &SubscriberRepository{
		subscribers: make(map[string]*domain.Subscriber),
		tracer:      tracer,
		logger:      logger,
	}
}

// Create stores a subscriber; an address can only be stored once
func (r *SubscriberRepository) Create(ctx context.Context, subscriber *domain.Subscriber) error {
	ctx, span := r.tracer.Start(ctx, "SubscriberRepository.Create")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.subscribers[subscriber.Email]; exists {
		span.RecordError(domain.ErrAlreadySubscribed)
		span.SetStatus(codes.Error, "Already subscribed")
		return domain.ErrAlreadySubscribed
	}
	r.subscribers[subscriber.Email] = subscriber

	r.logger.InfoContext(ctx, "Subscriber stored in repository")

	span.SetStatus(codes.Ok, "Subscriber created successfully")
	return nil
}

// FindByEmail retrieves a subscriber by normalized email
func (r *SubscriberRepository) FindByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	_, span := r.tracer.Start(ctx, "SubscriberRepository.FindByEmail")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	subscriber, exists := r.subscribers[email]
	if !exists {
		span.SetStatus(codes.Error, "Subscriber not found")
		return nil, domain.ErrSubscriberNotFound
	}

	span.SetStatus(codes.Ok, "Subscriber found")
	return subscriber, nil
}

// Count returns the number of subscribers
func (r *SubscriberRepository) Count(ctx context.Context) (int, error) {
	_, span := r.tracer.Start(ctx, "SubscriberRepository.Count")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subscribers), nil
}
