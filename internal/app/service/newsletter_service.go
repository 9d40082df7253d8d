package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// NewsletterService handles newsletter signups
type NewsletterService struct {
	repo    domain.SubscriberRepository
	tracer  trace.Tracer
	logger  *slog.Logger
	signups metric.Int64Counter
}

// NewNewsletterService creates a new newsletter service
func NewNewsletterService(
	repo domain.SubscriberRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *NewsletterService {
	signups, _ := meter.Int64Counter(
		"newsletter.signups",
		metric.WithDescription("Total number of newsletter signup attempts"),
	)

	_, _ = meter.Int64ObservableGauge(
		"newsletter.subscribers",
		metric.WithDescription("Number of newsletter subscribers"),
		metric.WithInt64Callback(func(ctx context.Context, o metric.Int64Observer) error {
			n, err := repo.Count(ctx)
			if err != nil {
				return err
			}
			o.Observe(int64(n))
			return nil
		}),
	)

	return &NewsletterService{
		repo:    repo,
		tracer:  tracer,
		logger:  logger,
		signups: signups,
	}
}

// Subscribe signs an address up for the newsletter
func (s *NewsletterService) Subscribe(ctx context.Context, req *dto.SubscribeRequest) (*dto.SubscribeResponse, error) {
	ctx, span := s.tracer.Start(ctx, "NewsletterService.Subscribe")
	defer span.End()

	subscriber, err := domain.NewSubscriber(req.Email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Validation failed")
		s.record(ctx, "invalid")
		return nil, err
	}

	_, err = s.repo.FindByEmail(ctx, subscriber.Email)
	switch {
	case err == nil:
		err = domain.ErrAlreadySubscribed
	case errors.Is(err, domain.ErrSubscriberNotFound):
		err = s.repo.Create(ctx, subscriber)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to store subscriber")
		if errors.Is(err, domain.ErrAlreadySubscribed) {
			s.record(ctx, "duplicate")
		} else {
			s.logger.ErrorContext(ctx, "Failed to store subscriber",
				slog.String("error", err.Error()),
			)
			s.record(ctx, "failure")
		}
		return nil, err
	}

	s.record(ctx, "success")
	s.logger.InfoContext(ctx, "Newsletter subscription created")

	span.SetStatus(codes.Ok, "Subscribed")
	return &dto.SubscribeResponse{
		Email:        subscriber.Email,
		SubscribedAt: subscriber.SubscribedAt,
	}, nil
}

func (s *NewsletterService) record(ctx context.Context, result string) {
	s.signups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
