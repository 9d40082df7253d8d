package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mrops-br/storefront-api/internal/app/session"
	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SessionRepository keeps visitor sessions in process memory. Nothing
// survives a restart.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
	factory  *session.Factory
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewSessionRepository creates a session repository using factory for new
// sessions
func NewSessionRepository(factory *session.Factory, tracer trace.Tracer, logger *slog.Logger) *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]*session.Session),
		factory:  factory,
		tracer:   tracer,
		logger:   logger,
	}
}

// Create starts a new session
func (r *SessionRepository) Create(ctx context.Context) (*session.Session, error) {
	ctx, span := r.tracer.Start(ctx, "SessionRepository.Create")
	defer span.End()

	s := r.factory.New()

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	span.SetAttributes(attribute.String("session.id", s.ID))
	r.logger.DebugContext(ctx, "Session created",
		slog.String("session_id", s.ID),
	)

	span.SetStatus(codes.Ok, "Session created")
	return s, nil
}

// FindByID retrieves a live session
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*session.Session, error) {
	_, span := r.tracer.Start(ctx, "SessionRepository.FindByID")
	defer span.End()

	r.mu.RLock()
	s, exists := r.sessions[id]
	r.mu.RUnlock()

	if !exists {
		span.SetStatus(codes.Error, "Session not found")
		return nil, domain.ErrSessionNotFound
	}

	span.SetStatus(codes.Ok, "Session found")
	return s, nil
}

// EvictIdle ends every session last seen before the cutoff
func (r *SessionRepository) EvictIdle(ctx context.Context, before time.Time) (int, error) {
	ctx, span := r.tracer.Start(ctx, "SessionRepository.EvictIdle")
	defer span.End()

	var evicted []*session.Session

	r.mu.Lock()
	for id, s := range r.sessions {
		if s.LastSeen().Before(before) {
			evicted = append(evicted, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range evicted {
		s.Close()
	}

	span.SetAttributes(attribute.Int("session.evicted", len(evicted)))
	if len(evicted) > 0 {
		r.logger.DebugContext(ctx, "Sessions evicted from repository",
			slog.Int("count", len(evicted)),
		)
	}
	return len(evicted), nil
}

// Count returns the number of live sessions
func (r *SessionRepository) Count(ctx context.Context) (int, error) {
	_, span := r.tracer.Start(ctx, "SessionRepository.Count")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions), nil
}
