// Package session models one visitor's browsing session: an independent
// cart store, the cart modal bound to it, and the visitor's toast feed.
package session

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mrops-br/storefront-api/internal/app/cart"
	"github.com/mrops-br/storefront-api/internal/app/notify"
)

// Config sizes the per-session state
type Config struct {
	ToastCapacity  int
	ToastDurations notify.Durations
}

// Session is the server-side state of one visitor
type Session struct {
	ID        string
	Cart      *cart.Store
	Modal     *cart.Modal
	Toasts    *notify.Feed
	CreatedAt time.Time

	lastSeen atomic.Int64
}

// New creates a session with an empty cart and a closed modal
func New(id string, cfg Config) *Session {
	store := cart.NewStore()
	s := &Session{
		ID:        id,
		Cart:      store,
		Modal:     cart.NewModal(store),
		Toasts:    notify.NewFeed(cfg.ToastCapacity, cfg.ToastDurations),
		CreatedAt: time.Now(),
	}
	s.Touch(s.CreatedAt)
	return s
}

// Touch records activity at now
func (s *Session) Touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// LastSeen returns the time of the latest activity
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Close detaches the modal from the cart. The session must not be used
// afterwards.
func (s *Session) Close() {
	s.Modal.Release()
}

// Hook runs once for every new session, before it is handed out
type Hook func(*Session)

// Factory creates sessions with fresh random ids
type Factory struct {
	cfg   Config
	hooks []Hook
}

// NewFactory creates a session factory
func NewFactory(cfg Config, hooks ...Hook) *Factory {
	return &Factory{cfg: cfg, hooks: hooks}
}

// New creates a session and runs the hooks on it
func (f *Factory) New() *Session {
	s := New(uuid.NewString(), f.cfg)
	for _, hook := range f.hooks {
		hook(s)
	}
	return s
}

// Repository defines the contract for session storage
type Repository interface {
	Create(ctx context.Context) (*Session, error)
	FindByID(ctx context.Context, id string) (*Session, error)
	EvictIdle(ctx context.Context, before time.Time) (int, error)
	Count(ctx context.Context) (int, error)
}

type contextKey struct{}

// WithContext returns a copy of ctx carrying s
func WithContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by WithContext
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok
}
