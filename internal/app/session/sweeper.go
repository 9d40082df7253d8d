package session

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper evicts sessions that have been idle for longer than TTL
type Sweeper struct {
	repo     Repository
	ttl      time.Duration
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewSweeper creates a sweeper checking every interval
func NewSweeper(repo Repository, ttl, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		repo:     repo,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run sweeps until ctx is cancelled
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.InfoContext(ctx, "Session sweeper started",
		slog.Duration("idle_ttl", s.ttl),
		slog.Duration("interval", s.interval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "Session sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs a single eviction pass
func (s *Sweeper) Sweep(ctx context.Context) int {
	evicted, err := s.repo.EvictIdle(ctx, s.now().Add(-s.ttl))
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to evict idle sessions",
			slog.String("error", err.Error()),
		)
		return 0
	}
	if evicted > 0 {
		s.logger.InfoContext(ctx, "Idle sessions evicted",
			slog.Int("count", evicted),
		)
	}
	return evicted
}
