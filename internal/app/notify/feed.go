package notify

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Durations controls how long toasts stay visible.
type Durations struct {
	Default time.Duration
	Success time.Duration
}

// DefaultDurations matches the storefront layout: four seconds, three for
// success toasts.
var DefaultDurations = Durations{
	Default: 4 * time.Second,
	Success: 3 * time.Second,
}

func (d Durations) forKind(kind Kind) time.Duration {
	if kind == KindSuccess && d.Success > 0 {
		return d.Success
	}
	return d.Default
}

// Feed keeps the toasts of one session until they expire. When full, the
// oldest toast is dropped.
type Feed struct {
	mu        sync.Mutex
	toasts    []Toast
	capacity  int
	durations Durations
	now       func() time.Time
}

// NewFeed creates a feed holding at most capacity toasts.
func NewFeed(capacity int, durations Durations) *Feed {
	if capacity < 1 {
		capacity = 1
	}
	if durations.Default <= 0 {
		durations.Default = DefaultDurations.Default
	}
	return &Feed{
		capacity:  capacity,
		durations: durations,
		now:       time.Now,
	}
}

// Notify queues a toast, dropping the oldest one when the feed is full
func (f *Feed) Notify(_ context.Context, kind Kind, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	f.prune(now)
	if len(f.toasts) == f.capacity {
		f.toasts = slices.Delete(f.toasts, 0, 1)
	}
	f.toasts = append(f.toasts, Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: now,
		Duration:  f.durations.forKind(kind),
	})
}

// Active returns the toasts that have not expired, oldest first.
func (f *Feed) Active() []Toast {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.prune(f.now())
	return slices.Clone(f.toasts)
}

// prune must be called with mu held.
func (f *Feed) prune(now time.Time) {
	f.toasts = slices.DeleteFunc(f.toasts, func(t Toast) bool {
		return !now.Before(t.ExpiresAt())
	})
}
