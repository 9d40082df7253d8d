// Package notify implements the transient toast notifications shown to a
// visitor. Delivery is fire-and-forget.
package notify

import (
	"context"
	"log/slog"
	"time"
)

// Kind is the toast style.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Toast is one transient message.
type Toast struct {
	ID        string
	Kind      Kind
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// ExpiresAt is when the toast stops being shown.
func (t Toast) ExpiresAt() time.Time {
	return t.CreatedAt.Add(t.Duration)
}

// Notifier accepts toasts. Implementations must not block the caller.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, message string)
}

// Multi fans a toast out to several notifiers.
type Multi []Notifier

// Notify passes the toast to every notifier in order
func (m Multi) Notify(ctx context.Context, kind Kind, message string) {
	for _, n := range m {
		n.Notify(ctx, kind, message)
	}
}

// LogNotifier records toasts in the structured log.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that writes to logger
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the toast; errors at warn level, everything else at debug
func (n *LogNotifier) Notify(ctx context.Context, kind Kind, message string) {
	level := slog.LevelDebug
	if kind == KindError {
		level = slog.LevelWarn
	}
	n.logger.Log(ctx, level, "Toast emitted",
		slog.String("toast.kind", string(kind)),
		slog.String("toast.message", message),
	)
}
