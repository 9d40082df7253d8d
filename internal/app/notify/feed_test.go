package notify

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestFeed(capacity int) (*Feed, *clock) {
	c := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	f := NewFeed(capacity, DefaultDurations)
	f.now = c.now
	return f, c
}

func TestFeed_DurationsByKind(t *testing.T) {
	f, _ := newTestFeed(10)
	ctx := context.Background()

	f.Notify(ctx, KindSuccess, "Added to cart")
	f.Notify(ctx, KindError, "Product not found")

	toasts := f.Active()
	require.Len(t, toasts, 2)
	assert.Equal(t, 3*time.Second, toasts[0].Duration)
	assert.Equal(t, 4*time.Second, toasts[1].Duration)
	assert.NotEqual(t, toasts[0].ID, toasts[1].ID)
}

func TestFeed_Expiry(t *testing.T) {
	f, c := newTestFeed(10)
	ctx := context.Background()

	f.Notify(ctx, KindSuccess, "short")
	f.Notify(ctx, KindInfo, "long")

	c.advance(3 * time.Second)
	toasts := f.Active()
	require.Len(t, toasts, 1)
	assert.Equal(t, "long", toasts[0].Message)

	c.advance(time.Second)
	assert.Empty(t, f.Active())
}

func TestFeed_DropsOldestWhenFull(t *testing.T) {
	f, _ := newTestFeed(2)
	ctx := context.Background()

	f.Notify(ctx, KindInfo, "one")
	f.Notify(ctx, KindInfo, "two")
	f.Notify(ctx, KindInfo, "three")

	toasts := f.Active()
	require.Len(t, toasts, 2)
	assert.Equal(t, "two", toasts[0].Message)
	assert.Equal(t, "three", toasts[1].Message)
}

func TestNewFeed_Defaults(t *testing.T) {
	f := NewFeed(0, Durations{})
	assert.Equal(t, 1, f.capacity)
	assert.Equal(t, DefaultDurations.Default, f.durations.forKind(KindSuccess))
}

func TestMulti_FansOut(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f, _ := newTestFeed(5)

	n := Multi{f, NewLogNotifier(logger)}
	n.Notify(context.Background(), KindError, "Checkout failed")

	assert.Len(t, f.Active(), 1)
	assert.Contains(t, buf.String(), `"toast.message":"Checkout failed"`)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}
