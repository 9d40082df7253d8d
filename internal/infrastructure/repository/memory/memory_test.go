package memory

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/mrops-br/storefront-api/internal/app/session"
	"github.com/mrops-br/storefront-api/internal/domain"
)

var (
	tracer = noop.NewTracerProvider().Tracer("test")
	logger = slog.New(slog.DiscardHandler)
)

func TestProductRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(tracer, logger)

	p, err := domain.NewProduct("Kit", "", "components", "", decimal.NewFromInt(5), true)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Same(t, p, got)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductRepository_ListingsKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(tracer, logger)
	require.NoError(t, SeedProducts(ctx, repo))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(catalog))
	for i, p := range all {
		assert.Equal(t, catalog[i].name, p.Name)
	}

	featured, err := repo.FindFeatured(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 4)
	for _, p := range featured {
		assert.True(t, p.Featured)
	}
}

func TestSubscriberRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSubscriberRepository(tracer, logger)

	sub, err := domain.NewSubscriber("Reader@Example.com")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, sub))

	dup, err := domain.NewSubscriber("reader@example.com")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrAlreadySubscribed)

	got, err := repo.FindByEmail(ctx, "reader@example.com")
	require.NoError(t, err)
	assert.Same(t, sub, got)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrSubscriberNotFound)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(session.NewFactory(session.Config{}), tracer, logger)

	s, err := repo.Create(ctx)
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = repo.FindByID(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepository_EvictIdle(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(session.NewFactory(session.Config{}), tracer, logger)
	now := time.Now()

	idle, err := repo.Create(ctx)
	require.NoError(t, err)
	idle.Touch(now.Add(-time.Hour))

	active, err := repo.Create(ctx)
	require.NoError(t, err)
	active.Touch(now)

	evicted, err := repo.EvictIdle(ctx, now.Add(-30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, evicted)

	_, err = repo.FindByID(ctx, idle.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = repo.FindByID(ctx, active.ID)
	assert.NoError(t, err)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
