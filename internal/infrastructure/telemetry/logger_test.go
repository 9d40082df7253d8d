package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/mrops-br/storefront-api/internal/infrastructure/config"
)

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestNewLogger_InjectsRequestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, &config.OTLPConfig{ServiceName: "storefront-api", Environment: "test"})

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	ctx = WithHTTPRoute(ctx, "/cart/items")
	ctx = WithSessionID(ctx, "session-1")
	logger.InfoContext(ctx, "Item added")

	record := decodeRecord(t, &buf)
	assert.Equal(t, "Item added", record["msg"])
	assert.Equal(t, "storefront-api", record["service.name"])
	assert.Equal(t, "/cart/items", record["http.route"])
	assert.Equal(t, "session-1", record["session.id"])
	assert.Equal(t, span.SpanContext().TraceID().String(), record["trace_id"])
}

func TestNewLogger_OmitsMissingContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, &config.OTLPConfig{ServiceName: "storefront-api"})

	logger.Info("plain")

	record := decodeRecord(t, &buf)
	assert.NotContains(t, record, "trace_id")
	assert.NotContains(t, record, "http.route")
	assert.NotContains(t, record, "session.id")
}
