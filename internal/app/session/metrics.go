package session

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

// RegisterMetrics exports the number of live sessions in repo as the
// sessions.active gauge
func RegisterMetrics(meter metric.Meter, repo Repository) error {
	_, err := meter.Int64ObservableGauge(
		"sessions.active",
		metric.WithDescription("Number of live visitor sessions"),
		metric.WithInt64Callback(func(ctx context.Context, o metric.Int64Observer) error {
			n, err := repo.Count(ctx)
			if err != nil {
				return err
			}
			o.Observe(int64(n))
			return nil
		}),
	)
	return err
}
