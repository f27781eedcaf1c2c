package executions

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records execution telemetry
type Metrics struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
}

func newExecutionMetrics(meter metric.Meter, m *manager) (*Metrics, error) {
	duration, err := meter.Float64Histogram(
		"sandboxd_executions_duration_seconds",
		metric.WithDescription("Duration of executions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	total, err := meter.Int64Counter(
		"sandboxd_executions_total",
		metric.WithDescription("Total number of finished executions"),
	)
	if err != nil {
		return nil, err
	}

	running, err := meter.Int64ObservableGauge(
		"sandboxd_executions_running",
		metric.WithDescription("Executions currently in flight"),
	)
	if err != nil {
		return nil, err
	}

	_, err = meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		o.ObserveInt64(running, int64(m.inFlight()))
		return nil
	}, running)
	if err != nil {
		return nil, err
	}

	return &Metrics{duration: duration, total: total}, nil
}

// record records a finished execution. kind is "async" or "quick".
func (m *Metrics) record(ctx context.Context, kind, status string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("status", status),
	)
	m.duration.Record(ctx, d.Seconds(), attrs)
	m.total.Add(ctx, 1, attrs)
}
