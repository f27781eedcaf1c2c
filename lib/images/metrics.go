package images

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records image build telemetry
type Metrics struct {
	buildDuration metric.Float64Histogram
	buildsTotal   metric.Int64Counter
}

// NewMetrics creates the instruments and registers the queue gauge
func NewMetrics(meter metric.Meter, queue *BuildQueue) (*Metrics, error) {
	buildDuration, err := meter.Float64Histogram(
		"sandboxd_image_build_duration_seconds",
		metric.WithDescription("Duration of image builds in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	buildsTotal, err := meter.Int64Counter(
		"sandboxd_image_builds_total",
		metric.WithDescription("Total number of image builds"),
	)
	if err != nil {
		return nil, err
	}

	queueLength, err := meter.Int64ObservableGauge(
		"sandboxd_image_build_queue_length",
		metric.WithDescription("Current number of builds waiting or running"),
	)
	if err != nil {
		return nil, err
	}

	_, err = meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		o.ObserveInt64(queueLength, int64(queue.PendingCount()), metric.WithAttributes(attribute.String("state", "pending")))
		o.ObserveInt64(queueLength, int64(queue.ActiveCount()), metric.WithAttributes(attribute.String("state", "active")))
		return nil
	}, queueLength)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		buildDuration: buildDuration,
		buildsTotal:   buildsTotal,
	}, nil
}

// RecordBuild records metrics for a finished build
func (m *Metrics) RecordBuild(ctx context.Context, status, runtime string, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("status", status),
		attribute.String("runtime", runtime),
	}
	m.buildDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	m.buildsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}
