package sandboxes

import (
	"context"
	"time"

	"github.com/onkernel/sandboxd/lib/engine"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Metrics holds the metrics instruments for sandbox operations.
type Metrics struct {
	createDuration metric.Float64Histogram
	execDuration   metric.Float64Histogram
	cleanedTotal   metric.Int64Counter
	tracer         trace.Tracer
}

// newSandboxMetrics creates and registers all sandbox metrics.
func newSandboxMetrics(meter metric.Meter, tracer trace.Tracer, m *manager) (*Metrics, error) {
	createDuration, err := meter.Float64Histogram(
		"sandboxd_sandboxes_create_duration_seconds",
		metric.WithDescription("Time to create a sandbox"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	execDuration, err := meter.Float64Histogram(
		"sandboxd_sandboxes_exec_duration_seconds",
		metric.WithDescription("Duration of commands run in sandboxes"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	cleanedTotal, err := meter.Int64Counter(
		"sandboxd_sandboxes_cleaned_total",
		metric.WithDescription("Total number of sandboxes removed by age-based cleanup"),
	)
	if err != nil {
		return nil, err
	}

	sandboxesTotal, err := meter.Int64ObservableGauge(
		"sandboxd_sandboxes_total",
		metric.WithDescription("Total number of sandboxes by state"),
	)
	if err != nil {
		return nil, err
	}

	_, err = meter.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			containers, err := m.engine.ListContainers(ctx, true, nil)
			if err != nil {
				return nil
			}
			type stateRuntime struct {
				state   string
				runtime string
			}
			counts := make(map[stateRuntime]int64)
			for _, c := range containers {
				if c.Labels[engine.LabelSandbox] == "" {
					continue
				}
				counts[stateRuntime{c.State, c.Labels[engine.LabelRuntime]}]++
			}
			for key, count := range counts {
				o.ObserveInt64(sandboxesTotal, count,
					metric.WithAttributes(
						attribute.String("state", key.state),
						attribute.String("runtime", key.runtime),
					))
			}
			return nil
		},
		sandboxesTotal,
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		createDuration: createDuration,
		execDuration:   execDuration,
		cleanedTotal:   cleanedTotal,
		tracer:         tracer,
	}, nil
}

// recordDuration records operation duration with runtime label.
func (m *manager) recordDuration(ctx context.Context, histogram metric.Float64Histogram, start time.Time, status, runtime string) {
	if m.metrics == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("status", status),
	}
	if runtime != "" {
		attrs = append(attrs, attribute.String("runtime", runtime))
	}
	histogram.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attrs...))
}

// startSpan starts a tracing span if a tracer is configured
func (m *manager) startSpan(ctx context.Context, name string) (context.Context, func()) {
	if m.metrics == nil || m.metrics.tracer == nil {
		return ctx, func() {}
	}
	ctx, span := m.metrics.tracer.Start(ctx, name)
	return ctx, func() { span.End() }
}
