// internal/common/observability/metrics.go
package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// Job outcomes, named after the terminal command the handler sent.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusBPMNError = "bpmn_error"
	StatusUnhandled = "unhandled"
)

type Observability struct {
	meterProvider *metric.MeterProvider
	jobsProcessed otelmetric.Int64Counter
	jobDuration   otelmetric.Float64Histogram
	jobsInFlight  otelmetric.Int64UpDownCounter
}

// New registers an OpenTelemetry meter provider backed by the Prometheus exporter, so
// otel instruments show up next to the promauto ones on /metrics. On exporter failure
// it returns a no-op Observability.
func New(serviceName string, log *zap.Logger) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Warn("failed to create prometheus exporter", zap.Error(err))
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)
	meter := provider.Meter(serviceName)

	o := &Observability{meterProvider: provider}

	if o.jobsProcessed, err = meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Jobs handled, by task type and outcome"),
	); err != nil {
		log.Warn("failed to create job counter", zap.Error(err))
	}

	if o.jobDuration, err = meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job handling duration"),
		otelmetric.WithUnit("ms"),
	); err != nil {
		log.Warn("failed to create job duration histogram", zap.Error(err))
	}

	if o.jobsInFlight, err = meter.Int64UpDownCounter(
		"jobs.in_flight",
		otelmetric.WithDescription("Jobs currently inside a handler"),
	); err != nil {
		log.Warn("failed to create in-flight counter", zap.Error(err))
	}

	return o
}

func (o *Observability) RecordJobProcessed(ctx context.Context, taskType, status string) {
	if o == nil || o.jobsProcessed == nil {
		return
	}
	o.jobsProcessed.Add(ctx, 1, otelmetric.WithAttributes(jobAttributes(taskType, status)...))
}

func (o *Observability) RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string) {
	if o == nil || o.jobDuration == nil {
		return
	}
	o.jobDuration.Record(ctx, float64(duration.Microseconds())/1000,
		otelmetric.WithAttributes(jobAttributes(taskType, status)...))
}

func (o *Observability) JobStarted(ctx context.Context, taskType string) {
	o.inFlight(ctx, taskType, 1)
}

func (o *Observability) JobFinished(ctx context.Context, taskType string) {
	o.inFlight(ctx, taskType, -1)
}

func (o *Observability) inFlight(ctx context.Context, taskType string, delta int64) {
	if o == nil || o.jobsInFlight == nil {
		return
	}
	o.jobsInFlight.Add(ctx, delta, otelmetric.WithAttributes(attribute.String("task_type", taskType)))
}

func jobAttributes(taskType, status string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	}
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.meterProvider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return o.meterProvider.Shutdown(ctx)
}
