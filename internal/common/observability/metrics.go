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
)

// Observability records agent invocations through an OpenTelemetry meter.
// A zero value is safe to use and records nothing.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	invocations   otelmetric.Int64Counter
	duration      otelmetric.Float64Histogram
}

// New exports through the Prometheus default registry, served on /metrics.
func New(serviceName string) (*Observability, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return &Observability{}, err
	}

	obs := NewWithReader(serviceName, exporter)
	otel.SetMeterProvider(obs.meterProvider)
	return obs, nil
}

// NewWithReader builds the meter on an explicit reader.
func NewWithReader(serviceName string, reader metric.Reader) *Observability {
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	meter := provider.Meter(serviceName)

	invocations, _ := meter.Int64Counter(
		"agent.invocations",
		otelmetric.WithDescription("Number of questions answered"),
	)

	duration, _ := meter.Float64Histogram(
		"agent.duration",
		otelmetric.WithDescription("End-to-end answer latency"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		invocations:   invocations,
		duration:      duration,
	}
}

// RecordInvocation counts one answered question and its latency by answer mode.
func (o *Observability) RecordInvocation(ctx context.Context, mode string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(attribute.String("mode", mode))
	if o.invocations != nil {
		o.invocations.Add(ctx, 1, attrs)
	}
	if o.duration != nil {
		o.duration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}
