package metrics

import (
	"context"
	"fmt"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	registry      *promclient.Registry
	collector     Collector

	// OTel meters and instruments
	meter             metric.Meter
	issuedCounter     metric.Int64Counter
	decisionCounter   metric.Int64Counter
	rejectedCounter   metric.Int64Counter
	downstreamCounter metric.Int64Counter
	pendingGauge      metric.Int64ObservableGauge
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format
// A nil collector disables the pending gauge
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	// Each exporter gets its own registry so it can be created more than once per process
	registry := promclient.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	// Create meter provider
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	// Create meter with service info
	meter := meterProvider.Meter(
		"approval-bridge",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		registry:      registry,
		collector:     collector,
		meter:         meter,
	}

	// Register metrics instruments
	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.issuedCounter, err = oe.meter.Int64Counter(
		"approval.requests.issued",
		metric.WithDescription("Number of approval requests posted to Slack"),
		metric.WithUnit("{requests}"),
	)
	if err != nil {
		return fmt.Errorf("creating issued counter: %w", err)
	}

	oe.decisionCounter, err = oe.meter.Int64Counter(
		"approval.decisions",
		metric.WithDescription("Number of decisions forwarded to the workflow engine"),
		metric.WithUnit("{decisions}"),
	)
	if err != nil {
		return fmt.Errorf("creating decision counter: %w", err)
	}

	oe.rejectedCounter, err = oe.meter.Int64Counter(
		"approval.callbacks.rejected",
		metric.WithDescription("Number of inbound calls rejected, by reason"),
		metric.WithUnit("{calls}"),
	)
	if err != nil {
		return fmt.Errorf("creating rejected counter: %w", err)
	}

	oe.downstreamCounter, err = oe.meter.Int64Counter(
		"approval.downstream.failures",
		metric.WithDescription("Number of workflow callbacks that failed after consumption"),
		metric.WithUnit("{calls}"),
	)
	if err != nil {
		return fmt.Errorf("creating downstream failure counter: %w", err)
	}

	if oe.collector == nil {
		return nil
	}

	// Pending gauge (per approval type)
	oe.pendingGauge, err = oe.meter.Int64ObservableGauge(
		"approval.pending",
		metric.WithDescription("Number of approval requests awaiting a decision per type"),
		metric.WithUnit("{requests}"),
		metric.WithInt64Callback(oe.observePending),
	)
	if err != nil {
		return fmt.Errorf("creating pending gauge: %w", err)
	}

	return nil
}

// observePending is a callback that reports pending requests per type
func (oe *OTelExporter) observePending(ctx context.Context, observer metric.Int64Observer) error {
	counts, err := oe.collector.PendingByType(ctx)
	if err != nil {
		return err
	}

	for approvalType, count := range counts {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("approval.type", approvalType),
		))
	}

	return nil
}

// RecordIssued counts a request that reached Slack
func (oe *OTelExporter) RecordIssued(ctx context.Context, approvalType string) {
	oe.issuedCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("approval.type", approvalType),
	))
}

// RecordDecision counts a decision that reached the workflow engine
func (oe *OTelExporter) RecordDecision(ctx context.Context, approvalType, decision string) {
	oe.decisionCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("approval.type", approvalType),
		attribute.String("approval.decision", decision),
	))
}

// RecordRejected counts a call refused before any state changed
func (oe *OTelExporter) RecordRejected(ctx context.Context, reason string) {
	oe.rejectedCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

// RecordDownstreamFailure counts a consumed request whose callback failed
func (oe *OTelExporter) RecordDownstreamFailure(ctx context.Context, approvalType string) {
	oe.downstreamCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("approval.type", approvalType),
	))
}

// ServeHTTP serves Prometheus-formatted metrics on the given HTTP handler
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.HandlerFor(oe.registry, promhttp.HandlerOpts{})
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
