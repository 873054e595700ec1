// Package observability wires OpenTelemetry tracing and metrics,
// with console, OTLP, and Prometheus exporters selected by config.
package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"resumelens/internal/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Metrics holds all custom instruments
type Metrics struct {
	// AI operation metrics
	AIProcessingTime metric.Float64Histogram
	AIRequestCount   metric.Int64Counter
	AIErrorCount     metric.Int64Counter
	AITokenUsage     metric.Int64Histogram

	// Pipeline metrics
	OperationDuration metric.Float64Histogram
	OperationCount    metric.Int64Counter

	// Business metrics
	ResumesExtracted metric.Int64Counter
	ResumesReviewed  metric.Int64Counter
	JobsMatched      metric.Int64Counter
	ResumesRendered  metric.Int64Counter

	// Infrastructure metrics
	RateLimitHits   metric.Int64Counter
	CertReloadCount metric.Int64Counter
	CertExpiryTime  metric.Float64Gauge
}

// Manager owns the OpenTelemetry providers and custom metrics
type Manager struct {
	config         *config.Config
	serviceVersion string
	tracerProvider *trace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	metrics        *Metrics
	shutdownFuncs  []func(context.Context) error
}

// NewManager creates an observability manager. When observability is
// disabled it returns an inert manager whose methods are no-ops.
func NewManager(cfg *config.Config, serviceVersion string) (*Manager, error) {
	m := &Manager{config: cfg, serviceVersion: serviceVersion}
	if !cfg.Observability.Enabled {
		return m, nil
	}

	if err := m.initTracing(); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := m.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	return m, nil
}

func (m *Manager) newResource() (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(m.config.Observability.ServiceName),
			semconv.ServiceVersion(m.serviceVersion),
			attribute.String("service.instance.id", m.config.Observability.ServiceInstance),
		),
	)
}

func (m *Manager) initTracing() error {
	var exporter trace.SpanExporter
	var err error

	obs := m.config.Observability
	switch {
	case obs.ConsoleOutput:
		exporter, err = stdouttrace.New()
	case obs.OTLP.Enabled:
		exporter, err = m.createOTLPTraceExporter()
	default:
		exporter = &noOpSpanExporter{}
	}
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := m.newResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	sampleRate := obs.SampleRate
	if obs.Tracing.SampleRate > 0 {
		sampleRate = obs.Tracing.SampleRate
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(sampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	m.tracerProvider = tp
	m.shutdownFuncs = append(m.shutdownFuncs, tp.Shutdown)
	return nil
}

func (m *Manager) initMetrics() error {
	readers, err := m.setupMetricReaders()
	if err != nil {
		return err
	}

	res, err := m.newResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, reader := range readers {
		opts = append(opts, sdkmetric.WithReader(reader))
	}

	mp := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(mp)
	m.meterProvider = mp
	m.shutdownFuncs = append(m.shutdownFuncs, mp.Shutdown)

	return m.initCustomMetrics()
}

func (m *Manager) setupMetricReaders() ([]sdkmetric.Reader, error) {
	var readers []sdkmetric.Reader
	obs := m.config.Observability

	if obs.ConsoleOutput {
		exporter, err := stdoutmetric.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create console metric exporter: %w", err)
		}
		readers = append(readers, sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(obs.Metrics.CollectionInterval)))
	}

	if obs.OTLP.Enabled {
		reader, err := m.createOTLPMetricsReader()
		if err != nil {
			return nil, err
		}
		readers = append(readers, reader)
	}

	if obs.Prometheus.Enabled {
		reader, mux, err := SetupPrometheusExporter(obs.Prometheus)
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		if reader != nil {
			readers = append(readers, reader)
			if err := StartPrometheusServer(mux, obs.Prometheus.Port); err != nil {
				return nil, fmt.Errorf("failed to start Prometheus server: %w", err)
			}
		}
	}

	if len(readers) == 0 {
		readers = append(readers, sdkmetric.NewManualReader())
	}
	return readers, nil
}

func (m *Manager) initCustomMetrics() error {
	meter := m.meterProvider.Meter(m.config.Observability.ServiceName)
	m.metrics = &Metrics{}
	var err error

	if m.metrics.AIProcessingTime, err = meter.Float64Histogram(
		"resumelens_ai_processing_duration_seconds",
		metric.WithDescription("Time spent processing AI requests"),
		metric.WithUnit("s"),
	); err != nil {
		return err
	}
	if m.metrics.AIRequestCount, err = meter.Int64Counter(
		"resumelens_ai_requests_total",
		metric.WithDescription("Total number of AI requests"),
	); err != nil {
		return err
	}
	if m.metrics.AIErrorCount, err = meter.Int64Counter(
		"resumelens_ai_errors_total",
		metric.WithDescription("Total number of AI request errors"),
	); err != nil {
		return err
	}
	if m.metrics.AITokenUsage, err = meter.Int64Histogram(
		"resumelens_ai_token_usage_total",
		metric.WithDescription("Token usage for AI requests (input, output, total)"),
		metric.WithUnit("tokens"),
	); err != nil {
		return err
	}

	if m.metrics.OperationDuration, err = meter.Float64Histogram(
		"resumelens_operation_duration_seconds",
		metric.WithDescription("Duration of pipeline operations"),
		metric.WithUnit("s"),
	); err != nil {
		return err
	}
	if m.metrics.OperationCount, err = meter.Int64Counter(
		"resumelens_operations_total",
		metric.WithDescription("Total number of pipeline operations"),
	); err != nil {
		return err
	}

	if m.metrics.ResumesExtracted, err = meter.Int64Counter(
		"resumelens_resumes_extracted_total",
		metric.WithDescription("Total number of resumes extracted"),
	); err != nil {
		return err
	}
	if m.metrics.ResumesReviewed, err = meter.Int64Counter(
		"resumelens_resumes_reviewed_total",
		metric.WithDescription("Total number of resumes reviewed"),
	); err != nil {
		return err
	}
	if m.metrics.JobsMatched, err = meter.Int64Counter(
		"resumelens_jobs_matched_total",
		metric.WithDescription("Total number of resume/job comparisons"),
	); err != nil {
		return err
	}
	if m.metrics.ResumesRendered, err = meter.Int64Counter(
		"resumelens_resumes_rendered_total",
		metric.WithDescription("Total number of resumes rendered"),
	); err != nil {
		return err
	}

	if m.metrics.RateLimitHits, err = meter.Int64Counter(
		"resumelens_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"),
	); err != nil {
		return err
	}
	if m.metrics.CertReloadCount, err = meter.Int64Counter(
		"resumelens_cert_reloads_total",
		metric.WithDescription("Total number of certificate reloads"),
	); err != nil {
		return err
	}
	if m.metrics.CertExpiryTime, err = meter.Float64Gauge(
		"resumelens_cert_expiry_seconds",
		metric.WithDescription("Seconds until certificate expiry"),
		metric.WithUnit("s"),
	); err != nil {
		return err
	}

	return nil
}

// GetMetrics returns the metrics instance, never nil
func (m *Manager) GetMetrics() *Metrics {
	if m.metrics == nil {
		return &Metrics{}
	}
	return m.metrics
}

// RecordOperation satisfies the pipeline's operation recorder
func (m *Manager) RecordOperation(ctx context.Context, operation string, success bool, duration time.Duration) {
	if m.metrics == nil || m.metrics.OperationCount == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("success", success),
	)
	m.metrics.OperationCount.Add(ctx, 1, attrs)
	m.metrics.OperationDuration.Record(ctx, duration.Seconds(), attrs)

	counter := m.businessCounter(operation)
	if counter != nil {
		counter.Add(ctx, 1, attrs)
	}
}

func (m *Manager) businessCounter(operation string) metric.Int64Counter {
	switch operation {
	case "extract_resume":
		return m.metrics.ResumesExtracted
	case "review_resume":
		return m.metrics.ResumesReviewed
	case "match_resume":
		return m.metrics.JobsMatched
	case "generate_resume":
		return m.metrics.ResumesRendered
	default:
		return nil
	}
}

// RecordRateLimitHit counts a rejected request
func (m *Manager) RecordRateLimitHit(ctx context.Context, key string) {
	if m.metrics == nil || m.metrics.RateLimitHits == nil {
		return
	}
	m.metrics.RateLimitHits.Add(ctx, 1, metric.WithAttributes(
		attribute.String("key", key),
	))
}

// RecordCertReload counts a TLS certificate reload
func (m *Manager) RecordCertReload(ctx context.Context, success bool) {
	if m.metrics == nil || m.metrics.CertReloadCount == nil {
		return
	}
	m.metrics.CertReloadCount.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("success", success),
	))
}

// HTTPMiddleware returns HTTP middleware with OpenTelemetry instrumentation
func (m *Manager) HTTPMiddleware() func(http.Handler) http.Handler {
	if !m.config.Observability.Enabled {
		return func(h http.Handler) http.Handler { return h }
	}
	return otelhttp.NewMiddleware(
		m.config.Observability.ServiceName,
		otelhttp.WithTracerProvider(m.tracerProvider),
		otelhttp.WithMeterProvider(m.meterProvider),
	)
}

// Tracer returns a tracer for the service
func (m *Manager) Tracer(name string) oteltrace.Tracer {
	if !m.config.Observability.Enabled {
		return noop.NewTracerProvider().Tracer(name)
	}
	return otel.Tracer(name)
}

// Shutdown flushes and stops all providers
func (m *Manager) Shutdown(ctx context.Context) error {
	for _, shutdown := range m.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

type noOpSpanExporter struct{}

func (n *noOpSpanExporter) ExportSpans(ctx context.Context, spans []trace.ReadOnlySpan) error {
	return nil
}

func (n *noOpSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}

func (m *Manager) createOTLPTraceExporter() (trace.SpanExporter, error) {
	otlpConfig := m.config.Observability.OTLP

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpointURL(otlpConfig.Endpoint),
	}
	if otlpConfig.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(otlpConfig.Headers))
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}
	return exporter, nil
}

func (m *Manager) createOTLPMetricsReader() (sdkmetric.Reader, error) {
	otlpConfig := m.config.Observability.OTLP

	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpointURL(otlpConfig.Endpoint),
	}
	if otlpConfig.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(otlpConfig.Headers))
	}

	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}
	return sdkmetric.NewPeriodicReader(exporter,
		sdkmetric.WithInterval(m.config.Observability.Metrics.CollectionInterval)), nil
}
