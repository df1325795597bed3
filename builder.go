package edot

import (
	"context"
	"errors"
	"fmt"

	"github.com/knadh/koanf/v2"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/elastic/edot-go/config"
	"github.com/elastic/edot-go/internal/diagnostics"
)

// ErrPipelineAlreadyBuilt reports a second Build on a single-use builder.
var ErrPipelineAlreadyBuilt = errors.New("telemetry pipeline already built")

// Builder assembles the telemetry pipeline. It is single-use: Build consumes
// it, and a second Build fails with ErrPipelineAlreadyBuilt.
//
// Building is a synchronous, single-threaded startup operation; the Builder
// is not safe for concurrent use.
type Builder struct {
	built bool

	explicit config.Options
	store    *koanf.Koanf
	lookup   func(string) (string, bool)

	serviceName    string
	serviceVersion string
	resourceAttrs  []attribute.KeyValue

	spanProcessors []sdktrace.SpanProcessor
	spanExporters  []sdktrace.SpanExporter
	metricReaders  []sdkmetric.Reader
	logProcessors  []sdklog.Processor

	setGlobals bool
}

// NewBuilder creates a pipeline builder. Caller registrations and explicit
// option values are supplied through BuilderOptions.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		serviceName: "unknown_service",
		setGlobals:  true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewSession resolves configuration and builds the pipeline in one step.
func NewSession(ctx context.Context, opts ...BuilderOption) (*Session, error) {
	return NewBuilder(opts...).Build(ctx)
}

// Build resolves configuration, applies opinionated defaults for every
// activated signal the caller left unconfigured, and finalizes the pipeline
// into a Session.
//
// Configuration errors abort the build before any SDK registration; partial
// activation never happens. Diagnostic file logging failures degrade to a
// single warning and are never fatal.
func (b *Builder) Build(ctx context.Context) (*Session, error) {
	if b.built {
		return nil, ErrPipelineAlreadyBuilt
	}
	b.built = true

	resolved, err := config.Resolve(b.explicit, config.EnvironmentSet(b.lookup), config.StructuredSet(b.store))
	if err != nil {
		return nil, err
	}
	plan, err := config.Select(resolved)
	if err != nil {
		return nil, err
	}

	protocol := exporterProtocol(b.lookup)

	// Default exporters are created before any provider so that a failure
	// here leaves nothing to tear down.
	var (
		defaultSpanExporter   sdktrace.SpanExporter
		defaultMetricExporter sdkmetric.Exporter
		defaultLogExporter    sdklog.Exporter
	)
	otlpTraces := defaultExporterWanted(plan, config.SignalTraces, len(b.spanExporters))
	otlpMetrics := defaultExporterWanted(plan, config.SignalMetrics, len(b.metricReaders))
	otlpLogs := defaultExporterWanted(plan, config.SignalLogs, len(b.logProcessors))
	if otlpTraces {
		if defaultSpanExporter, err = newSpanExporter(ctx, protocol); err != nil {
			return nil, fmt.Errorf("creating trace exporter: %w", err)
		}
	}
	if otlpMetrics {
		if defaultMetricExporter, err = newMetricExporter(ctx, protocol); err != nil {
			return nil, fmt.Errorf("creating metric exporter: %w", err)
		}
	}
	if otlpLogs {
		if defaultLogExporter, err = newLogExporter(ctx, protocol); err != nil {
			return nil, fmt.Errorf("creating log exporter: %w", err)
		}
	}

	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(b.newResource(plan.Traces)),
	}
	for _, sp := range b.spanProcessors {
		tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(sp))
	}
	for _, exp := range b.spanExporters {
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exp))
	}
	if defaultSpanExporter != nil {
		tpOpts = append(tpOpts, sdktrace.WithBatcher(defaultSpanExporter))
	}
	tracerProvider := sdktrace.NewTracerProvider(tpOpts...)

	mpOpts := []sdkmetric.Option{
		sdkmetric.WithResource(b.newResource(plan.Metrics)),
	}
	for _, reader := range b.metricReaders {
		mpOpts = append(mpOpts, sdkmetric.WithReader(reader))
	}
	if defaultMetricExporter != nil {
		mpOpts = append(mpOpts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(defaultMetricExporter)))
	}
	meterProvider := sdkmetric.NewMeterProvider(mpOpts...)

	lpOpts := []sdklog.LoggerProviderOption{
		sdklog.WithResource(b.newResource(plan.Logs)),
	}
	for _, p := range b.logProcessors {
		lpOpts = append(lpOpts, sdklog.WithProcessor(p))
	}
	if defaultLogExporter != nil {
		lpOpts = append(lpOpts, sdklog.WithProcessor(sdklog.NewBatchProcessor(defaultLogExporter)))
	}
	loggerProvider := sdklog.NewLoggerProvider(lpOpts...)

	diag := b.newDiagnostics(resolved, plan, loggerProvider)

	if plan.Metrics {
		if err := runtime.Start(runtime.WithMeterProvider(meterProvider)); err != nil {
			diag.Warn("runtime instrumentation failed to start", zap.Error(err))
		}
	}

	if b.setGlobals {
		otel.SetTracerProvider(tracerProvider)
		otel.SetMeterProvider(meterProvider)
		global.SetLoggerProvider(loggerProvider)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	}

	session := newSession(sessionParts{
		resolved:       *resolved,
		plan:           plan,
		tracerProvider: tracerProvider,
		meterProvider:  meterProvider,
		loggerProvider: loggerProvider,
		diag:           diag,
		otlpDefaults: map[config.Signal]bool{
			config.SignalTraces:  otlpTraces,
			config.SignalMetrics: otlpMetrics,
			config.SignalLogs:    otlpLogs,
		},
	})

	diag.Info("telemetry pipeline active",
		zap.String("distro", distroName),
		zap.String("version", Version),
		zap.String("service", b.serviceName),
		zap.Bool("traces_defaults", plan.Traces),
		zap.Bool("metrics_defaults", plan.Metrics),
		zap.Bool("logs_defaults", plan.Logs),
		zap.Bool("otlp_exporter", plan.OTLPExporter),
		zap.String("defaults_enabled", resolved.EnabledDefaults.String()),
		zap.String("file_log", diag.Path()),
	)

	return session, nil
}

// newDiagnostics creates the distro's own diagnostic logger. FileLogLevel
// None disables file output entirely; when the log signal carries defaults,
// diagnostics also tee into the pipeline through the otelzap bridge.
func (b *Builder) newDiagnostics(resolved *config.Resolved, plan config.ActivationPlan, lp *sdklog.LoggerProvider) *diagnostics.Logger {
	dir := resolved.FileLogDirectory
	if resolved.FileLogLevel == config.LevelNone {
		dir = ""
	}
	var bridge otellog.LoggerProvider
	if plan.Logs {
		bridge = lp
	}
	return diagnostics.New(diagnostics.Options{
		Directory:      dir,
		Level:          zap.NewAtomicLevelAt(resolved.FileLogLevel.ZapLevel()),
		LoggerProvider: bridge,
	})
}
