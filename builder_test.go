package edot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/elastic/edot-go/config"
)

// emptyEnv isolates builds from the process environment.
func emptyEnv(string) (string, bool) { return "", false }

func isolated(opts ...BuilderOption) []BuilderOption {
	return append([]BuilderOption{
		WithEnvironmentLookup(emptyEnv),
		WithoutGlobals(),
	}, opts...)
}

func TestBuild_EndToEndDefaults(t *testing.T) {
	// No environment, no structured config, no explicit options: every
	// signal carries defaults and the OTLP exporter is registered.
	session, err := NewSession(context.Background(), isolated()...)
	require.NoError(t, err)
	defer session.Shutdown(context.Background()) //nolint:errcheck // no collector running

	assert.True(t, session.Active())

	plan := session.Plan()
	assert.True(t, plan.Traces)
	assert.True(t, plan.Metrics)
	assert.True(t, plan.Logs)
	assert.True(t, plan.OTLPExporter)

	for _, sig := range config.Signals() {
		assert.True(t, session.OTLPDefaultRegistered(sig), sig.String())
	}

	assert.NotNil(t, session.TracerProvider())
	assert.NotNil(t, session.MeterProvider())
	assert.NotNil(t, session.LoggerProvider())

	opts := session.Options()
	assert.False(t, opts.SkipOTLPExporter)
	assert.Equal(t, config.LevelInformation, opts.FileLogLevel)
}

func TestBuild_Twice(t *testing.T) {
	builder := NewBuilder(isolated(WithSkipOTLPExporter(true))...)

	session, err := builder.Build(context.Background())
	require.NoError(t, err)
	defer session.Shutdown(context.Background()) //nolint:errcheck

	_, err = builder.Build(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPipelineAlreadyBuilt)

	// The first session stays valid.
	assert.True(t, session.Active())
}

func TestBuild_ConfigErrorAbortsBeforeRegistration(t *testing.T) {
	builder := NewBuilder(
		WithEnvironmentLookup(mapEnv(map[string]string{
			"ELASTIC_OTEL_DEFAULTS_ENABLED": "None,Traces",
		})),
		WithoutGlobals(),
	)
	_, err := builder.Build(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidDefaultsCombination)
}

func TestBuild_SkipExporter(t *testing.T) {
	session, err := NewSession(context.Background(), isolated(
		WithSkipOTLPExporter(true),
	)...)
	require.NoError(t, err)
	defer session.Shutdown(context.Background()) //nolint:errcheck

	plan := session.Plan()
	assert.True(t, plan.Traces)
	assert.False(t, plan.OTLPExporter)
	for _, sig := range config.Signals() {
		assert.False(t, session.OTLPDefaultRegistered(sig), sig.String())
	}
}

func TestBuild_CallerExporterSuppressesDefaultPerSignalOnly(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	session, err := NewSession(context.Background(), isolated(
		WithSpanExporter(exporter),
	)...)
	require.NoError(t, err)
	defer session.Shutdown(context.Background()) //nolint:errcheck

	assert.False(t, session.OTLPDefaultRegistered(config.SignalTraces))
	assert.True(t, session.OTLPDefaultRegistered(config.SignalMetrics))
	assert.True(t, session.OTLPDefaultRegistered(config.SignalLogs))
}

func TestBuild_EnabledDefaultsSubset(t *testing.T) {
	session, err := NewSession(context.Background(), isolated(
		WithEnabledDefaults(config.DefaultsTraces|config.DefaultsMetrics),
	)...)
	require.NoError(t, err)
	defer session.Shutdown(context.Background()) //nolint:errcheck

	plan := session.Plan()
	assert.True(t, plan.Traces)
	assert.True(t, plan.Metrics)
	assert.False(t, plan.Logs)
	assert.False(t, session.OTLPDefaultRegistered(config.SignalLogs))
}

func TestBuild_EnvironmentDrivesDefaults(t *testing.T) {
	session, err := NewSession(context.Background(),
		WithEnvironmentLookup(mapEnv(map[string]string{
			"ELASTIC_OTEL_DEFAULTS_ENABLED":   "None",
			"ELASTIC_OTEL_SKIP_OTLP_EXPORTER": "true",
		})),
		WithoutGlobals(),
	)
	require.NoError(t, err)
	defer session.Shutdown(context.Background()) //nolint:errcheck

	plan := session.Plan()
	assert.False(t, plan.Traces)
	assert.False(t, plan.Metrics)
	assert.False(t, plan.Logs)
}

func TestBuild_FileLogging(t *testing.T) {
	dir := t.TempDir()
	session, err := NewSession(context.Background(), isolated(
		WithSkipOTLPExporter(true),
		WithFileLogDirectory(dir),
		WithFileLogLevel(config.LevelDebug),
	)...)
	require.NoError(t, err)

	path := session.DiagnosticLogPath()
	require.NotEmpty(t, path)
	assert.Equal(t, dir, filepath.Dir(path))

	require.NoError(t, session.Shutdown(context.Background()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "telemetry pipeline active")
	assert.Contains(t, string(content), "telemetry pipeline shutting down")
}

func TestBuild_UnwritableLogDirectoryDegrades(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	session, err := NewSession(context.Background(), isolated(
		WithSkipOTLPExporter(true),
		WithFileLogDirectory(filepath.Join(blocker, "logs")),
	)...)
	require.NoError(t, err)
	defer session.Shutdown(context.Background()) //nolint:errcheck

	assert.True(t, session.Active())
	assert.Equal(t, "", session.DiagnosticLogPath())
}

func TestBuild_FileLogLevelNoneDisablesFile(t *testing.T) {
	session, err := NewSession(context.Background(), isolated(
		WithSkipOTLPExporter(true),
		WithFileLogDirectory(t.TempDir()),
		WithFileLogLevel(config.LevelNone),
	)...)
	require.NoError(t, err)
	defer session.Shutdown(context.Background()) //nolint:errcheck

	assert.Equal(t, "", session.DiagnosticLogPath())
}

func TestDefaultExporterWanted(t *testing.T) {
	plan := config.ActivationPlan{Traces: true, Metrics: true, OTLPExporter: true}

	assert.True(t, defaultExporterWanted(plan, config.SignalTraces, 0))
	assert.False(t, defaultExporterWanted(plan, config.SignalTraces, 1))
	assert.False(t, defaultExporterWanted(plan, config.SignalLogs, 0))

	noExporter := config.ActivationPlan{Traces: true}
	assert.False(t, defaultExporterWanted(noExporter, config.SignalTraces, 0))
}

func TestExporterProtocol(t *testing.T) {
	assert.Equal(t, "grpc", exporterProtocol(emptyEnv))
	assert.Equal(t, "http/protobuf", exporterProtocol(mapEnv(map[string]string{
		"OTEL_EXPORTER_OTLP_PROTOCOL": "http/protobuf",
	})))
}

// mapEnv returns an environment lookup backed by a map.
func mapEnv(env map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
}

// Builds with caller-supplied in-memory components never touch the network,
// so their shutdown must be clean.
func TestBuild_CallerOnlyPipelineShutsDownCleanly(t *testing.T) {
	session, err := NewSession(context.Background(), isolated(
		WithEnabledDefaults(config.DefaultsNone),
		WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(tracetest.NewInMemoryExporter())),
	)...)
	require.NoError(t, err)
	require.NoError(t, session.Shutdown(context.Background()))
	assert.True(t, session.Disposed())
}
