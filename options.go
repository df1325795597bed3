package edot

import (
	"github.com/knadh/koanf/v2"
	"go.opentelemetry.io/otel/attribute"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/elastic/edot-go/config"
)

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithFileLogDirectory sets the diagnostic log directory explicitly,
// overriding ELASTIC_OTEL_FILE_LOG_DIRECTORY and structured configuration.
func WithFileLogDirectory(dir string) BuilderOption {
	return func(b *Builder) {
		b.explicit.FileLogDirectory = &dir
	}
}

// WithFileLogLevel sets the diagnostic log level explicitly.
func WithFileLogLevel(level config.LogLevel) BuilderOption {
	return func(b *Builder) {
		b.explicit.FileLogLevel = &level
	}
}

// WithSkipOTLPExporter controls whether the default OTLP exporter
// registration is suppressed for every signal.
func WithSkipOTLPExporter(skip bool) BuilderOption {
	return func(b *Builder) {
		b.explicit.SkipOTLPExporter = &skip
	}
}

// WithEnabledDefaults sets which signals receive opinionated defaults.
func WithEnabledDefaults(flags config.DefaultsFlags) BuilderOption {
	return func(b *Builder) {
		b.explicit.EnabledDefaults = &flags
	}
}

// WithConfigStore injects the structured configuration source. The store may
// itself be layered from files, flags, or environment; see config.LoadFile.
func WithConfigStore(k *koanf.Koanf) BuilderOption {
	return func(b *Builder) {
		b.store = k
	}
}

// WithServiceName sets service.name on the pipeline resource.
func WithServiceName(name string) BuilderOption {
	return func(b *Builder) {
		b.serviceName = name
	}
}

// WithServiceVersion sets service.version on the pipeline resource.
func WithServiceVersion(version string) BuilderOption {
	return func(b *Builder) {
		b.serviceVersion = version
	}
}

// WithResourceAttributes adds attributes to the pipeline resource.
func WithResourceAttributes(attrs ...attribute.KeyValue) BuilderOption {
	return func(b *Builder) {
		b.resourceAttrs = append(b.resourceAttrs, attrs...)
	}
}

// WithSpanProcessor registers a caller-supplied span processor.
func WithSpanProcessor(sp sdktrace.SpanProcessor) BuilderOption {
	return func(b *Builder) {
		b.spanProcessors = append(b.spanProcessors, sp)
	}
}

// WithSpanExporter registers a caller-supplied span exporter behind a batch
// processor. Registering one suppresses the default OTLP span exporter.
func WithSpanExporter(exp sdktrace.SpanExporter) BuilderOption {
	return func(b *Builder) {
		b.spanExporters = append(b.spanExporters, exp)
	}
}

// WithMetricReader registers a caller-supplied metric reader. Registering
// one suppresses the default periodic OTLP reader.
func WithMetricReader(reader sdkmetric.Reader) BuilderOption {
	return func(b *Builder) {
		b.metricReaders = append(b.metricReaders, reader)
	}
}

// WithLogProcessor registers a caller-supplied log record processor.
// Registering one suppresses the default batch OTLP log processor.
func WithLogProcessor(p sdklog.Processor) BuilderOption {
	return func(b *Builder) {
		b.logProcessors = append(b.logProcessors, p)
	}
}

// WithoutGlobals prevents the session from installing its providers and
// propagator as the otel globals.
func WithoutGlobals() BuilderOption {
	return func(b *Builder) {
		b.setGlobals = false
	}
}

// WithEnvironmentLookup overrides how environment variables are read.
// Intended for tests; a nil lookup restores the process environment.
func WithEnvironmentLookup(lookup func(string) (string, bool)) BuilderOption {
	return func(b *Builder) {
		b.lookup = lookup
	}
}
