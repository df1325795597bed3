package edot

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/elastic/edot-go/config"
)

const protocolHTTP = "http/protobuf"

// defaultExporterWanted decides whether the default OTLP registration
// applies for a signal: its defaults must be active, the exporter plan must
// allow it, and the caller must not have registered an equivalent capability
// for that signal. Caller configuration always wins.
func defaultExporterWanted(plan config.ActivationPlan, sig config.Signal, callerRegistrations int) bool {
	return plan.Defaults(sig) && plan.OTLPExporter && callerRegistrations == 0
}

// exporterProtocol reads the SDK's own protocol selector. Everything else
// about OTLP (endpoint, headers, TLS) is resolved by the exporters
// themselves from the same environment.
func exporterProtocol(lookup func(string) (string, bool)) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup("OTEL_EXPORTER_OTLP_PROTOCOL"); ok && v != "" {
		return v
	}
	return "grpc"
}

// newResource creates the pipeline resource. Signals with active defaults
// get the distro identity attributes on top of the service attributes.
func (b *Builder) newResource(enrich bool) *resource.Resource {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(b.serviceName),
	}
	if b.serviceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(b.serviceVersion))
	}
	if enrich {
		attrs = append(attrs,
			attribute.String("telemetry.distro.name", distroName),
			attribute.String("telemetry.distro.version", Version),
		)
	}
	attrs = append(attrs, b.resourceAttrs...)
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

func newSpanExporter(ctx context.Context, protocol string) (sdktrace.SpanExporter, error) {
	switch protocol {
	case protocolHTTP:
		return otlptracehttp.New(ctx)
	default:
		return otlptracegrpc.New(ctx)
	}
}

func newMetricExporter(ctx context.Context, protocol string) (sdkmetric.Exporter, error) {
	switch protocol {
	case protocolHTTP:
		return otlpmetrichttp.New(ctx)
	default:
		return otlpmetricgrpc.New(ctx)
	}
}

func newLogExporter(ctx context.Context, protocol string) (sdklog.Exporter, error) {
	switch protocol {
	case protocolHTTP:
		return otlploghttp.New(ctx)
	default:
		return otlploggrpc.New(ctx)
	}
}
