// Package edot is the Elastic distribution layer for the OpenTelemetry Go
// SDK.
//
// # Overview
//
// The distribution does not reimplement any part of the SDK. It resolves
// Elastic-specific configuration from layered sources (explicit options,
// ELASTIC_OTEL_* environment variables, a structured koanf store), decides
// which opinionated defaults to activate per signal, assembles trace, metric,
// and log providers, and hands ownership of the whole pipeline to a single
// disposable Session.
//
// # Usage
//
// Build a session at startup and shut it down on exit:
//
//	session, err := edot.NewSession(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Shutdown(ctx)
//
// Caller registrations always win over defaults. A caller-supplied span
// exporter, metric reader, or log processor suppresses the default OTLP
// registration for that signal only:
//
//	session, err := edot.NewSession(ctx,
//	    edot.WithServiceName("checkout"),
//	    edot.WithSpanExporter(myExporter),
//	)
//
// OTLP endpoint and header resolution is left entirely to the SDK exporters,
// which read OTEL_EXPORTER_OTLP_* themselves. This package only decides
// whether an exporter is registered at all.
package edot
