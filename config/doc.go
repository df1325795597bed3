// Package config resolves Elastic distribution settings from layered sources.
//
// # Overview
//
// Four settings control the distribution's behavior: the diagnostic file log
// directory and level, whether the default OTLP exporter is skipped, and
// which signals receive opinionated defaults. Each setting is declared once
// as a Descriptor carrying its environment variable name, structured
// configuration key, default value, and parse function. Source readers
// (environment, koanf store, explicit options) produce partial sets from the
// descriptor table, and Resolve merges them with fixed precedence:
//
//	explicit options > environment > structured configuration > default
//
// Resolution is per option: the first source that supplies a value wins, and
// lower-precedence values for that option are never evaluated.
//
// # Usage
//
//	resolved, err := config.Resolve(
//	    config.Options{},
//	    config.EnvironmentSet(nil),
//	    config.StructuredSet(store),
//	)
//	if err != nil {
//	    return err
//	}
//	plan, err := config.Select(resolved)
//
// The ActivationPlan returned by Select tells the pipeline builder which
// signals get default processors and whether the OTLP exporter is
// registered. Endpoint and header resolution stays with the SDK exporters
// themselves; this package never reads OTEL_EXPORTER_OTLP_* variables.
package config
