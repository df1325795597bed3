package config

import "fmt"

// Signal identifies one of the three telemetry data kinds.
type Signal int

const (
	SignalTraces Signal = iota
	SignalMetrics
	SignalLogs
)

func (s Signal) String() string {
	switch s {
	case SignalTraces:
		return "traces"
	case SignalMetrics:
		return "metrics"
	case SignalLogs:
		return "logs"
	default:
		return fmt.Sprintf("Signal(%d)", int(s))
	}
}

// Signals lists all signal kinds in registration order.
func Signals() []Signal {
	return []Signal{SignalTraces, SignalMetrics, SignalLogs}
}

// ActivationPlan records which signals receive opinionated defaults and
// whether the default OTLP exporter may be registered. The exporter flag is
// independent of the per-signal flags; a signal only gets the default
// exporter when both its flag and OTLPExporter are set.
type ActivationPlan struct {
	Traces  bool
	Metrics bool
	Logs    bool

	OTLPExporter bool
}

// Defaults reports whether the given signal carries opinionated defaults.
func (p ActivationPlan) Defaults(s Signal) bool {
	switch s {
	case SignalTraces:
		return p.Traces
	case SignalMetrics:
		return p.Metrics
	case SignalLogs:
		return p.Logs
	default:
		return false
	}
}

// Select computes the activation plan from resolved options.
//
// An unset flags value means every signal gets defaults. DefaultsNone turns
// every signal off and must stand alone; combining it with other flags is a
// configuration error. The exporter flag is governed solely by the
// skip-exporter option.
func Select(r *Resolved) (ActivationPlan, error) {
	flags := r.EnabledDefaults
	if flags.Has(DefaultsNone) {
		if flags != DefaultsNone {
			return ActivationPlan{}, fmt.Errorf("%w: got %q", ErrInvalidDefaultsCombination, flags.String())
		}
		return ActivationPlan{OTLPExporter: !r.SkipOTLPExporter}, nil
	}
	if flags == 0 {
		flags = DefaultsAll
	}
	return ActivationPlan{
		Traces:       flags.Has(DefaultsTraces),
		Metrics:      flags.Has(DefaultsMetrics),
		Logs:         flags.Has(DefaultsLogs),
		OTLPExporter: !r.SkipOTLPExporter,
	}, nil
}
