package config

import (
	"fmt"
	"strings"
)

// DefaultsFlags is the set of signals that receive opinionated defaults.
// The zero value means "unset", which Select treats as DefaultsAll.
type DefaultsFlags uint8

const (
	// DefaultsTraces enables the default trace pipeline.
	DefaultsTraces DefaultsFlags = 1 << iota
	// DefaultsMetrics enables the default metric pipeline.
	DefaultsMetrics
	// DefaultsLogs enables the default log pipeline.
	DefaultsLogs
	// DefaultsNone explicitly disables all opinionated defaults. It is
	// mutually exclusive with every other flag; Select rejects mixed values.
	DefaultsNone
)

// DefaultsAll enables defaults for every signal.
const DefaultsAll = DefaultsTraces | DefaultsMetrics | DefaultsLogs

// Has reports whether every flag in mask is set.
func (f DefaultsFlags) Has(mask DefaultsFlags) bool {
	return f&mask == mask
}

// ParseDefaultsFlags parses a comma-separated flag list such as
// "Traces,Metrics". Tokens are case-insensitive. An empty value parses to
// DefaultsAll, matching the unset default.
func ParseDefaultsFlags(raw string) (DefaultsFlags, error) {
	var flags DefaultsFlags
	seen := false
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		seen = true
		switch strings.ToLower(token) {
		case "none":
			flags |= DefaultsNone
		case "traces":
			flags |= DefaultsTraces
		case "metrics":
			flags |= DefaultsMetrics
		case "logs":
			flags |= DefaultsLogs
		case "all":
			flags |= DefaultsAll
		default:
			return 0, fmt.Errorf("%w: %q", ErrUnknownDefaultsFlag, token)
		}
	}
	if !seen {
		return DefaultsAll, nil
	}
	return flags, nil
}

func (f DefaultsFlags) String() string {
	if f == 0 {
		return ""
	}
	var parts []string
	if f.Has(DefaultsNone) {
		parts = append(parts, "None")
	}
	if f.Has(DefaultsTraces) {
		parts = append(parts, "Traces")
	}
	if f.Has(DefaultsMetrics) {
		parts = append(parts, "Metrics")
	}
	if f.Has(DefaultsLogs) {
		parts = append(parts, "Logs")
	}
	return strings.Join(parts, ",")
}
