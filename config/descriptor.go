package config

import (
	"fmt"
	"strconv"
)

// Option names, used as keys in partial sets and in error messages.
const (
	OptionFileLogDirectory = "FileLogDirectory"
	OptionFileLogLevel     = "FileLogLevel"
	OptionSkipOTLPExporter = "SkipOTLPExporter"
	OptionEnabledDefaults  = "EnabledDefaults"
)

// Descriptor declares one distribution setting: where each source reader
// finds it, its default, and how a raw string becomes a typed value. The
// descriptor table is immutable and defined once per process.
type Descriptor struct {
	Name    string
	EnvVar  string
	Key     string
	Default any
	Parse   func(raw string) (any, error)

	// explicit extracts a caller-set value from Options; assign writes the
	// final value into Resolved. Both keep the readers and the resolver
	// mechanical.
	explicit func(Options) (any, bool)
	assign   func(*Resolved, any)
}

// Options carries explicitly-set values, the highest-precedence source.
// A nil field means "not set", distinct from a set zero value.
type Options struct {
	FileLogDirectory *string
	FileLogLevel     *LogLevel
	SkipOTLPExporter *bool
	EnabledDefaults  *DefaultsFlags
}

// Resolved is the final option set after precedence merging. Every field
// holds exactly one value.
type Resolved struct {
	FileLogDirectory string
	FileLogLevel     LogLevel
	SkipOTLPExporter bool
	EnabledDefaults  DefaultsFlags
}

var descriptors = []Descriptor{
	{
		Name:    OptionFileLogDirectory,
		EnvVar:  "ELASTIC_OTEL_FILE_LOG_DIRECTORY",
		Key:     "elastic.opentelemetry.file_log_directory",
		Default: "",
		Parse:   func(raw string) (any, error) { return raw, nil },
		explicit: func(o Options) (any, bool) {
			if o.FileLogDirectory == nil {
				return nil, false
			}
			return *o.FileLogDirectory, true
		},
		assign: func(r *Resolved, v any) { r.FileLogDirectory = v.(string) },
	},
	{
		Name:    OptionFileLogLevel,
		EnvVar:  "ELASTIC_OTEL_FILE_LOG_LEVEL",
		Key:     "elastic.opentelemetry.file_log_level",
		Default: LevelInformation,
		Parse: func(raw string) (any, error) {
			level, err := ParseLogLevel(raw)
			if err != nil {
				return nil, err
			}
			return level, nil
		},
		explicit: func(o Options) (any, bool) {
			if o.FileLogLevel == nil {
				return nil, false
			}
			return *o.FileLogLevel, true
		},
		assign: func(r *Resolved, v any) { r.FileLogLevel = v.(LogLevel) },
	},
	{
		Name:    OptionSkipOTLPExporter,
		EnvVar:  "ELASTIC_OTEL_SKIP_OTLP_EXPORTER",
		Key:     "elastic.opentelemetry.skip_otlp_exporter",
		Default: false,
		Parse: func(raw string) (any, error) {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a boolean", ErrInvalidOptionValue, raw)
			}
			return b, nil
		},
		explicit: func(o Options) (any, bool) {
			if o.SkipOTLPExporter == nil {
				return nil, false
			}
			return *o.SkipOTLPExporter, true
		},
		assign: func(r *Resolved, v any) { r.SkipOTLPExporter = v.(bool) },
	},
	{
		Name:    OptionEnabledDefaults,
		EnvVar:  "ELASTIC_OTEL_DEFAULTS_ENABLED",
		Key:     "elastic.opentelemetry.defaults_enabled",
		Default: DefaultsFlags(0),
		Parse: func(raw string) (any, error) {
			flags, err := ParseDefaultsFlags(raw)
			if err != nil {
				return nil, err
			}
			return flags, nil
		},
		explicit: func(o Options) (any, bool) {
			if o.EnabledDefaults == nil {
				return nil, false
			}
			return *o.EnabledDefaults, true
		},
		assign: func(r *Resolved, v any) { r.EnabledDefaults = v.(DefaultsFlags) },
	},
}

// Describe returns the option descriptors in their stable declaration order.
func Describe() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}
