package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// LogLevel controls the verbosity of the distribution's diagnostic file log.
type LogLevel int

// Levels are ordered from most to least verbose. LevelNone disables file
// logging entirely.
const (
	LevelTrace LogLevel = iota
	LevelDebug
	LevelInformation
	LevelWarning
	LevelError
	LevelCritical
	LevelNone
)

// zapTraceLevel is a custom level below Debug, matching the diagnostic
// logger's ultra-verbose output. Debug is -1, so trace is -2.
const zapTraceLevel = zapcore.Level(-2)

var levelNames = map[LogLevel]string{
	LevelTrace:       "Trace",
	LevelDebug:       "Debug",
	LevelInformation: "Information",
	LevelWarning:     "Warning",
	LevelError:       "Error",
	LevelCritical:    "Critical",
	LevelNone:        "None",
}

// ParseLogLevel parses a level token case-insensitively.
func ParseLogLevel(raw string) (LogLevel, error) {
	for level, name := range levelNames {
		if strings.EqualFold(strings.TrimSpace(raw), name) {
			return level, nil
		}
	}
	return LevelInformation, fmt.Errorf("%w: %q is not a log level", ErrInvalidOptionValue, raw)
}

func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LogLevel(%d)", int(l))
}

// ZapLevel maps the level onto the zap scale used by the diagnostic logger.
// LevelNone maps above Fatal so no entry is ever enabled.
func (l LogLevel) ZapLevel() zapcore.Level {
	switch l {
	case LevelTrace:
		return zapTraceLevel
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInformation:
		return zapcore.InfoLevel
	case LevelWarning:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	case LevelCritical:
		return zapcore.FatalLevel
	default:
		return zapcore.FatalLevel + 1
	}
}
