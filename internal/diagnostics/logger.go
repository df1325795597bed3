// Package diagnostics provides the distribution's own diagnostic logging.
//
// File logging is best-effort: when the configured directory or file cannot
// be created, the logger degrades to no file output after surfacing a single
// warning. It never fails pipeline construction.
package diagnostics

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const scopeName = "github.com/elastic/edot-go"

// Options configures the diagnostic logger.
type Options struct {
	// Directory is where the log file is created; empty disables file output.
	Directory string

	// Level filters file output.
	Level zapcore.LevelEnabler

	// LoggerProvider, when set, tees diagnostics into the log signal
	// pipeline through the otelzap bridge.
	LoggerProvider log.LoggerProvider

	// Stderr receives the single degradation warning when file creation
	// fails. Defaults to os.Stderr.
	Stderr io.Writer
}

// Logger wraps zap with ownership of the diagnostic log file handle.
type Logger struct {
	zap  *zap.Logger
	file *os.File
	path string

	closeOnce sync.Once
	closeErr  error
}

// New creates the diagnostic logger. It never fails: file creation errors
// degrade to no file logging plus one warning on Stderr.
func New(opts Options) *Logger {
	l := &Logger{}

	var cores []zapcore.Core
	if opts.Directory != "" {
		file, path, err := openLogFile(opts.Directory)
		if err != nil {
			warnDegraded(opts.Stderr, opts.Directory, err)
		} else {
			l.file = file
			l.path = path
			cores = append(cores, zapcore.NewCore(newEncoder(), zapcore.AddSync(file), opts.Level))
		}
	}

	if opts.LoggerProvider != nil {
		cores = append(cores, otelzap.NewCore(scopeName,
			otelzap.WithLoggerProvider(opts.LoggerProvider),
		))
	}

	switch len(cores) {
	case 0:
		l.zap = zap.NewNop()
	case 1:
		l.zap = zap.New(cores[0])
	default:
		l.zap = zap.New(zapcore.NewTee(cores...))
	}
	return l
}

// newEncoder creates the JSON encoder used for the file log.
func newEncoder() zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(encoderCfg)
}

// openLogFile creates one log file per process start inside dir.
func openLogFile(dir string) (*os.File, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("failed to create log directory: %w", err)
	}
	name := fmt.Sprintf("elastic-otel-%d-%d.log", os.Getpid(), time.Now().UnixMilli())
	path := filepath.Join(dir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create log file: %w", err)
	}
	return file, path, nil
}

// warnDegraded surfaces the single non-fatal degradation warning.
func warnDegraded(w io.Writer, dir string, cause error) {
	if w == nil {
		w = os.Stderr
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), zapcore.WarnLevel)
	fallback := zap.New(core)
	fallback.Warn("diagnostic file logging unavailable, continuing without it",
		zap.String("directory", dir),
		zap.Error(cause),
	)
	_ = fallback.Sync()
}

func (l *Logger) Debug(msg string, fields ...zap.Field) {
	if l != nil {
		l.zap.Debug(msg, fields...)
	}
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	if l != nil {
		l.zap.Info(msg, fields...)
	}
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	if l != nil {
		l.zap.Warn(msg, fields...)
	}
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	if l != nil {
		l.zap.Error(msg, fields...)
	}
}

// Path returns the log file path, or empty when file logging is inactive.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// FileEnabled reports whether a log file was created.
func (l *Logger) FileEnabled() bool {
	return l != nil && l.file != nil
}

// Close flushes buffered entries and closes the log file handle. It is
// idempotent; repeat calls return the first result.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.closeOnce.Do(func() {
		_ = l.zap.Sync()
		if l.file != nil {
			l.closeErr = l.file.Close()
		}
	})
	return l.closeErr
}
