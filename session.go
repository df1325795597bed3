package edot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/elastic/edot-go/config"
	"github.com/elastic/edot-go/internal/diagnostics"
)

// defaultShutdownTimeout bounds Shutdown when the caller context carries no
// deadline.
const defaultShutdownTimeout = 5 * time.Second

const (
	stateActive int32 = iota + 1
	stateDisposed
)

// Session is the immutable, disposable result of building the pipeline. It
// owns the lifetime of every registered provider and of the diagnostic log
// file handle.
//
// Provider handles may be used concurrently by application code; their
// thread safety is the SDK's. Shutdown is idempotent, including under
// concurrent invocation: only the first caller performs releases, and
// concurrent callers block until release completes.
type Session struct {
	resolved config.Resolved
	plan     config.ActivationPlan

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	loggerProvider *sdklog.LoggerProvider

	diag         *diagnostics.Logger
	releases     []release
	otlpDefaults map[config.Signal]bool

	state        atomic.Int32
	shutdownOnce sync.Once
	shutdownErr  error
}

// release is one owned handle; releases run in reverse-acquisition order.
type release struct {
	name     string
	shutdown func(context.Context) error
}

type sessionParts struct {
	resolved       config.Resolved
	plan           config.ActivationPlan
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	loggerProvider *sdklog.LoggerProvider
	diag           *diagnostics.Logger
	otlpDefaults   map[config.Signal]bool
}

func newSession(parts sessionParts) *Session {
	s := &Session{
		resolved:       parts.resolved,
		plan:           parts.plan,
		tracerProvider: parts.tracerProvider,
		meterProvider:  parts.meterProvider,
		loggerProvider: parts.loggerProvider,
		diag:           parts.diag,
		otlpDefaults:   parts.otlpDefaults,
		releases: []release{
			{name: "tracer provider", shutdown: parts.tracerProvider.Shutdown},
			{name: "meter provider", shutdown: parts.meterProvider.Shutdown},
			{name: "logger provider", shutdown: parts.loggerProvider.Shutdown},
		},
	}
	s.state.Store(stateActive)
	return s
}

// Active reports whether the session owns a live pipeline.
func (s *Session) Active() bool {
	return s != nil && s.state.Load() == stateActive
}

// Disposed reports whether Shutdown has completed.
func (s *Session) Disposed() bool {
	return s != nil && s.state.Load() == stateDisposed
}

// Options returns the resolved option set the pipeline was built from.
func (s *Session) Options() config.Resolved {
	return s.resolved
}

// Plan returns the activation plan the defaults were applied under.
func (s *Session) Plan() config.ActivationPlan {
	return s.plan
}

// OTLPDefaultRegistered reports whether the default OTLP exporter was
// registered for the given signal. Caller registrations suppress it per
// signal.
func (s *Session) OTLPDefaultRegistered(sig config.Signal) bool {
	return s != nil && s.otlpDefaults[sig]
}

// TracerProvider returns the session's tracer provider handle.
func (s *Session) TracerProvider() *sdktrace.TracerProvider {
	return s.tracerProvider
}

// MeterProvider returns the session's meter provider handle.
func (s *Session) MeterProvider() *sdkmetric.MeterProvider {
	return s.meterProvider
}

// LoggerProvider returns the session's logger provider handle.
func (s *Session) LoggerProvider() *sdklog.LoggerProvider {
	return s.loggerProvider
}

// DiagnosticLogPath returns the diagnostic log file path, or empty when file
// logging is inactive.
func (s *Session) DiagnosticLogPath() string {
	if s == nil {
		return ""
	}
	return s.diag.Path()
}

// ForceFlush immediately exports pending telemetry on every provider.
func (s *Session) ForceFlush(ctx context.Context) error {
	if !s.Active() {
		return nil
	}
	var errs []error
	if err := s.tracerProvider.ForceFlush(ctx); err != nil {
		errs = append(errs, fmt.Errorf("trace flush: %w", err))
	}
	if err := s.meterProvider.ForceFlush(ctx); err != nil {
		errs = append(errs, fmt.Errorf("metric flush: %w", err))
	}
	if err := s.loggerProvider.ForceFlush(ctx); err != nil {
		errs = append(errs, fmt.Errorf("log flush: %w", err))
	}
	return errors.Join(errs...)
}

// Shutdown releases every owned handle exactly once, in reverse-acquisition
// order: logger provider, meter provider, tracer provider, then the
// diagnostic file handle last so provider teardown can still be logged.
// Repeat and concurrent calls observe the first call's result.
func (s *Session) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	s.shutdownOnce.Do(func() {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, defaultShutdownTimeout)
			defer cancel()
		}

		s.diag.Info("telemetry pipeline shutting down")

		var errs []error
		for i := len(s.releases) - 1; i >= 0; i-- {
			r := s.releases[i]
			if err := r.shutdown(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s shutdown: %w", r.name, err))
			}
		}
		if err := s.diag.Close(); err != nil {
			errs = append(errs, fmt.Errorf("diagnostic log close: %w", err))
		}

		s.shutdownErr = errors.Join(errs...)
		s.state.Store(stateDisposed)
	})
	return s.shutdownErr
}
