package engine

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/easyhttp/throttle"
)

// Option configures an HTTP engine.
type Option func(*options) error

type options struct {
	transport  *http.Transport
	logger     *slog.Logger
	tracer     trace.Tracer
	throttle   throttle.Config
	registerer prometheus.Registerer
}

// WithTransport replaces the pooled base transport. Sessions that need a
// proxy or a connect timeout work on clones of it.
func WithTransport(t *http.Transport) Option {
	return func(opts *options) error {
		if t == nil {
			return errors.New("transport must not be nil")
		}
		opts.transport = t
		return nil
	}
}

// WithLogger sets the engine's logger. Verbose sessions log their wire
// traffic to it at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		opts.logger = logger
		return nil
	}
}

// WithTracer records an "engine.perform" span per transfer.
func WithTracer(tracer trace.Tracer) Option {
	return func(opts *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		opts.tracer = tracer
		return nil
	}
}

// WithThrottle limits every session of the engine to rps requests per
// second with the given burst.
func WithThrottle(rps, burst int) Option {
	return func(opts *options) error {
		if rps <= 0 || burst <= 0 {
			return throttle.ErrMustNotBeZero
		}
		opts.throttle = throttle.Config{RPS: rps, Burst: burst}
		return nil
	}
}

// WithMetrics registers the engine's transfer metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(opts *options) error {
		if reg == nil {
			return errors.New("registerer must not be nil")
		}
		opts.registerer = reg
		return nil
	}
}
