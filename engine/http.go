package engine

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/adamwoolhether/easyhttp/throttle"
)

// HTTP is the default Engine. Its sessions execute transfers over a
// shared pooled transport.
type HTTP struct {
	transport *http.Transport
	limiter   *throttle.Limiter
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *metrics
}

// New builds an HTTP engine.
func New(optFns ...Option) (*HTTP, error) {
	// Content decoding is driven by OptAcceptEncoding, not the transport.
	tr := cleanhttp.DefaultPooledTransport()
	tr.DisableCompression = true

	opts := options{
		transport: tr,
		logger:    slog.Default(),
		tracer:    noop.NewTracerProvider().Tracer(""),
	}

	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying engine option: %w", err)
		}
	}

	e := HTTP{
		transport: opts.transport,
		logger:    opts.logger,
		tracer:    opts.tracer,
	}

	if opts.throttle.Enabled() {
		lim, err := throttle.New(opts.throttle, func() *slog.Logger { return e.logger })
		if err != nil {
			return nil, fmt.Errorf("creating throttle: %w", err)
		}
		e.limiter = lim
	}

	if opts.registerer != nil {
		m, err := newMetrics(opts.registerer)
		if err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}
		e.metrics = m
	}

	return &e, nil
}

var defaultEngine = sync.OnceValue(func() *HTTP {
	e, err := New()
	if err != nil {
		panic(err)
	}

	return e
})

// Default returns the shared HTTP engine built with no options.
func Default() *HTTP {
	return defaultEngine()
}

// NewSession returns a session with default configuration, or nil when no
// session token can be generated.
func (e *HTTP) NewSession() Session {
	id, err := uuid.NewRandom()
	if err != nil {
		e.logger.Error("failed to allocate session", "error", err)
		return nil
	}

	return &session{
		id:   id,
		eng:  e,
		opts: make(map[OptionID]any),
	}
}

// StrError returns the message for c.
func (e *HTTP) StrError(c Code) string {
	return StrError(c)
}

func (e *HTTP) roundTripper(t *http.Transport) http.RoundTripper {
	if e.limiter == nil {
		return t
	}

	return e.limiter.Wrap(t)
}
