package throttle

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

var (
	ErrMustNotBeZero = errors.New("must be greater than zero")
	ErrWaitingFailed = errors.New("limiter waiting failed")
	ErrContextEnded  = errors.New("throttle context ended")
)

// Config defines the limiter's requests per second and burst size.
type Config struct {
	RPS   int `mapstructure:"rps" validate:"gte=0"`
	Burst int `mapstructure:"burst" validate:"gte=0"`
}

// Enabled reports whether c describes an active limit.
func (c Config) Enabled() bool {
	return c.RPS > 0 || c.Burst > 0
}

// Limiter is a shared token bucket.
type Limiter struct {
	limiter *rate.Limiter
	rps     int
	burst   int
	logFn   func() *slog.Logger
}

// New validates cfg and returns a Limiter. logFn lazily resolves the
// logger at request time, so option ordering does not matter. A
// nil-returning logFn skips the exhaustion logging.
func New(cfg Config, logFn func() *slog.Logger) (*Limiter, error) {
	if cfg.RPS <= 0 || cfg.Burst <= 0 {
		return nil, fmt.Errorf("rps[%d] and burst[%d] %w", cfg.RPS, cfg.Burst, ErrMustNotBeZero)
	}

	if logFn == nil {
		logFn = func() *slog.Logger { return nil }
	}

	l := Limiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		rps:     cfg.RPS,
		burst:   cfg.Burst,
		logFn:   logFn,
	}

	return &l, nil
}

// Wrap returns an http.RoundTripper that waits on l before handing each
// request to next.
func (l *Limiter) Wrap(next http.RoundTripper) http.RoundTripper {
	return &roundTripper{lim: l, next: next}
}

type roundTripper struct {
	lim  *Limiter
	next http.RoundTripper
}

func (t *roundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w early: %w", ErrContextEnded, err)
	}

	var waited time.Duration
	logger := t.lim.logFn()
	if logger != nil && !t.lim.limiter.Allow() {
		logger.Info("throttle tokens exhausted", "rate", t.lim.rps, "burst", t.lim.burst, "host", r.URL.Host)

		defer func() {
			logger.Info("throttle wait complete", "waited", waited.String(), "rate", t.lim.rps, "burst", t.lim.burst)
		}()
	}

	start := time.Now()

	err := t.lim.limiter.Wait(ctx)
	waited = time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWaitingFailed, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w post-wait: %w", ErrContextEnded, err)
	}

	return t.next.RoundTrip(r)
}
