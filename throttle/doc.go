// Package throttle rate-limits outbound transfers with a token bucket
// from [golang.org/x/time/rate].
//
// A [Limiter] owns one bucket and can wrap any number of transports, so
// every session of an engine draws from the same budget even when a
// session uses its own proxy transport:
//
//	lim, err := throttle.New(throttle.Config{RPS: 10, Burst: 5}, func() *slog.Logger { return slog.Default() })
//	rt := lim.Wrap(http.DefaultTransport)
//
// When the bucket is empty, requests block until a token is available or
// the request context ends.
package throttle
