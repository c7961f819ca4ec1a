package client

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/adamwoolhether/easyhttp/engine"
	"github.com/adamwoolhether/easyhttp/throttle"
)

// Option is a functional option for configuring a [Client] via [Build].
type Option func(*options) error
type options struct {
	engine            engine.Engine
	logger            *slog.Logger
	timeout           time.Duration
	connectTimeout    time.Duration
	proxy             string
	proxyUser         *string
	proxyPass         *string
	username          *string
	password          *string
	userAgent         *string
	acceptEncoding    *string
	verbose           bool
	noFollowRedirects bool
	maxRedirects      *int
	failOnError       bool
	throttle          *throttle.Config
}

// WithEngine replaces the shared default engine.
func WithEngine(eng engine.Engine) Option {
	return func(c *options) error {
		if eng == nil {
			return errors.New("engine must not be nil")
		}
		c.engine = eng
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(c *options) error {
		c.logger = logger
		return nil
	}
}

// WithTimeout bounds every transfer made by the [Client].
func WithTimeout(d time.Duration) Option {
	return func(c *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		c.timeout = d
		return nil
	}
}

// WithConnectTimeout bounds connection setup.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *options) error {
		if d < 0 {
			return errors.New("connect timeout must not be negative")
		}
		c.connectTimeout = d
		return nil
	}
}

// WithProxy routes transfers through host. Credentials are optional and
// given as user then password.
func WithProxy(host string, credentials ...string) Option {
	return func(c *options) error {
		if host == "" {
			return errors.New("proxy host must not be empty")
		}
		if len(credentials) > 2 {
			return errors.New("proxy credentials take a user and a password")
		}
		c.proxy = host
		if len(credentials) > 0 {
			c.proxyUser = &credentials[0]
		}
		if len(credentials) > 1 {
			c.proxyPass = &credentials[1]
		}
		return nil
	}
}

// WithCredentials sets basic auth credentials for every transfer.
func WithCredentials(username, password string) Option {
	return func(c *options) error {
		c.username = &username
		c.password = &password
		return nil
	}
}

// WithUserAgent sets a persistent User-Agent header.
func WithUserAgent(header string) Option {
	return func(c *options) error {
		c.userAgent = &header
		return nil
	}
}

// WithVerbose logs the wire exchange of each transfer at debug level.
func WithVerbose() Option {
	return func(c *options) error {
		c.verbose = true
		return nil
	}
}

// WithNoFollowRedirects prevents the [Client] from following redirects.
func WithNoFollowRedirects() Option {
	return func(c *options) error {
		c.noFollowRedirects = true
		return nil
	}
}

// WithMaxRedirects caps followed redirects. -1 means unlimited.
func WithMaxRedirects(n int) Option {
	return func(c *options) error {
		if n < -1 {
			return fmt.Errorf("max redirects %d must be -1 or greater", n)
		}
		c.maxRedirects = &n
		return nil
	}
}

// WithFailOnError makes a response status of 400 or more a
// [TransferError] with code engine.HTTPReturnedError.
func WithFailOnError() Option {
	return func(c *options) error {
		c.failOnError = true
		return nil
	}
}

// WithAcceptEncoding advertises and transparently decodes the given
// content encodings. An empty value enables every supported encoding.
func WithAcceptEncoding(encodings ...string) Option {
	return func(c *options) error {
		v := strings.Join(encodings, ", ")
		c.acceptEncoding = &v
		return nil
	}
}

// WithThrottle enables token-bucket rate limiting with the given requests
// per second and burst capacity. It builds a dedicated engine and cannot
// be combined with WithEngine.
func WithThrottle(rps, burst int) Option {
	return func(c *options) error {
		if rps <= 0 || burst <= 0 {
			return fmt.Errorf("rps[%d] and burst[%d] %w", rps, burst, throttle.ErrMustNotBeZero)
		}
		c.throttle = &throttle.Config{RPS: rps, Burst: burst}
		return nil
	}
}

// DoOption is a functional option for [Client.Do].
type DoOption func(options *doOpts) error

type doOpts struct {
	responseBody any
	useJSONNum   bool
}

// WithDestination decodes the JSON response body into bodyTemplate.
// bodyTemplate must be a pointer.
func WithDestination[T any](bodyTemplate *T) DoOption {
	return func(opts *doOpts) error {
		if bodyTemplate == nil {
			return errors.New("destination must not be nil")
		}
		opts.responseBody = bodyTemplate

		return nil
	}
}

// WithJSONNumb tells the JSON decoder to use [json.Decoder.UseNumber],
// preserving number precision as [json.Number] instead of float64.
func WithJSONNumb() DoOption {
	return func(opts *doOpts) error {
		opts.useJSONNum = true

		return nil
	}
}

// RequestOption is a functional option for [NewRequest].
type RequestOption func(options *requestOpts) error

type requestOpts struct {
	body        any
	contentType *string
	cookies     []*http.Cookie
	headers     map[string][]string
}

// WithPayload sets the JSON-encoded request body.
func WithPayload(body any) RequestOption {
	return func(opts *requestOpts) error {
		opts.body = body

		return nil
	}
}

// WithContentType overrides the default "application/json" Content-Type header.
func WithContentType(contentType string) RequestOption {
	return func(opts *requestOpts) error {
		if contentType == "" {
			return errors.New("cannot use empty content type")
		}

		opts.contentType = &contentType

		return nil
	}
}

// WithHeaders adds custom headers to the request. Several values for one
// name are folded into a single comma-separated value.
func WithHeaders(headers map[string][]string) RequestOption {
	return func(opts *requestOpts) error {
		opts.headers = headers

		return nil
	}
}

// WithCookies attaches the given cookies to the request.
func WithCookies(cookies ...*http.Cookie) RequestOption {
	return func(opts *requestOpts) error {
		opts.cookies = cookies

		return nil
	}
}

// URLOption is a functional option for [URL].
type URLOption func(options *urlOpts)

type urlOpts struct {
	queryStrings map[string]string
	port         *int
}

// WithQueryStrings appends query parameters to the URL.
func WithQueryStrings(queryKV map[string]string) URLOption {
	return func(opts *urlOpts) {
		opts.queryStrings = queryKV
	}
}

// WithPort sets the port number on the URL's host.
func WithPort(port int) URLOption {
	return func(opts *urlOpts) {
		opts.port = &port
	}
}
