package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/adamwoolhether/easyhttp/engine"
	"github.com/adamwoolhether/easyhttp/sink"
	"github.com/adamwoolhether/easyhttp/transfer"
)

// Client executes requests on a single transfer handle. Calls are
// serialized; use Clone for parallel transfers.
type Client struct {
	mu       sync.Mutex
	h        *transfer.Handle
	eng      engine.Engine
	logger   *slog.Logger
	defaults []transfer.Option
	follow   bool
}

// Build creates a Client. Without WithEngine or WithThrottle it uses the
// shared default engine.
func Build(optFns ...Option) (*Client, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	client := Client{
		eng:    opts.engine,
		logger: slog.Default(),
		follow: !opts.noFollowRedirects,
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	switch {
	case opts.throttle != nil && opts.engine != nil:
		return nil, errors.New("throttle cannot be combined with a custom engine")
	case opts.throttle != nil:
		eng, err := engine.New(
			engine.WithLogger(client.logger),
			engine.WithThrottle(opts.throttle.RPS, opts.throttle.Burst),
		)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		client.eng = eng
	case client.eng == nil:
		client.eng = engine.Default()
	}

	client.defaults = defaultOptions(opts)

	client.h = transfer.New(client.eng)
	if !client.h.Valid() {
		return nil, &TransferError{Code: engine.FailedInit, Message: client.eng.StrError(engine.FailedInit)}
	}

	return &client, nil
}

func defaultOptions(opts options) []transfer.Option {
	var defaults []transfer.Option

	if opts.timeout > 0 {
		defaults = append(defaults, transfer.Timeout(opts.timeout))
	}
	if opts.connectTimeout > 0 {
		defaults = append(defaults, transfer.ConnectTimeout(opts.connectTimeout))
	}
	if opts.proxy != "" {
		defaults = append(defaults, transfer.Proxy{Host: opts.proxy, User: opts.proxyUser, Pass: opts.proxyPass})
	}
	if opts.username != nil {
		defaults = append(defaults, transfer.Username(*opts.username), transfer.Password(*opts.password))
	}
	if opts.userAgent != nil {
		defaults = append(defaults, transfer.UserAgent(*opts.userAgent))
	}
	if opts.acceptEncoding != nil {
		defaults = append(defaults, transfer.AcceptEncoding(*opts.acceptEncoding))
	}
	if opts.verbose {
		defaults = append(defaults, transfer.Verbose(true))
	}
	if opts.maxRedirects != nil {
		defaults = append(defaults, transfer.MaxRedirects(*opts.maxRedirects))
	}
	if opts.failOnError {
		defaults = append(defaults, transfer.FailOnError(true))
	}

	return defaults
}

// Exec performs req and returns the buffered response. A transfer that
// does not complete returns a *TransferError and no Response.
func (c *Client) Exec(ctx context.Context, req Request) (*Response, error) {
	if err := Validate(req); err != nil {
		return nil, fmt.Errorf("validating request: %w", err)
	}

	var body sink.Buffer
	headers := sink.NewHeaders()

	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.perform(ctx, req, &body, headers)
	if err != nil {
		return nil, err
	}

	resp := Response{
		StatusCode: res.status,
		Headers:    headers.Map(),
		Body:       body.Bytes(),
	}

	return &resp, nil
}

// Do performs req, checks the response status against expCode and
// optionally decodes the JSON body.
func (c *Client) Do(ctx context.Context, req Request, expCode int, opts ...DoOption) error {
	var settings doOpts
	for _, opt := range opts {
		err := opt(&settings)
		if err != nil {
			return err
		}
	}

	resp, err := c.Exec(ctx, req)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}

	if resp.StatusCode != expCode {
		return unexpectedStatus(resp.StatusCode, resp.Body)
	}

	if settings.responseBody != nil {
		d := json.NewDecoder(bytes.NewReader(resp.Body))

		if settings.useJSONNum {
			d.UseNumber()
		}

		if err := d.Decode(settings.responseBody); err != nil {
			return fmt.Errorf("decoding body: %w", err)
		}
	}

	return nil
}

func unexpectedStatus(status int, body []byte) error {
	if len(body) > maxErrBodySize {
		body = body[:maxErrBodySize]
	}

	err := ErrUnexpectedStatusCode
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		err = errors.Join(ErrUnexpectedStatusCode, ErrAuthFailure)
	}

	return &UnexpectedStatusError{
		StatusCode: status,
		Body:       string(body),
		Err:        err,
	}
}

// Clone returns a Client on a duplicate of c's handle, sharing the
// engine and defaults.
func (c *Client) Clone() (*Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := c.h.Duplicate()
	if !h.Valid() {
		return nil, &TransferError{Code: engine.FailedInit, Message: c.eng.StrError(engine.FailedInit)}
	}

	clone := Client{
		h:        h,
		eng:      c.eng,
		logger:   c.logger,
		defaults: c.defaults,
		follow:   c.follow,
	}

	return &clone, nil
}

// Close releases the transfer handle. Further calls fail.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.h.Close()
}

type result struct {
	status   int
	received int64
}

// perform runs one transfer for req, pushing the body into body and the
// header lines into headers. The handle is reset on every exit path. The
// caller holds c.mu.
func (c *Client) perform(ctx context.Context, req Request, body, headers sink.Sink) (result, error) {
	defer c.h.Reset()

	opts := []transfer.Option{
		transfer.URL(req.URL),
		transfer.Callback{Data: engine.OptWriteData, Func: engine.OptWriteFunction, Sink: body},
		transfer.Callback{Data: engine.OptHeaderData, Func: engine.OptHeaderFunction, Sink: headers},
		transfer.FollowLocation(c.follow),
	}
	opts = append(opts, c.defaults...)
	opts = append(opts, methodOptions(req)...)

	if len(req.Headers) > 0 {
		var list *engine.List
		for _, name := range slices.Sorted(maps.Keys(req.Headers)) {
			if v := req.Headers[name]; v != "" {
				list = list.Append(name + ": " + v)
			} else {
				list = list.Append(name + ";")
			}
		}
		defer list.Free()

		opts = append(opts, transfer.HeaderList{ID: engine.OptHTTPHeader, List: list})
	}

	if err := c.h.Apply(opts...); err != nil {
		return result{}, fmt.Errorf("configuring transfer: %w", err)
	}

	if err := c.h.Perform(ctx); err != nil {
		var terr *transfer.Error
		if errors.As(err, &terr) {
			return result{}, &TransferError{Code: terr.Code, Message: c.eng.StrError(terr.Code)}
		}
		return result{}, err
	}

	var res result
	var err error
	if res.status, err = c.h.ResponseCode(); err != nil {
		return result{}, fmt.Errorf("reading response code: %w", err)
	}
	if res.received, err = c.h.SizeDownload(); err != nil {
		return result{}, fmt.Errorf("reading download size: %w", err)
	}

	return res, nil
}

// methodOptions maps the request method and body onto the engine's
// method selection: a body implies POST, NoBody implies HEAD, anything
// else is sent as a custom request.
func methodOptions(req Request) []transfer.Option {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	var opts []transfer.Option
	implied := http.MethodGet

	switch {
	case method == http.MethodHead:
		opts = append(opts, transfer.NoBody(true))
		implied = http.MethodHead
	case len(req.Body) > 0 || method == http.MethodPost:
		opts = append(opts, transfer.PostFields(req.Body))
		implied = http.MethodPost
	}

	if method != implied {
		opts = append(opts, transfer.CustomRequest(method))
	}

	return opts
}
