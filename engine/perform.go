package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/easyhttp/header"
)

const (
	// maxWriteSize bounds a single body chunk handed to the write callback.
	maxWriteSize = 16 * 1024

	defaultMaxRedirs = 30
	formContentType  = "application/x-www-form-urlencoded"
)

var errTooManyRedirects = errors.New("maximum redirects followed")

// Perform runs the configured transfer. Header and body chunks are pushed
// to the registered callbacks before it returns.
func (s *session) Perform(ctx context.Context) Code {
	if s.destroyed {
		return BadFunctionArgument
	}

	ctx, span := s.eng.tracer.Start(ctx, "engine.perform", trace.WithAttributes(
		attribute.String("session.id", s.id.String()),
	))
	defer span.End()

	s.info = transferInfo{}
	start := time.Now()

	code := s.transfer(ctx)

	s.info.totalTime = time.Since(start)
	s.verbose("*", fmt.Sprintf("transfer done: %d %s", code, code))

	span.SetAttributes(
		attribute.Int("http.response.status_code", s.info.responseCode),
		attribute.Int("easyhttp.code", int(code)),
	)
	if code != OK {
		span.SetStatus(otelcodes.Error, code.String())
	}

	s.eng.metrics.observe(code, s.info)

	return code
}

func (s *session) transfer(ctx context.Context) Code {
	target, code := normalizeURL(s.str(OptURL))
	if code != OK {
		return code
	}

	proxy, proxyKey, code := s.proxy()
	if code != OK {
		return code
	}

	connectTimeout := time.Duration(s.long(OptConnectTimeout, 0)) * time.Second
	tr := s.sessionTransport(proxy, proxyKey+"|"+connectTimeout.String(), connectTimeout)

	rc := resty.NewWithClient(&http.Client{Transport: s.eng.roundTripper(tr)}).
		SetLogger(restyLogger{logger: s.eng.logger}).
		SetCookieJar(nil).
		SetRedirectPolicy(s.redirectPolicy())

	if d := s.timeout(); d > 0 {
		rc.SetTimeout(d)
	}

	if s.has(OptUsername) || s.has(OptPassword) {
		rc.SetBasicAuth(s.str(OptUsername), s.str(OptPassword))
	}

	method := s.method()
	hdr := s.requestHeader(method)

	// resty's middleware fills in its own defaults; the hook runs on the
	// final request and puts the configured header set back in place.
	rc.SetPreRequestHook(func(_ *resty.Client, r *http.Request) error {
		auth := r.Header.Values(header.Authorization)

		r.Header = hdr.Clone()
		if len(auth) > 0 && len(r.Header.Values(header.Authorization)) == 0 {
			r.Header[header.Authorization] = auth
		}

		s.verbose(">", r.Method+" "+r.URL.String())
		for _, name := range slices.Sorted(maps.Keys(r.Header)) {
			for _, v := range r.Header[name] {
				s.verbose(">", name+": "+v)
			}
		}

		return nil
	})

	req := rc.R().
		SetContext(ctx).
		SetDoNotParseResponse(true)

	if body, ok := s.opts[OptPostFields].([]byte); ok && method != http.MethodHead && len(body) > 0 {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, target)
	if err != nil {
		if resp != nil && resp.RawResponse != nil && resp.RawResponse.Body != nil {
			resp.RawResponse.Body.Close()
		}
		s.verbose("*", err.Error())
		return classify(ctx, err, phaseRequest)
	}

	raw := resp.RawResponse
	defer func() {
		if err := raw.Body.Close(); err != nil {
			s.eng.logger.Debug("failed to close response body", "session", s.id, "error", err)
		}
	}()

	s.info.responseCode = raw.StatusCode
	s.info.contentType = raw.Header.Get(header.ContentType)
	if raw.Request != nil && raw.Request.URL != nil {
		s.info.effectiveURL = raw.Request.URL.String()
	}

	if s.flag(OptFailOnError) && raw.StatusCode >= http.StatusBadRequest {
		s.verbose("<", raw.Proto+" "+raw.Status)
		return HTTPReturnedError
	}

	if code := s.deliverHeaders(raw); code != OK {
		return code
	}

	if method == http.MethodHead {
		return OK
	}

	return s.deliverBody(ctx, raw)
}

// requestHeader builds the header set sent on the wire. An unset
// User-Agent is kept as an empty value so net/http sends none.
func (s *session) requestHeader(method string) http.Header {
	hdr := make(http.Header)

	if _, ok := s.opts[OptPostFields].([]byte); ok && method != http.MethodHead {
		hdr.Set(header.ContentType, formContentType)
	}

	if v := s.str(OptReferer); v != "" {
		hdr.Set(header.Referer, v)
	}

	hdr.Set(header.UserAgent, s.str(OptUserAgent))

	if s.has(OptAcceptEncoding) {
		enc := s.str(OptAcceptEncoding)
		if enc == "" {
			enc = supportedEncodings
		}
		hdr.Set(header.AcceptEncoding, enc)
	}

	s.applyHeaderList(hdr)

	if _, ok := hdr[header.UserAgent]; !ok {
		hdr[header.UserAgent] = []string{""}
	}

	return hdr
}

// deliverHeaders pushes the final response's header block. Intermediate
// redirect hops are not delivered.
func (s *session) deliverHeaders(resp *http.Response) Code {
	showHeaders := s.flag(OptHeader)

	for _, line := range wireHeader(resp) {
		s.info.headerSize += len(line)
		s.verbose("<", line)

		if code := s.push(OptHeaderFunction, OptHeaderData, []byte(line)); code != OK {
			return code
		}

		if showHeaders {
			if code := s.push(OptWriteFunction, OptWriteData, []byte(line)); code != OK {
				return code
			}
		}
	}

	return OK
}

func (s *session) deliverBody(ctx context.Context, resp *http.Response) Code {
	br, err := newBodyReader(resp.Body, resp.Header.Get(header.ContentEncoding), s.has(OptAcceptEncoding))
	if err != nil {
		return br.errCode(ctx, err)
	}
	defer br.Close()
	defer func() { s.info.sizeDownload = br.src.n }()

	buf := make([]byte, maxWriteSize)
	for {
		n, err := br.Read(buf)
		if n > 0 {
			if code := s.push(OptWriteFunction, OptWriteData, buf[:n]); code != OK {
				return code
			}
		}

		switch {
		case errors.Is(err, io.EOF):
			return OK
		case err != nil:
			s.verbose("*", err.Error())
			return br.errCode(ctx, err)
		}
	}
}

// push hands chunk to the callback in fnID together with the value in
// dataID. A missing callback discards the chunk.
func (s *session) push(fnID, dataID OptionID, chunk []byte) Code {
	fn, ok := s.opts[fnID].(WriteFunc)
	if !ok || fn == nil {
		return OK
	}

	if n := fn(chunk, s.opts[dataID]); n != len(chunk) {
		return WriteError
	}

	return OK
}

// applyHeaderList copies the configured header list onto h. The first
// line for a name replaces any internally set value, "Name:" removes the
// header and "Name;" sends it with an empty value.
func (s *session) applyHeaderList(h http.Header) {
	l, _ := s.opts[OptHTTPHeader].(*List)

	seen := make(map[string]bool)
	for _, line := range l.Lines() {
		line = strings.TrimSpace(line)

		if name, ok := strings.CutSuffix(line, ";"); ok && !strings.Contains(name, ":") {
			h.Set(name, "")
			continue
		}

		name, value, ok := header.Parse([]byte(line))
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			continue
		}

		value = strings.TrimSpace(value)
		if value == "" {
			h.Del(name)
			continue
		}

		key := http.CanonicalHeaderKey(name)
		if !seen[key] {
			h.Set(key, value)
			seen[key] = true
			continue
		}
		h.Add(key, value)
	}
}

func (s *session) redirectPolicy() resty.RedirectPolicy {
	follow := s.flag(OptFollowLocation)
	maxRedirs := s.long(OptMaxRedirs, defaultMaxRedirs)

	return resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
		if !follow {
			return http.ErrUseLastResponse
		}

		if maxRedirs >= 0 && int64(len(via)) > maxRedirs {
			return errTooManyRedirects
		}

		s.info.redirectCount = len(via)
		s.verbose("*", "following redirect to "+req.URL.String())

		return nil
	})
}

func (s *session) proxy() (func(*http.Request) (*url.URL, error), string, Code) {
	host := s.str(OptProxy)
	if host == "" {
		return nil, "", OK
	}

	if !strings.Contains(host, "://") {
		host = "http://" + host
	}

	u, err := url.Parse(host)
	if err != nil || u.Host == "" {
		return nil, "", CouldntResolveProxy
	}

	if s.has(OptProxyUsername) || s.has(OptProxyPassword) {
		u.User = url.UserPassword(s.str(OptProxyUsername), s.str(OptProxyPassword))
	}

	return http.ProxyURL(u), u.String(), OK
}

// timeout prefers the millisecond option over the seconds one.
func (s *session) timeout() time.Duration {
	if ms := s.long(OptTimeoutMS, 0); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}

	return time.Duration(s.long(OptTimeout, 0)) * time.Second
}

func (s *session) method() string {
	switch {
	case s.str(OptCustomRequest) != "":
		return s.str(OptCustomRequest)
	case s.flag(OptNoBody):
		return http.MethodHead
	case s.has(OptPostFields):
		return http.MethodPost
	}

	return http.MethodGet
}

func (s *session) verbose(prefix, line string) {
	if !s.flag(OptVerbose) {
		return
	}

	s.eng.logger.Debug(prefix+" "+strings.TrimRight(line, "\r\n"), "session", s.id)
}

// normalizeURL defaults a missing scheme to http and rejects anything
// that is not http or https.
func normalizeURL(raw string) (string, Code) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", URLMalformat
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", URLMalformat
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", UnsupportedProtocol
	}

	if u.Host == "" {
		return "", URLMalformat
	}

	return u.String(), OK
}

// wireHeader renders the response header block the way it appeared on
// the wire: status line, one line per value with names sorted, and the
// closing blank line.
func wireHeader(resp *http.Response) []string {
	lines := make([]string, 0, len(resp.Header)+2)
	lines = append(lines, resp.Proto+" "+resp.Status+"\r\n")

	for _, name := range slices.Sorted(maps.Keys(resp.Header)) {
		for _, v := range resp.Header[name] {
			lines = append(lines, name+": "+v+"\r\n")
		}
	}

	return append(lines, "\r\n")
}
