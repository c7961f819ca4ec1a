package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/adamwoolhether/easyhttp/header"
)

// NewRequest builds a Request. With WithPayload the body is JSON-encoded
// and Content-Type defaults to "application/json".
func NewRequest(method, reqURL string, opts ...RequestOption) (Request, error) {
	var settings requestOpts
	for _, opt := range opts {
		err := opt(&settings)
		if err != nil {
			return Request{}, err
		}
	}

	req := Request{
		Method:  method,
		URL:     reqURL,
		Headers: make(header.Map),
	}

	if settings.body != nil {
		var payload bytes.Buffer
		if err := json.NewEncoder(&payload).Encode(settings.body); err != nil {
			return Request{}, fmt.Errorf("encoding request payload: %w", err)
		}
		req.Body = payload.Bytes()
		req.Headers[header.ContentType] = "application/json"
	}

	if settings.contentType != nil {
		req.Headers[header.ContentType] = *settings.contentType
	}

	for k, v := range settings.headers {
		req.Headers[k] = strings.Join(v, ", ")
	}

	if len(settings.cookies) > 0 {
		pairs := make([]string, 0, len(settings.cookies))
		for _, c := range settings.cookies {
			pairs = append(pairs, c.Name+"="+c.Value)
		}
		req.Headers[header.Cookie] = strings.Join(pairs, "; ")
	}

	return req, nil
}

// URL assembles a URL string for use in NewRequest.
func URL(scheme, host, path string, opts ...URLOption) string {
	var settings urlOpts
	for _, opt := range opts {
		opt(&settings)
	}

	if settings.port != nil {
		host = fmt.Sprintf("%s:%d", host, *settings.port)
	}

	endpoint := url.URL{
		Scheme: scheme,
		Host:   host,
		Path:   path,
	}

	if settings.queryStrings != nil {
		queryParams := url.Values{}
		for k, v := range settings.queryStrings {
			queryParams.Add(k, v)
		}

		endpoint.RawQuery = queryParams.Encode()
	}

	return endpoint.String()
}
