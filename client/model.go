package client

import (
	"errors"
	"fmt"

	"github.com/adamwoolhether/easyhttp/engine"
	"github.com/adamwoolhether/easyhttp/header"
)

// maxErrBodySize caps the amount of response body kept when building an
// error for an unexpected status code.
const maxErrBodySize = 4 << 10 // 4KB

// Request describes one transfer. An empty Method means GET and a URL
// without a scheme defaults to http.
type Request struct {
	Method  string     `json:"method" validate:"omitempty,httpmethod"`
	URL     string     `json:"url" validate:"required"`
	Headers header.Map `json:"headers" validate:"dive,keys,headername,endkeys,headervalue"`
	Body    []byte     `json:"body"`
}

// Response is the outcome of a completed transfer.
type Response struct {
	StatusCode int
	Headers    header.Map
	Body       []byte
}

var (
	// ErrUnexpectedStatusCode is the sentinel error wrapped by [UnexpectedStatusError].
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	// ErrAuthFailure is joined with [ErrUnexpectedStatusCode] when the server
	// responds with 401 Unauthorized or 403 Forbidden.
	ErrAuthFailure = errors.New("auth failure")
)

// UnexpectedStatusError is returned when the response status code does
// not match the expected value.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%v: %d, body: %s", e.Err, e.StatusCode, e.Body)
}

func (e *UnexpectedStatusError) Unwrap() error {
	return e.Err
}

// TransferError reports a transfer that did not complete. Message is the
// engine's text for Code.
type TransferError struct {
	Code    engine.Code
	Message string
}

func (e *TransferError) Error() string {
	return e.Message
}

func (e *TransferError) Unwrap() error {
	return e.Code
}
