package transfer

import (
	"context"

	"github.com/adamwoolhether/easyhttp/engine"
	"github.com/adamwoolhether/easyhttp/sink"
)

// Fetch performs a GET of url on a fresh handle and returns the body.
// A failed transfer returns an *Error whose message carries the engine's
// text for the code.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	h := NewDefault()
	defer h.Close()

	var body sink.Buffer
	err := h.Apply(
		URL(url),
		Callback{Data: engine.OptWriteData, Func: engine.OptWriteFunction, Sink: &body},
	)
	if err != nil {
		return nil, err
	}

	if err := h.Perform(ctx); err != nil {
		return nil, err
	}

	return body.Bytes(), nil
}
