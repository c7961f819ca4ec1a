// Package sink bridges the engine's callback protocol to caller-owned
// accumulators.
//
// A [Sink] is stored in a session's data slot and [Trampoline] in the
// paired function slot. During Perform the engine calls the trampoline
// with each chunk and the slot value, and the trampoline hands the chunk
// to the sink:
//
//	var body sink.Buffer
//	s.Configure(engine.OptWriteData, &body)
//	s.Configure(engine.OptWriteFunction, sink.Trampoline)
package sink

import (
	"bytes"

	"github.com/adamwoolhether/easyhttp/engine"
	"github.com/adamwoolhether/easyhttp/header"
)

// Sink consumes chunks pushed by the engine. Accept must return
// len(chunk) to acknowledge the chunk; any other count aborts the
// transfer with engine.WriteError.
type Sink interface {
	Accept(chunk []byte) int
}

// Trampoline is the engine.WriteFunc registered next to a Sink. A data
// slot that does not hold a Sink acknowledges nothing, which aborts the
// transfer.
var Trampoline engine.WriteFunc = trampoline

func trampoline(chunk []byte, data any) int {
	s, ok := data.(Sink)
	if !ok {
		return 0
	}

	return s.Accept(chunk)
}

// Buffer accumulates every chunk it accepts.
type Buffer struct {
	buf bytes.Buffer
}

func (b *Buffer) Accept(chunk []byte) int {
	n, _ := b.buf.Write(chunk)
	return n
}

// Bytes returns the accumulated bytes. The slice aliases the buffer until
// the next Accept.
func (b *Buffer) Bytes() []byte {
	return b.buf.Bytes()
}

// Len returns the number of accumulated bytes.
func (b *Buffer) Len() int {
	return b.buf.Len()
}

// Headers parses each accepted chunk as one header line into a
// header.Map. Lines that are not headers are skipped but still
// acknowledged.
type Headers struct {
	m header.Map
}

// NewHeaders returns a Headers sink with an empty map.
func NewHeaders() *Headers {
	return &Headers{m: make(header.Map)}
}

func (h *Headers) Accept(chunk []byte) int {
	if h.m == nil {
		h.m = make(header.Map)
	}

	h.m.Add(chunk)

	return len(chunk)
}

// Map returns the collected headers.
func (h *Headers) Map() header.Map {
	return h.m
}

// Func adapts a function to a Sink.
type Func func(chunk []byte) int

func (f Func) Accept(chunk []byte) int {
	return f(chunk)
}

// Discard acknowledges and drops every chunk.
var Discard Sink = Func(func(chunk []byte) int { return len(chunk) })
