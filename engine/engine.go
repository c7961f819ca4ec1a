package engine

import (
	"context"

	"github.com/google/uuid"
)

// WriteFunc receives one chunk pushed by a Session during Perform,
// together with the value stored in the paired data slot. It must
// return len(chunk) to acknowledge the chunk; any other value aborts
// the transfer with WriteError.
type WriteFunc func(chunk []byte, data any) int

// Engine creates Sessions.
type Engine interface {
	// NewSession allocates a fresh Session with default configuration.
	// It returns nil when no session can be allocated.
	NewSession() Session

	// StrError returns the human-readable message for c.
	StrError(c Code) string
}

// Session is one configurable transfer context. A Session is not safe
// for concurrent use.
type Session interface {
	// ID returns the session token. Two live sessions never share an ID.
	ID() uuid.UUID

	// Configure stores value in the slot identified by id.
	Configure(id OptionID, value any) Code

	// Perform executes the configured transfer and returns once it has
	// concluded. Registered WriteFuncs are only invoked from within
	// Perform.
	Perform(ctx context.Context) Code

	// Reset restores the default configuration, dropping every option
	// and callback registration, while keeping the session ID.
	Reset()

	// Duplicate returns a new Session with its own ID carrying a copy of
	// the current configuration.
	Duplicate() Session

	// Destroy releases the session. Every later call reports
	// BadFunctionArgument.
	Destroy()

	// Escape percent-encodes s as a single URL component.
	Escape(s string) string

	// Unescape decodes the percent-encoded sequences of s.
	Unescape(s string) string

	// Info returns information about the last Perform.
	Info(id InfoID) (any, Code)
}
