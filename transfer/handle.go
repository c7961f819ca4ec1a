package transfer

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"

	"github.com/adamwoolhether/easyhttp/engine"
)

// Handle owns exactly one engine session.
type Handle struct {
	session engine.Session
	cleanup runtime.Cleanup
	closed  bool
}

// New returns a Handle with a fresh session from eng. When eng cannot
// provide a session the Handle is invalid: Valid reports false and every
// operation fails with engine.BadFunctionArgument.
func New(eng engine.Engine) *Handle {
	var h Handle
	if eng != nil {
		h.session = eng.NewSession()
	}

	h.track()

	return &h
}

// NewDefault returns a Handle on the shared default engine.
func NewDefault() *Handle {
	return New(engine.Default())
}

// track destroys the session of a Handle that is dropped without Close.
func (h *Handle) track() {
	if h.session == nil {
		return
	}

	h.cleanup = runtime.AddCleanup(h, func(s engine.Session) { s.Destroy() }, h.session)
}

// Valid reports whether h holds a live session.
func (h *Handle) Valid() bool {
	return h != nil && h.session != nil && !h.closed
}

func (h *Handle) check(op string) error {
	if !h.Valid() {
		return &Error{Op: op, Code: engine.BadFunctionArgument}
	}

	return nil
}

// SessionID returns the session token, or uuid.Nil for an invalid Handle.
func (h *Handle) SessionID() uuid.UUID {
	if !h.Valid() {
		return uuid.Nil
	}

	return h.session.ID()
}

// Apply configures h with opts in order, stopping at the first option the
// engine rejects.
func (h *Handle) Apply(opts ...Option) error {
	if err := h.check("apply"); err != nil {
		return err
	}

	for _, opt := range opts {
		cs := calls(opt)
		if len(cs) == 0 {
			return &Error{Op: fmt.Sprintf("apply %T", opt), Code: engine.BadFunctionArgument}
		}

		for _, c := range cs {
			if code := h.session.Configure(c.id, c.value); code != engine.OK {
				return &Error{Op: "apply " + c.id.String(), Code: code}
			}
		}
	}

	return nil
}

// Perform runs the configured transfer on the calling goroutine.
// Registered sinks receive their chunks before Perform returns.
func (h *Handle) Perform(ctx context.Context) error {
	if err := h.check("perform"); err != nil {
		return err
	}

	if code := h.session.Perform(ctx); code != engine.OK {
		return &Error{Op: "perform", Code: code}
	}

	return nil
}

// Reset restores the default configuration and drops every registered
// sink. The session is kept.
func (h *Handle) Reset() {
	if !h.Valid() {
		return
	}

	h.session.Reset()
}

// Duplicate returns a Handle on a new session carrying a copy of h's
// configuration. The result is invalid when h is invalid or the engine
// cannot allocate a session.
func (h *Handle) Duplicate() *Handle {
	var dup Handle
	if h.Valid() {
		dup.session = h.session.Duplicate()
	}

	dup.track()

	return &dup
}

// Close releases the session. Closing twice is a no-op.
func (h *Handle) Close() {
	if !h.Valid() {
		return
	}

	h.cleanup.Stop()
	h.session.Destroy()
	h.closed = true
}

// Escape percent-encodes s as one URL component.
func (h *Handle) Escape(s string) string {
	if !h.Valid() {
		return engine.Escape(s)
	}

	return h.session.Escape(s)
}

// Unescape decodes the "%XX" sequences of s.
func (h *Handle) Unescape(s string) string {
	if !h.Valid() {
		return engine.Unescape(s)
	}

	return h.session.Unescape(s)
}
