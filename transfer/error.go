package transfer

import (
	"fmt"

	"github.com/adamwoolhether/easyhttp/engine"
)

// Error reports the engine code returned by a handle operation. It
// unwraps to the engine.Code, so callers can match with errors.Is.
type Error struct {
	Op   string
	Code engine.Code
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Code
}
