package gateway

import (
	"errors"
	"fmt"
)

// ErrNotAcknowledged is returned when send-email answers 2xx but the body
// reports a non-success status code.
var ErrNotAcknowledged = errors.New("submission not acknowledged")

// Error describes a failed call to the remote backend.
type Error struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op string, status int, err error) *Error {
	return &Error{Op: op, StatusCode: status, Err: err}
}
