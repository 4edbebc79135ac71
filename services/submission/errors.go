package submission

import (
	"errors"
	"fmt"
)

var (
	// ErrIncomplete is returned when Submit is attempted before the form is complete.
	ErrIncomplete = errors.New("submission form is incomplete")
	// ErrSendFailed wraps a gateway failure during Submit.
	ErrSendFailed = errors.New("failed to send cart")
)

// FieldError reports an unknown form field name.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("unknown form field %q", e.Field)
}
