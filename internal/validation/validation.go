package validation

import (
	"errors"
	"fmt"
)

// Error is a caller mistake: bad selections, malformed configuration, or a
// pasted response that does not match the idea schema. It is never retried.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf builds a validation Error.
func Errorf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Is reports whether err is, or wraps, a validation Error.
func Is(err error) bool {
	var target *Error
	return errors.As(err, &target)
}
