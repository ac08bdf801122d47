package entity

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateReference = errors.New("duplicate booking reference")
	ErrInvalidStatus      = errors.New("invalid booking status")
)

// ValidationError is a rejected booking payload. It is surfaced to the caller
// as-is, so the message has to be something a customer can act on.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) error {
	return ValidationError{Message: fmt.Sprintf(format, args...)}
}
