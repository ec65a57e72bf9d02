package service

import (
	"errors"
	"fmt"
)

// ErrNotFound signals a lookup by key that matched no record. Handlers map
// it to 404; everything else surfaces as a persistence failure.
var ErrNotFound = errors.New("record not found")

// ValidationError marks a rejected write: the value violates a stated
// invariant and the mutation was not applied.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a rejected-write validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
