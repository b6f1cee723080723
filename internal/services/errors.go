package services

import (
	"errors"
	"fmt"
)

// ErrAccessDenied is returned when a display code word is missing or wrong.
var ErrAccessDenied = errors.New("access denied")

// ValidationError reports an invalid form value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
