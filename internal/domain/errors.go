package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrInvalidSecret = errors.New("invalid secret code")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrValidation    = errors.New("validation failed")
)

// ValidationError is a local input error. It is shown to the user and never
// sent to the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
