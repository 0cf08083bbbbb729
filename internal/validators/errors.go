package validators

import (
	"errors"
	"strings"
)

var (
	// ErrValidation is the sentinel matched by every *ValidationError, so
	// callers can write errors.Is(err, ErrValidation) without caring about
	// the concrete violation list.
	ErrValidation = errors.New("validation failed")

	ErrEmptyKey      = errors.New("record key is required")
	ErrEmptyName     = errors.New("name is required")
	ErrNameTooLong   = errors.New("name exceeds 255 characters")
	ErrEmptySecret   = errors.New("at least one of login, password or notes must be set")
	ErrKeyWhitespace = errors.New("record key must not contain whitespace")
)

// ValidationError reports a rejected candidate together with every rule it
// violated. It matches [ErrValidation] under errors.Is.
type ValidationError struct {
	Violations []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// Is makes errors.Is(err, ErrValidation) succeed for any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
