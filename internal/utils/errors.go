package utils

import (
	"errors"
	"fmt"
)

// Common application errors used across services.
var (
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrAccountInactive    = errors.New("ACCOUNT_INACTIVE")
	ErrNotFound           = errors.New("NOT_FOUND")
	ErrConflict           = errors.New("CONFLICT")
	ErrProtected          = errors.New("PROTECTED")
	ErrForbidden          = errors.New("FORBIDDEN")
)

// ValidationError carries field-level detail for malformed input. It is
// surfaced to callers as a 400 with the offending fields.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d invalid field(s)", len(e.Fields))
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

// AsValidationError unwraps err into a *ValidationError, or nil.
func AsValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
