package models

import "github.com/pkg/errors"

var ErrBurnNotFound = errors.New("Burn record not found")

// ValidationError reports client input rejected before any store mutation.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}
