package database

import (
	"errors"
	"fmt"
)

// ValidationError is returned when input fails a precondition. It is
// surfaced to the initiating user and never retried.
type ValidationError struct {
	Field string
	Msg   string
}

// NewValidationError constructs a validation error for the field.
func NewValidationError(field string, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// Error implements the error interface.
func (ve *ValidationError) Error() string {
	return ve.Msg
}

// IsValidationError checks if an error of type ValidationError exists.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// =============================================================================

// PersistenceError is returned when the underlying storage fails a read or
// write, or holds content that can't be decoded.
type PersistenceError struct {
	Key string
	Err error
}

// Error implements the error interface.
func (pe *PersistenceError) Error() string {
	return fmt.Sprintf("persisting %q: %s", pe.Key, pe.Err)
}

// Unwrap provides access to the storage error.
func (pe *PersistenceError) Unwrap() error {
	return pe.Err
}

// IsPersistenceError checks if an error of type PersistenceError exists.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
