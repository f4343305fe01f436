// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownVerb is the sentinel matched by UnknownVerbError, so
	// callers can test with errors.Is without the concrete type.
	ErrUnknownVerb = errors.New("unknown verb")

	// ErrUnsupportedCombination is the sentinel matched by
	// UnsupportedCombinationError.
	ErrUnsupportedCombination = errors.New("unsupported mood/tense combination")
)

// UnknownVerbError reports a verb outside the reference set. Fatal to the
// request; never retried.
type UnknownVerbError struct {
	Infinitive string
}

// Error implements the error interface.
func (e *UnknownVerbError) Error() string {
	return fmt.Sprintf("unknown verb %q", e.Infinitive)
}

// Unwrap lets errors.Is match ErrUnknownVerb.
func (e *UnknownVerbError) Unwrap() error {
	return ErrUnknownVerb
}

// UnsupportedCombinationError reports a (mood, tense) pair the engine does
// not model. Fatal to the request; never retried.
type UnsupportedCombinationError struct {
	Mood  Mood
	Tense Tense
}

// Error implements the error interface.
func (e *UnsupportedCombinationError) Error() string {
	return fmt.Sprintf("unsupported combination: mood %q, tense %q", e.Mood, e.Tense)
}

// Unwrap lets errors.Is match ErrUnsupportedCombination.
func (e *UnsupportedCombinationError) Unwrap() error {
	return ErrUnsupportedCombination
}

// ValidationError provides field-level context for validation failures.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a field-scoped validation error wrapping err.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
