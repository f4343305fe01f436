package service

import (
	"errors"
	"fmt"
)

// Common error conditions returned by the practice service.
var (
	// ErrNilDependency indicates a service was constructed without one of
	// its required collaborators.
	ErrNilDependency = errors.New("nil dependency")

	// ErrExerciseExpired indicates an answer referenced an exercise whose
	// correct form could no longer be reproduced (for example after the
	// verb inventory changed).
	ErrExerciseExpired = errors.New("exercise expired")

	// ErrSessionAborted indicates the answer callback asked to stop the
	// session before all planned exercises were attempted.
	ErrSessionAborted = errors.New("session aborted")

	// ErrConflictRetriesExhausted indicates concurrent updates kept
	// invalidating an optimistic write beyond the retry budget.
	ErrConflictRetriesExhausted = errors.New("conflict retries exhausted")
)

// PracticeServiceError wraps errors from practice operations with the
// operation name for log and API context.
type PracticeServiceError struct {
	Operation string
	Err       error
}

func (e *PracticeServiceError) Error() string {
	return fmt.Sprintf("practice service %s: %v", e.Operation, e.Err)
}

func (e *PracticeServiceError) Unwrap() error {
	return e.Err
}

// NewPracticeServiceError creates a PracticeServiceError for the given
// operation.
func NewPracticeServiceError(operation string, err error) *PracticeServiceError {
	return &PracticeServiceError{Operation: operation, Err: err}
}
