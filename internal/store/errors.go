package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. This is the generic version of the entity-specific
	// not-found errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrScheduleConflict is returned by SaveCard when the card's version
	// does not match the stored version: another session updated the card
	// after this one read it. The caller resolves it by re-fetching the
	// card, reapplying the update and saving again; stores never retry
	// internally.
	ErrScheduleConflict = errors.New("review card version conflict")

	// ErrProfileConflict is the weakness-profile counterpart of
	// ErrScheduleConflict.
	ErrProfileConflict = errors.New("weakness profile version conflict")

	// Entity-specific "not found" errors.

	// ErrCardNotFound indicates the requested review card does not exist.
	ErrCardNotFound = fmt.Errorf("%w: review card", ErrNotFound)

	// ErrProfileNotFound indicates the requested weakness profile does not exist.
	ErrProfileNotFound = fmt.Errorf("%w: weakness profile", ErrNotFound)

	// ErrVerbNotFound indicates the verb is not in the reference set.
	ErrVerbNotFound = fmt.Errorf("%w: verb", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflictError checks if the error is an optimistic-concurrency
// conflict on either cards or profiles.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrScheduleConflict) || errors.Is(err, ErrProfileConflict)
}
