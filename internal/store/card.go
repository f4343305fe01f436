package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/practico/practico-api/internal/domain"
)

// CardStore defines the interface for review card persistence.
//
// Implementations must enforce optimistic concurrency: SaveCard compares
// the card's Version against the stored row and fails with
// ErrScheduleConflict on mismatch. The scheduler itself performs no
// locking; conflict resolution is the caller's retry protocol.
type CardStore interface {
	// GetCard retrieves the card for the given key.
	// Returns ErrCardNotFound if no card exists for the combination.
	GetCard(ctx context.Context, key domain.CardKey) (*domain.ReviewCard, error)

	// GetDueCards retrieves all cards for the user whose due date is on
	// or before now, ordered by due date ascending with ties broken by
	// lowest easiness factor first, so the weakest cards surface first
	// among equally-due items.
	GetDueCards(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.ReviewCard, error)

	// SaveCard inserts the card if its key is new, or updates it when the
	// stored version matches card.Version minus one (the version read at
	// fetch time). Returns ErrScheduleConflict on version mismatch.
	SaveCard(ctx context.Context, card *domain.ReviewCard) error

	// ResetCards removes all of the user's cards. Resetting a user with
	// no cards is a no-op, not an error.
	ResetCards(ctx context.Context, userID uuid.UUID) error
}
