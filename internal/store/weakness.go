package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/practico/practico-api/internal/domain"
)

// WeaknessStore defines the interface for weakness profile and attempt
// persistence.
type WeaknessStore interface {
	// GetProfile retrieves the user's weakness profile.
	// Returns ErrProfileNotFound if the user has never practiced.
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.WeaknessProfile, error)

	// SaveProfile inserts the profile if the user is new, or updates it
	// when the stored version matches profile.Version minus one. Returns
	// ErrProfileConflict on version mismatch.
	SaveProfile(ctx context.Context, profile *domain.WeaknessProfile) error

	// RecordAttempt appends an immutable attempt record.
	RecordAttempt(ctx context.Context, attempt *domain.Attempt) error
}
