package store

import "github.com/practico/practico-api/internal/domain"

// VerbRepository provides read-only access to the verb reference set.
//
// The reference set is static, in-memory data; lookups never block, so
// the interface takes no context.
type VerbRepository interface {
	// GetVerb retrieves a verb by infinitive.
	// Returns ErrVerbNotFound if the verb is not in the reference set.
	GetVerb(infinitive string) (*domain.Verb, error)

	// PoolForTier returns the verbs available at the given difficulty
	// tier. Pools are cumulative: each tier includes every easier tier's
	// verbs, and the advanced pool is the full reference set.
	PoolForTier(tier domain.DifficultyTier) []*domain.Verb

	// All returns the full reference set in stable order.
	All() []*domain.Verb
}
