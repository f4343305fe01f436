// Package verbdata provides the embedded verb reference set and the
// store.VerbRepository implementation backed by it.
package verbdata

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/practico/practico-api/internal/domain"
	"github.com/practico/practico-api/internal/store"
)

//go:embed verbs.json
var verbsJSON []byte

// Repository is an immutable, in-memory verb reference set. It is built
// once at startup and safe for concurrent reads.
type Repository struct {
	ordered      []*domain.Verb
	byInfinitive map[string]*domain.Verb
	byTier       map[domain.DifficultyTier][]*domain.Verb
}

// Ensure Repository implements store.VerbRepository.
var _ store.VerbRepository = (*Repository)(nil)

// NewRepository parses and validates the embedded verb table.
func NewRepository() (*Repository, error) {
	return newRepositoryFromJSON(verbsJSON)
}

func newRepositoryFromJSON(data []byte) (*Repository, error) {
	var verbs []*domain.Verb
	if err := json.Unmarshal(data, &verbs); err != nil {
		return nil, fmt.Errorf("failed to parse verb reference data: %w", err)
	}

	repo := &Repository{
		ordered:      verbs,
		byInfinitive: make(map[string]*domain.Verb, len(verbs)),
		byTier:       make(map[domain.DifficultyTier][]*domain.Verb),
	}

	for _, v := range verbs {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("invalid verb %q in reference data: %w", v.Infinitive, err)
		}
		if _, exists := repo.byInfinitive[v.Infinitive]; exists {
			return nil, fmt.Errorf("duplicate verb %q in reference data", v.Infinitive)
		}
		repo.byInfinitive[v.Infinitive] = v
		repo.byTier[v.Tier] = append(repo.byTier[v.Tier], v)
	}

	return repo, nil
}

// GetVerb implements store.VerbRepository.GetVerb.
func (r *Repository) GetVerb(infinitive string) (*domain.Verb, error) {
	v, ok := r.byInfinitive[infinitive]
	if !ok {
		return nil, fmt.Errorf("%w: %q", store.ErrVerbNotFound, infinitive)
	}
	return v, nil
}

// PoolForTier implements store.VerbRepository.PoolForTier. Pools are
// cumulative across tiers.
func (r *Repository) PoolForTier(tier domain.DifficultyTier) []*domain.Verb {
	var pool []*domain.Verb
	for _, t := range domain.Tiers() {
		pool = append(pool, r.byTier[t]...)
		if t == tier {
			break
		}
	}
	return pool
}

// All implements store.VerbRepository.All.
func (r *Repository) All() []*domain.Verb {
	return r.ordered
}
