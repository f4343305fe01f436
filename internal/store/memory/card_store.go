// Package memory provides in-memory store implementations with the same
// optimistic-concurrency semantics as the database-backed stores. They
// serve tests and single-process deployments.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/practico/practico-api/internal/domain"
	"github.com/practico/practico-api/internal/store"
)

// CardStore is a thread-safe in-memory store.CardStore.
type CardStore struct {
	mu    sync.RWMutex
	cards map[domain.CardKey]*domain.ReviewCard
}

// Ensure CardStore implements store.CardStore.
var _ store.CardStore = (*CardStore)(nil)

// NewCardStore creates an empty card store.
func NewCardStore() *CardStore {
	return &CardStore{cards: make(map[domain.CardKey]*domain.ReviewCard)}
}

// GetCard implements store.CardStore.GetCard.
func (s *CardStore) GetCard(ctx context.Context, key domain.CardKey) (*domain.ReviewCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	card, ok := s.cards[key]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	copied := *card
	return &copied, nil
}

// GetDueCards implements store.CardStore.GetDueCards: due date ascending,
// ties broken by lowest easiness factor.
func (s *CardStore) GetDueCards(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.ReviewCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var due []*domain.ReviewCard
	for _, card := range s.cards {
		if card.UserID == userID && !card.DueDate.After(now) {
			copied := *card
			due = append(due, &copied)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if !due[i].DueDate.Equal(due[j].DueDate) {
			return due[i].DueDate.Before(due[j].DueDate)
		}
		return due[i].EaseFactor < due[j].EaseFactor
	})

	return due, nil
}

// SaveCard implements store.CardStore.SaveCard with compare-and-swap on
// the card version.
func (s *CardStore) SaveCard(ctx context.Context, card *domain.ReviewCard) error {
	if err := card.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := card.Key()
	existing, ok := s.cards[key]
	if ok {
		if card.Version != existing.Version+1 {
			return store.ErrScheduleConflict
		}
	} else if card.Version != 1 {
		return store.ErrScheduleConflict
	}

	copied := *card
	s.cards[key] = &copied
	return nil
}

// ResetCards implements store.CardStore.ResetCards. Resetting a user with
// no cards is a no-op.
func (s *CardStore) ResetCards(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.cards {
		if key.UserID == userID {
			delete(s.cards, key)
		}
	}
	return nil
}
