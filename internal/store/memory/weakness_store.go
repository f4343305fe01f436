package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/practico/practico-api/internal/domain"
	"github.com/practico/practico-api/internal/store"
)

// WeaknessStore is a thread-safe in-memory store.WeaknessStore.
type WeaknessStore struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]*domain.WeaknessProfile
	attempts map[uuid.UUID][]*domain.Attempt
}

// Ensure WeaknessStore implements store.WeaknessStore.
var _ store.WeaknessStore = (*WeaknessStore)(nil)

// NewWeaknessStore creates an empty weakness store.
func NewWeaknessStore() *WeaknessStore {
	return &WeaknessStore{
		profiles: make(map[uuid.UUID]*domain.WeaknessProfile),
		attempts: make(map[uuid.UUID][]*domain.Attempt),
	}
}

// GetProfile implements store.WeaknessStore.GetProfile.
func (s *WeaknessStore) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.WeaknessProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	return copyProfile(profile), nil
}

// SaveProfile implements store.WeaknessStore.SaveProfile with
// compare-and-swap on the profile version.
func (s *WeaknessStore) SaveProfile(ctx context.Context, profile *domain.WeaknessProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.profiles[profile.UserID]
	if ok {
		if profile.Version != existing.Version+1 {
			return store.ErrProfileConflict
		}
	} else if profile.Version != 1 {
		return store.ErrProfileConflict
	}

	s.profiles[profile.UserID] = copyProfile(profile)
	return nil
}

// RecordAttempt implements store.WeaknessStore.RecordAttempt.
func (s *WeaknessStore) RecordAttempt(ctx context.Context, attempt *domain.Attempt) error {
	if err := attempt.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *attempt
	s.attempts[attempt.UserID] = append(s.attempts[attempt.UserID], &copied)
	return nil
}

// Attempts returns the user's recorded attempts in submission order.
// Not part of the store interface; used by tests.
func (s *WeaknessStore) Attempts(userID uuid.UUID) []*domain.Attempt {
	s.mu.RLock()
	defer s.mu.RUnlock()

	attempts := make([]*domain.Attempt, len(s.attempts[userID]))
	copy(attempts, s.attempts[userID])
	return attempts
}

// copyProfile deep-copies a profile so callers cannot mutate stored state.
func copyProfile(p *domain.WeaknessProfile) *domain.WeaknessProfile {
	copied := *p

	copied.ErrorCounts = make(map[domain.ErrorType]int, len(p.ErrorCounts))
	for k, v := range p.ErrorCounts {
		copied.ErrorCounts[k] = v
	}

	copied.CategoryStats = make(map[domain.TriggerCategory]domain.CategoryStats, len(p.CategoryStats))
	for k, v := range p.CategoryStats {
		copied.CategoryStats[k] = v
	}

	copied.Window = make([]bool, len(p.Window))
	copy(copied.Window, p.Window)

	return &copied
}
