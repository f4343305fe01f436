package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/practico/practico-api/internal/domain"
	"github.com/practico/practico-api/internal/store"
)

func newTestProfile(t *testing.T, userID uuid.UUID) *domain.WeaknessProfile {
	t.Helper()
	profile, err := domain.NewWeaknessProfile(userID)
	if err != nil {
		t.Fatalf("NewWeaknessProfile() error = %v", err)
	}
	return profile
}

func TestWeaknessStoreSaveAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewWeaknessStore()
	userID := uuid.New()

	profile := newTestProfile(t, userID)
	profile.ErrorCounts[domain.ErrorTypeMoodConfusion] = 2
	if err := s.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	got, err := s.GetProfile(ctx, userID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got.Tier != domain.TierBeginner || got.Version != 1 {
		t.Errorf("GetProfile() = (%s, v%d), want (beginner, v1)", got.Tier, got.Version)
	}
	if got.ErrorCounts[domain.ErrorTypeMoodConfusion] != 2 {
		t.Errorf("ErrorCounts[mood_confusion] = %d, want 2", got.ErrorCounts[domain.ErrorTypeMoodConfusion])
	}

	// Returned profiles are deep copies.
	got.ErrorCounts[domain.ErrorTypeAccent] = 99
	got.Window = append(got.Window, true)
	again, err := s.GetProfile(ctx, userID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if again.ErrorCounts[domain.ErrorTypeAccent] != 0 || len(again.Window) != 0 {
		t.Error("stored profile mutated through a returned copy")
	}
}

func TestWeaknessStoreGetMissing(t *testing.T) {
	t.Parallel()

	s := NewWeaknessStore()
	if _, err := s.GetProfile(context.Background(), uuid.New()); !errors.Is(err, store.ErrProfileNotFound) {
		t.Errorf("GetProfile(missing) error = %v, want store.ErrProfileNotFound", err)
	}
}

func TestWeaknessStoreVersionConflicts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewWeaknessStore()
	userID := uuid.New()

	profile := newTestProfile(t, userID)

	stale := *profile
	stale.Version = 2
	if err := s.SaveProfile(ctx, &stale); !errors.Is(err, store.ErrProfileConflict) {
		t.Errorf("SaveProfile(v2, no existing row) error = %v, want store.ErrProfileConflict", err)
	}

	if err := s.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("SaveProfile(v1) error = %v", err)
	}
	if err := s.SaveProfile(ctx, profile); !errors.Is(err, store.ErrProfileConflict) {
		t.Errorf("SaveProfile(v1 again) error = %v, want store.ErrProfileConflict", err)
	}

	next := *profile
	next.Version = 2
	next.Tier = domain.TierIntermediate
	if err := s.SaveProfile(ctx, &next); err != nil {
		t.Fatalf("SaveProfile(v2) error = %v", err)
	}

	got, err := s.GetProfile(ctx, userID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got.Tier != domain.TierIntermediate || got.Version != 2 {
		t.Errorf("GetProfile() = (%s, v%d), want (intermediate, v2)", got.Tier, got.Version)
	}
}

func TestWeaknessStoreRecordAttempt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewWeaknessStore()
	userID := uuid.New()

	attempt := &domain.Attempt{
		ID:               uuid.New(),
		ExerciseID:       uuid.New(),
		UserID:           userID,
		Verb:             "hablar",
		Tense:            domain.TensePresent,
		Person:           domain.PersonYo,
		TriggerCategory:  domain.TriggerWish,
		Answer:           "hable",
		NormalizedAnswer: "hable",
		IsCorrect:        true,
		ErrorType:        domain.ErrorTypeNone,
		LatencyMs:        4200,
	}
	if err := s.RecordAttempt(ctx, attempt); err != nil {
		t.Fatalf("RecordAttempt() error = %v", err)
	}

	wrong := *attempt
	wrong.ID = uuid.New()
	wrong.Answer = "hablo"
	wrong.IsCorrect = false
	wrong.ErrorType = domain.ErrorTypeMoodConfusion
	if err := s.RecordAttempt(ctx, &wrong); err != nil {
		t.Fatalf("RecordAttempt() error = %v", err)
	}

	attempts := s.Attempts(userID)
	if len(attempts) != 2 {
		t.Fatalf("Attempts() returned %d records, want 2", len(attempts))
	}
	if attempts[0].Answer != "hable" || attempts[1].Answer != "hablo" {
		t.Errorf("Attempts() out of submission order: %q, %q", attempts[0].Answer, attempts[1].Answer)
	}

	if got := s.Attempts(uuid.New()); len(got) != 0 {
		t.Errorf("Attempts(other user) returned %d records, want 0", len(got))
	}
}

func TestWeaknessStoreRejectsInvalidAttempt(t *testing.T) {
	t.Parallel()

	s := NewWeaknessStore()
	attempt := &domain.Attempt{ID: uuid.New(), ExerciseID: uuid.New(), UserID: uuid.Nil}
	if err := s.RecordAttempt(context.Background(), attempt); err == nil {
		t.Error("RecordAttempt() accepted an attempt without a user ID")
	}
}
