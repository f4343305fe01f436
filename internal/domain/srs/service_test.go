package srs

import (
	"errors"
	"testing"
	"time"
)

func TestServiceApplyReviewValidation(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.Now().UTC()

	t.Run("nil card", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ApplyReview(nil, 4, now)
		if !errors.Is(err, ErrNilCard) {
			t.Errorf("expected ErrNilCard, got %v", err)
		}
	})

	t.Run("quality above range", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ApplyReview(newTestCard(t), 6, now)
		if !errors.Is(err, ErrInvalidQuality) {
			t.Errorf("expected ErrInvalidQuality, got %v", err)
		}
	})

	t.Run("quality below range", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ApplyReview(newTestCard(t), -1, now)
		if !errors.Is(err, ErrInvalidQuality) {
			t.Errorf("expected ErrInvalidQuality, got %v", err)
		}
	})

	t.Run("valid review succeeds", func(t *testing.T) {
		t.Parallel()
		card := newTestCard(t)
		next, err := svc.ApplyReview(card, 4, now)
		if err != nil {
			t.Fatalf("ApplyReview() error = %v", err)
		}
		if next.Version != card.Version+1 {
			t.Errorf("version = %d, want %d", next.Version, card.Version+1)
		}
	})
}

func TestServicePassQuality(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	if got := svc.PassQuality(); got != 3 {
		t.Errorf("PassQuality() = %d, want 3", got)
	}
}
