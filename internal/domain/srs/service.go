package srs

import (
	"errors"
	"time"

	"github.com/practico/practico-api/internal/domain"
)

// Common errors.
var (
	ErrNilCard        = errors.New("review card cannot be nil")
	ErrInvalidQuality = errors.New("quality must be between 0 and 5")
)

// Service defines the interface for spaced-repetition scheduling
// operations. All methods are pure and safe for concurrent use.
type Service interface {
	// ApplyReview computes the card's next scheduling state for a review
	// of the given quality, returning a new card without modifying the
	// input.
	ApplyReview(card *domain.ReviewCard, quality Quality, now time.Time) (*domain.ReviewCard, error)

	// DeriveQuality maps an attempt outcome to the 0-5 quality score.
	DeriveQuality(isCorrect bool, errType domain.ErrorType, latencyMs int64, hintsUsed int) Quality

	// PassQuality returns the lowest quality treated as a passed review.
	PassQuality() Quality
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a scheduler with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a scheduler with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// ApplyReview implements the Service interface.
func (s *defaultService) ApplyReview(card *domain.ReviewCard, quality Quality, now time.Time) (*domain.ReviewCard, error) {
	if card == nil {
		return nil, ErrNilCard
	}
	if !quality.IsValid() {
		return nil, ErrInvalidQuality
	}

	return applyReview(card, quality, now, s.params), nil
}

// DeriveQuality implements the Service interface.
func (s *defaultService) DeriveQuality(isCorrect bool, errType domain.ErrorType, latencyMs int64, hintsUsed int) Quality {
	return deriveQuality(isCorrect, errType, latencyMs, hintsUsed, s.params)
}

// PassQuality implements the Service interface.
func (s *defaultService) PassQuality() Quality {
	return s.params.PassQuality
}
