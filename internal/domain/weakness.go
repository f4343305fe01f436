package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrProfileUserIDEmpty is returned when a weakness profile has no user ID.
var ErrProfileUserIDEmpty = errors.New("weakness profile user ID cannot be empty")

// DefaultAccuracyWindowSize is the rolling window length used for adaptive
// difficulty when no override is configured.
const DefaultAccuracyWindowSize = 20

// CategoryStats holds per-trigger-category answer counts.
type CategoryStats struct {
	Attempts int `json:"attempts"`
	Correct  int `json:"correct"`
}

// Accuracy returns the category's correct ratio, or 1.0 for an untouched
// category so that unseen categories are not mistaken for weak ones.
func (s CategoryStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 1.0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// WeaknessProfile is the per-user rolling picture of what the learner gets
// wrong: error-type counts, per-category accuracy, the rolling accuracy
// window feeding adaptive difficulty, and the current tier. It is the only
// cross-session state besides review cards.
type WeaknessProfile struct {
	UserID        uuid.UUID                         `json:"user_id"`
	ErrorCounts   map[ErrorType]int                 `json:"error_counts"`
	CategoryStats map[TriggerCategory]CategoryStats `json:"category_stats"`

	// Window is the rolling record of recent answer correctness, oldest
	// first, capped at the configured window size.
	Window []bool `json:"window"`

	Tier      DifficultyTier `json:"tier"`
	Version   int            `json:"version"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewWeaknessProfile creates an empty profile starting at the beginner tier.
func NewWeaknessProfile(userID uuid.UUID) (*WeaknessProfile, error) {
	if userID == uuid.Nil {
		return nil, ErrProfileUserIDEmpty
	}

	return &WeaknessProfile{
		UserID:        userID,
		ErrorCounts:   make(map[ErrorType]int),
		CategoryStats: make(map[TriggerCategory]CategoryStats),
		Tier:          TierBeginner,
		Version:       1,
		UpdatedAt:     time.Now().UTC(),
	}, nil
}

// RecordAttempt folds one attempt into the error counts and category stats.
// The rolling window and tier are managed by the difficulty manager.
func (p *WeaknessProfile) RecordAttempt(a *Attempt) {
	if p.ErrorCounts == nil {
		p.ErrorCounts = make(map[ErrorType]int)
	}
	if p.CategoryStats == nil {
		p.CategoryStats = make(map[TriggerCategory]CategoryStats)
	}

	if !a.IsCorrect && a.ErrorType != ErrorTypeNone {
		p.ErrorCounts[a.ErrorType]++
	}

	stats := p.CategoryStats[a.TriggerCategory]
	stats.Attempts++
	if a.IsCorrect {
		stats.Correct++
	}
	p.CategoryStats[a.TriggerCategory] = stats

	p.UpdatedAt = a.CreatedAt
}

// WindowAccuracy returns the correct ratio over the rolling window and
// whether the window has reached the given size.
func (p *WeaknessProfile) WindowAccuracy(windowSize int) (accuracy float64, full bool) {
	if len(p.Window) == 0 {
		return 0, false
	}
	correct := 0
	for _, ok := range p.Window {
		if ok {
			correct++
		}
	}
	return float64(correct) / float64(len(p.Window)), len(p.Window) >= windowSize
}

// Validate checks structural integrity of the profile.
func (p *WeaknessProfile) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrProfileUserIDEmpty
	}
	return p.Tier.Validate()
}
