package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewCard validation errors.
var (
	ErrCardUserIDEmpty    = errors.New("review card user ID cannot be empty")
	ErrCardVerbEmpty      = errors.New("review card verb cannot be empty")
	ErrCardEaseFactorLow  = errors.New("review card easiness factor cannot be below the minimum")
	ErrCardIntervalLow    = errors.New("review card interval must be at least one day")
	ErrCardRepetitionsNeg = errors.New("review card repetitions cannot be negative")
)

// SRS scheduling constants shared by the domain and the scheduler.
const (
	// MinEaseFactor is the floor for a card's easiness factor.
	MinEaseFactor = 1.3

	// InitialEaseFactor is the easiness factor assigned to new cards.
	InitialEaseFactor = 2.5
)

// CardKey uniquely identifies a review card: one card exists per
// (user, verb, tense, person) combination.
type CardKey struct {
	UserID     uuid.UUID `json:"user_id"`
	Infinitive string    `json:"infinitive"`
	Tense      Tense     `json:"tense"`
	Person     Person    `json:"person"`
}

// ReviewCard tracks spaced-repetition scheduling state for one conjugation
// combination. Cards are created on first attempt, mutated only by the
// scheduler, and removed only by an explicit user reset.
//
// Version supports optimistic concurrency: stores compare-and-swap on it
// and report a conflict on mismatch, which callers resolve by re-fetching.
type ReviewCard struct {
	UserID     uuid.UUID `json:"user_id"`
	Infinitive string    `json:"infinitive"`
	Tense      Tense     `json:"tense"`
	Person     Person    `json:"person"`

	EaseFactor         float64   `json:"ease_factor"`
	IntervalDays       int       `json:"interval_days"`
	Repetitions        int       `json:"repetitions"`
	ConsecutiveCorrect int       `json:"consecutive_correct"`
	DueDate            time.Time `json:"due_date"`
	LastReviewedAt     time.Time `json:"last_reviewed_at"` // zero until first review
	Version            int       `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewReviewCard creates scheduling state for a combination attempted for
// the first time. The card is due immediately.
func NewReviewCard(userID uuid.UUID, infinitive string, tense Tense, person Person) (*ReviewCard, error) {
	now := time.Now().UTC()
	card := &ReviewCard{
		UserID:       userID,
		Infinitive:   infinitive,
		Tense:        tense,
		Person:       person,
		EaseFactor:   InitialEaseFactor,
		IntervalDays: 1,
		DueDate:      now,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Key returns the card's identifying key.
func (c *ReviewCard) Key() CardKey {
	return CardKey{
		UserID:     c.UserID,
		Infinitive: c.Infinitive,
		Tense:      c.Tense,
		Person:     c.Person,
	}
}

// Validate checks the card against the scheduling invariants.
func (c *ReviewCard) Validate() error {
	if c.UserID == uuid.Nil {
		return ErrCardUserIDEmpty
	}
	if c.Infinitive == "" {
		return ErrCardVerbEmpty
	}
	if !c.Tense.IsValid() {
		return ErrInvalidTense
	}
	if !c.Person.IsValid() {
		return ErrInvalidPerson
	}
	if c.EaseFactor < MinEaseFactor {
		return ErrCardEaseFactorLow
	}
	if c.IntervalDays < 1 {
		return ErrCardIntervalLow
	}
	if c.Repetitions < 0 {
		return ErrCardRepetitionsNeg
	}
	return nil
}
