package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Attempt validation errors.
var (
	ErrAttemptUserIDEmpty     = errors.New("attempt user ID cannot be empty")
	ErrAttemptExerciseIDEmpty = errors.New("attempt exercise ID cannot be empty")
	ErrAttemptLatencyNegative = errors.New("attempt latency cannot be negative")
	ErrAttemptHintsNegative   = errors.New("attempt hint count cannot be negative")
)

// Attempt records one submitted answer. Attempts are immutable once
// created; they feed the scheduler, the weakness profile and the adaptive
// difficulty window.
type Attempt struct {
	ID         uuid.UUID `json:"id"`
	ExerciseID uuid.UUID `json:"exercise_id"`
	UserID     uuid.UUID `json:"user_id"`

	Verb            string          `json:"verb"` // infinitive
	Tense           Tense           `json:"tense"`
	Person          Person          `json:"person"`
	TriggerCategory TriggerCategory `json:"trigger_category"`

	Answer           string    `json:"answer"`
	NormalizedAnswer string    `json:"normalized_answer"`
	IsCorrect        bool      `json:"is_correct"`
	ErrorType        ErrorType `json:"error_type,omitempty"` // ErrorTypeNone when correct

	LatencyMs int64     `json:"latency_ms"`
	HintsUsed int       `json:"hints_used"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAttempt creates an immutable attempt record for a submitted answer.
func NewAttempt(ex *Exercise, userID uuid.UUID, answer, normalized string,
	isCorrect bool, errType ErrorType, latencyMs int64, hintsUsed int,
) (*Attempt, error) {
	a := &Attempt{
		ID:               uuid.New(),
		ExerciseID:       ex.ID,
		UserID:           userID,
		Verb:             ex.Verb,
		Tense:            ex.Tense,
		Person:           ex.Person,
		TriggerCategory:  ex.TriggerCategory,
		Answer:           answer,
		NormalizedAnswer: normalized,
		IsCorrect:        isCorrect,
		ErrorType:        errType,
		LatencyMs:        latencyMs,
		HintsUsed:        hintsUsed,
		CreatedAt:        time.Now().UTC(),
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate checks structural integrity of the attempt record.
func (a *Attempt) Validate() error {
	if a.UserID == uuid.Nil {
		return ErrAttemptUserIDEmpty
	}
	if a.ExerciseID == uuid.Nil {
		return ErrAttemptExerciseIDEmpty
	}
	if a.LatencyMs < 0 {
		return ErrAttemptLatencyNegative
	}
	if a.HintsUsed < 0 {
		return ErrAttemptHintsNegative
	}
	if !a.ErrorType.IsValid() {
		return ErrInvalidErrorType
	}
	if a.IsCorrect && a.ErrorType != ErrorTypeNone {
		return ErrInvalidErrorType
	}
	return nil
}
