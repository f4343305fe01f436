package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Exercise-specific validation errors.
var (
	ErrExerciseIDEmpty        = errors.New("exercise ID cannot be empty")
	ErrExerciseVerbEmpty      = errors.New("exercise verb cannot be empty")
	ErrExercisePromptEmpty    = errors.New("exercise prompt cannot be empty")
	ErrExerciseAnswerEmpty    = errors.New("exercise correct answer cannot be empty")
	ErrExerciseBadDistractors = errors.New("exercise distractors must be distinct from each other and from the answer")
)

// Exercise is one generated practice item: a sentence with a blank, the
// expected subjunctive form, multiple-choice distractors and ordered hints.
// Exercises are created per request and are not persisted by the core.
type Exercise struct {
	ID              uuid.UUID       `json:"id"`
	Verb            string          `json:"verb"` // infinitive
	Tense           Tense           `json:"tense"`
	Person          Person          `json:"person"`
	TriggerCategory TriggerCategory `json:"trigger_category"`
	TriggerPhrase   string          `json:"trigger_phrase"`

	// Prompt is the sentence template with the blank already in place,
	// e.g. "Espero que tú ___ (hablar) más despacio."
	Prompt string `json:"prompt"`

	// CorrectAnswer carries correct accents regardless of how answers
	// are later normalized for comparison.
	CorrectAnswer string `json:"correct_answer"`

	// Distractors are ordered: indicative form, wrong-person subjunctive,
	// then the form a learner produces by missing the verb's stem change
	// or spelling rule (or a wrong-tense form when neither applies).
	Distractors []string `json:"distractors"`

	// Hints are ordered from least to most specific.
	Hints []string `json:"hints"`

	Tier      DifficultyTier `json:"tier"`
	CreatedAt time.Time      `json:"created_at"`
}

// Validate checks structural integrity of a generated exercise, including
// the distinctness contract on distractors.
func (e *Exercise) Validate() error {
	if e.ID == uuid.Nil {
		return ErrExerciseIDEmpty
	}
	if e.Verb == "" {
		return ErrExerciseVerbEmpty
	}
	if e.Prompt == "" {
		return ErrExercisePromptEmpty
	}
	if e.CorrectAnswer == "" {
		return ErrExerciseAnswerEmpty
	}
	if !e.Tense.IsValid() {
		return ErrInvalidTense
	}
	if !e.Person.IsValid() {
		return ErrInvalidPerson
	}
	if !e.TriggerCategory.IsValid() {
		return ErrInvalidTriggerCategory
	}
	if err := e.Tier.Validate(); err != nil {
		return err
	}

	seen := map[string]bool{e.CorrectAnswer: true}
	for _, d := range e.Distractors {
		if d == "" || seen[d] {
			return ErrExerciseBadDistractors
		}
		seen[d] = true
	}

	return nil
}
