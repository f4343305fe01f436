// Package api implements the HTTP surface of the practice engine.
package api

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/practico/practico-api/internal/domain"
	"github.com/practico/practico-api/internal/service"
)

// GenerateExerciseRequest asks for one fresh exercise.
type GenerateExerciseRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`

	// Tier optionally overrides the learner's adaptive tier.
	Tier string `json:"tier,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// ExerciseResponse is an exercise as presented to the learner. The correct
// form is never included; it travels back through the answer endpoint as a
// recomputation from (verb, tense, person).
type ExerciseResponse struct {
	ID              uuid.UUID `json:"id"`
	Verb            string    `json:"verb"`
	Tense           string    `json:"tense"`
	Person          string    `json:"person"`
	TriggerCategory string    `json:"trigger_category"`
	Prompt          string    `json:"prompt"`
	Choices         []string  `json:"choices"`
	Hints           []string  `json:"hints"`
	Tier            string    `json:"tier"`
	CreatedAt       time.Time `json:"created_at"`
}

// SubmitAnswerRequest carries one answer for grading. The exercise
// combination is echoed back so grading stays stateless on the server.
type SubmitAnswerRequest struct {
	UserID          uuid.UUID `json:"user_id" validate:"required"`
	ExerciseID      uuid.UUID `json:"exercise_id" validate:"required"`
	Verb            string    `json:"verb" validate:"required"`
	Tense           string    `json:"tense" validate:"required"`
	Person          string    `json:"person" validate:"required"`
	TriggerCategory string    `json:"trigger_category" validate:"required"`
	Answer          string    `json:"answer" validate:"required"`
	LatencyMs       int64     `json:"latency_ms" validate:"gte=0"`
	HintsUsed       int       `json:"hints_used" validate:"gte=0"`
}

// PlanSessionRequest asks for a session plan.
type PlanSessionRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`

	// Size optionally overrides the configured session size.
	Size int `json:"size,omitempty" validate:"omitempty,gt=0,lte=100"`
}

// SessionPlanResponse is the planned exercise list for one sitting.
type SessionPlanResponse struct {
	Exercises []ExerciseResponse `json:"exercises"`
	DueCount  int                `json:"due_count"`
}

// WeaknessResponse reports the learner's error profile and tier.
type WeaknessResponse struct {
	UserID        uuid.UUID                 `json:"user_id"`
	Tier          string                    `json:"tier"`
	ErrorCounts   map[string]int            `json:"error_counts"`
	CategoryStats map[string]CategoryReport `json:"category_stats"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

// CategoryReport is per-trigger-category accuracy.
type CategoryReport struct {
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// newExerciseResponse converts a domain exercise, shuffling the correct
// form in among the distractors.
func newExerciseResponse(ex *domain.Exercise) ExerciseResponse {
	choices := make([]string, 0, len(ex.Distractors)+1)
	choices = append(choices, ex.CorrectAnswer)
	choices = append(choices, ex.Distractors...)
	rand.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	return ExerciseResponse{
		ID:              ex.ID,
		Verb:            ex.Verb,
		Tense:           string(ex.Tense),
		Person:          string(ex.Person),
		TriggerCategory: string(ex.TriggerCategory),
		Prompt:          ex.Prompt,
		Choices:         choices,
		Hints:           ex.Hints,
		Tier:            string(ex.Tier),
		CreatedAt:       ex.CreatedAt,
	}
}

func newWeaknessResponse(profile *domain.WeaknessProfile) WeaknessResponse {
	resp := WeaknessResponse{
		UserID:        profile.UserID,
		Tier:          string(profile.Tier),
		ErrorCounts:   make(map[string]int, len(profile.ErrorCounts)),
		CategoryStats: make(map[string]CategoryReport, len(profile.CategoryStats)),
		UpdatedAt:     profile.UpdatedAt,
	}
	for errType, count := range profile.ErrorCounts {
		resp.ErrorCounts[string(errType)] = count
	}
	for category, stats := range profile.CategoryStats {
		resp.CategoryStats[string(category)] = CategoryReport{
			Attempts: stats.Attempts,
			Correct:  stats.Correct,
			Accuracy: stats.Accuracy(),
		}
	}
	return resp
}

func newSessionPlanResponse(plan *service.SessionPlan) SessionPlanResponse {
	resp := SessionPlanResponse{
		Exercises: make([]ExerciseResponse, 0, len(plan.Exercises)),
		DueCount:  plan.DueCount,
	}
	for _, ex := range plan.Exercises {
		resp.Exercises = append(resp.Exercises, newExerciseResponse(ex))
	}
	return resp
}
