package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/practico/practico-api/internal/api/shared"
	"github.com/practico/practico-api/internal/domain"
	"github.com/practico/practico-api/internal/service"
	"github.com/practico/practico-api/internal/store"
)

// PracticeHandler exposes the practice engine over HTTP.
type PracticeHandler struct {
	practiceService    service.PracticeService
	defaultSessionSize int
	logger             *slog.Logger
}

// NewPracticeHandler creates a handler backed by the given practice
// service. defaultSessionSize is used when a session request omits size.
// If logger is nil, the default logger is used.
func NewPracticeHandler(practiceService service.PracticeService, defaultSessionSize int, logger *slog.Logger) *PracticeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PracticeHandler{
		practiceService:    practiceService,
		defaultSessionSize: defaultSessionSize,
		logger:             logger.With(slog.String("component", "practice_handler")),
	}
}

// GenerateExercise handles POST /api/exercises.
func (h *PracticeHandler) GenerateExercise(w http.ResponseWriter, r *http.Request) {
	var req GenerateExerciseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	var tierOverride *domain.DifficultyTier
	if req.Tier != "" {
		tier := domain.DifficultyTier(req.Tier)
		tierOverride = &tier
	}

	ex, err := h.practiceService.GenerateExercise(r.Context(), req.UserID, tierOverride)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to generate exercise")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newExerciseResponse(ex))
}

// SubmitAnswer handles POST /api/answers.
func (h *PracticeHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	ex, err := exerciseFromAnswerRequest(&req)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.practiceService.SubmitAnswer(r.Context(), req.UserID, ex, req.Answer, req.LatencyMs, req.HintsUsed)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to grade answer")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// PlanSession handles POST /api/sessions.
func (h *PracticeHandler) PlanSession(w http.ResponseWriter, r *http.Request) {
	var req PlanSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	size := req.Size
	if size == 0 {
		size = h.defaultSessionSize
	}

	plan, err := h.practiceService.PlanSession(r.Context(), req.UserID, size)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to plan session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newSessionPlanResponse(plan))
}

// GetWeakness handles GET /api/users/{id}/weakness.
func (h *PracticeHandler) GetWeakness(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}

	profile, err := h.practiceService.WeaknessReport(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to load weakness report")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newWeaknessResponse(profile))
}

// ResetProgress handles POST /api/users/{id}/reset.
func (h *PracticeHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.practiceService.ResetProgress(r.Context(), userID); err != nil {
		h.respondServiceError(w, r, err, "Failed to reset progress")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondServiceError maps service errors to HTTP status codes without
// leaking internals.
func (h *PracticeHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request", err)
	case errors.Is(err, domain.ErrUnknownVerb), errors.Is(err, service.ErrExerciseExpired):
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, "Exercise is no longer valid", err)
	case store.IsNotFoundError(err):
		shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, "Not found", err)
	case errors.Is(err, service.ErrConflictRetriesExhausted):
		shared.RespondWithErrorAndLog(w, r, http.StatusConflict, "Concurrent update conflict, please retry", err)
	default:
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, fallback, err)
	}
}

// exerciseFromAnswerRequest rebuilds the domain exercise from the echoed
// combination so grading does not depend on server-side exercise state.
func exerciseFromAnswerRequest(req *SubmitAnswerRequest) (*domain.Exercise, error) {
	tense := domain.Tense(req.Tense)
	if !tense.IsValid() {
		return nil, domain.NewValidationError("tense", "unknown subjunctive tense", domain.ErrValidation)
	}
	person := domain.Person(req.Person)
	if !person.IsValid() {
		return nil, domain.NewValidationError("person", "unknown grammatical person", domain.ErrValidation)
	}
	category := domain.TriggerCategory(req.TriggerCategory)
	if !category.IsValid() {
		return nil, domain.NewValidationError("trigger_category", "unknown trigger category", domain.ErrValidation)
	}

	return &domain.Exercise{
		ID:              req.ExerciseID,
		Verb:            req.Verb,
		Tense:           tense,
		Person:          person,
		TriggerCategory: category,
	}, nil
}
