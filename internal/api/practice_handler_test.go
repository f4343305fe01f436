package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/practico/practico-api/internal/domain"
	"github.com/practico/practico-api/internal/domain/srs"
	"github.com/practico/practico-api/internal/service"
	"github.com/practico/practico-api/internal/store"
)

// stubPracticeService is a programmable service.PracticeService.
type stubPracticeService struct {
	generateFn func(ctx context.Context, userID uuid.UUID, tierOverride *domain.DifficultyTier) (*domain.Exercise, error)
	submitFn   func(ctx context.Context, userID uuid.UUID, ex *domain.Exercise, answer string, latencyMs int64, hintsUsed int) (*service.AnswerResult, error)
	planFn     func(ctx context.Context, userID uuid.UUID, size int) (*service.SessionPlan, error)
	weaknessFn func(ctx context.Context, userID uuid.UUID) (*domain.WeaknessProfile, error)
	resetFn    func(ctx context.Context, userID uuid.UUID) error
}

var _ service.PracticeService = (*stubPracticeService)(nil)

func (s *stubPracticeService) GenerateExercise(ctx context.Context, userID uuid.UUID, tierOverride *domain.DifficultyTier) (*domain.Exercise, error) {
	return s.generateFn(ctx, userID, tierOverride)
}

func (s *stubPracticeService) SubmitAnswer(ctx context.Context, userID uuid.UUID, ex *domain.Exercise, answer string, latencyMs int64, hintsUsed int) (*service.AnswerResult, error) {
	return s.submitFn(ctx, userID, ex, answer, latencyMs, hintsUsed)
}

func (s *stubPracticeService) PlanSession(ctx context.Context, userID uuid.UUID, size int) (*service.SessionPlan, error) {
	return s.planFn(ctx, userID, size)
}

func (s *stubPracticeService) RunSession(ctx context.Context, userID uuid.UUID, size int, respond service.AnswerFunc) (*service.SessionSummary, error) {
	return nil, errors.New("not driven over HTTP")
}

func (s *stubPracticeService) WeaknessReport(ctx context.Context, userID uuid.UUID) (*domain.WeaknessProfile, error) {
	return s.weaknessFn(ctx, userID)
}

func (s *stubPracticeService) ResetProgress(ctx context.Context, userID uuid.UUID) error {
	return s.resetFn(ctx, userID)
}

func newTestRouter(svc service.PracticeService) http.Handler {
	h := NewPracticeHandler(svc, 10, nil)
	r := chi.NewRouter()
	r.Post("/api/exercises", h.GenerateExercise)
	r.Post("/api/answers", h.SubmitAnswer)
	r.Post("/api/sessions", h.PlanSession)
	r.Get("/api/users/{id}/weakness", h.GetWeakness)
	r.Post("/api/users/{id}/reset", h.ResetProgress)
	return r
}

func testExercise(userID uuid.UUID) *domain.Exercise {
	return &domain.Exercise{
		ID:              uuid.New(),
		Verb:            "hablar",
		Tense:           domain.TensePresent,
		Person:          domain.PersonYo,
		TriggerCategory: domain.TriggerWish,
		TriggerPhrase:   "Espero",
		Prompt:          "Espero que yo ___ (hablar) más despacio.",
		CorrectAnswer:   "hable",
		Distractors:     []string{"hablo", "hables"},
		Hints:           []string{"Wishes take the subjunctive."},
		Tier:            domain.TierBeginner,
		CreatedAt:       time.Now().UTC(),
	}
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGenerateExerciseEndpoint(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ex := testExercise(userID)

	svc := &stubPracticeService{
		generateFn: func(_ context.Context, gotUser uuid.UUID, tierOverride *domain.DifficultyTier) (*domain.Exercise, error) {
			assert.Equal(t, userID, gotUser)
			assert.Nil(t, tierOverride)
			return ex, nil
		},
	}
	router := newTestRouter(svc)

	rec := postJSON(t, router, "/api/exercises", GenerateExerciseRequest{UserID: userID})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp ExerciseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ex.ID, resp.ID)
	assert.Equal(t, "hablar", resp.Verb)
	assert.Len(t, resp.Choices, 3)
	assert.Contains(t, resp.Choices, "hable", "the correct form must be among the choices")

	// The correct answer never travels as its own field.
	assert.NotContains(t, rec.Body.String(), "correct_answer")
}

func TestGenerateExerciseTierOverride(t *testing.T) {
	t.Parallel()

	svc := &stubPracticeService{
		generateFn: func(_ context.Context, _ uuid.UUID, tierOverride *domain.DifficultyTier) (*domain.Exercise, error) {
			require.NotNil(t, tierOverride)
			assert.Equal(t, domain.TierAdvanced, *tierOverride)
			return testExercise(uuid.New()), nil
		},
	}
	router := newTestRouter(svc)

	rec := postJSON(t, router, "/api/exercises", GenerateExerciseRequest{UserID: uuid.New(), Tier: "advanced"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, router, "/api/exercises", GenerateExerciseRequest{UserID: uuid.New(), Tier: "expert"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown tier values are rejected before the service")
}

func TestGenerateExerciseBadRequests(t *testing.T) {
	t.Parallel()

	svc := &stubPracticeService{
		generateFn: func(context.Context, uuid.UUID, *domain.DifficultyTier) (*domain.Exercise, error) {
			t.Fatal("service must not be reached")
			return nil, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/exercises", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/api/exercises", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "user_id is required")
}

func TestSubmitAnswerEndpoint(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	exerciseID := uuid.New()

	svc := &stubPracticeService{
		submitFn: func(_ context.Context, gotUser uuid.UUID, ex *domain.Exercise, answer string, latencyMs int64, hintsUsed int) (*service.AnswerResult, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, exerciseID, ex.ID)
			assert.Equal(t, "hablar", ex.Verb)
			assert.Equal(t, domain.TensePresent, ex.Tense)
			assert.Equal(t, "hable", answer)
			assert.Equal(t, int64(4200), latencyMs)
			assert.Equal(t, 1, hintsUsed)
			return &service.AnswerResult{
				IsCorrect:   true,
				Expected:    "hable",
				Quality:     srs.Quality(3),
				Points:      60,
				NextDueDate: time.Now().UTC().Add(24 * time.Hour),
				Tier:        domain.TierBeginner,
			}, nil
		},
	}
	router := newTestRouter(svc)

	rec := postJSON(t, router, "/api/answers", SubmitAnswerRequest{
		UserID:          userID,
		ExerciseID:      exerciseID,
		Verb:            "hablar",
		Tense:           "present",
		Person:          "yo",
		TriggerCategory: "wish",
		Answer:          "hable",
		LatencyMs:       4200,
		HintsUsed:       1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result service.AnswerResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.IsCorrect)
	assert.Equal(t, 60, result.Points)
}

func TestSubmitAnswerRejectsUnknownGrammar(t *testing.T) {
	t.Parallel()

	svc := &stubPracticeService{
		submitFn: func(context.Context, uuid.UUID, *domain.Exercise, string, int64, int) (*service.AnswerResult, error) {
			t.Fatal("service must not be reached")
			return nil, nil
		},
	}
	router := newTestRouter(svc)

	base := SubmitAnswerRequest{
		UserID:          uuid.New(),
		ExerciseID:      uuid.New(),
		Verb:            "hablar",
		Tense:           "present",
		Person:          "yo",
		TriggerCategory: "wish",
		Answer:          "hable",
	}

	badTense := base
	badTense.Tense = "pluperfect"
	assert.Equal(t, http.StatusBadRequest, postJSON(t, router, "/api/answers", badTense).Code)

	badPerson := base
	badPerson.Person = "vos"
	assert.Equal(t, http.StatusBadRequest, postJSON(t, router, "/api/answers", badPerson).Code)

	badCategory := base
	badCategory.TriggerCategory = "sarcasm"
	assert.Equal(t, http.StatusBadRequest, postJSON(t, router, "/api/answers", badCategory).Code)
}

func TestSubmitAnswerServiceErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", domain.NewValidationError("answer", "bad", domain.ErrValidation), http.StatusBadRequest},
		{"expired exercise", fmt.Errorf("%w: blorgar", service.ErrExerciseExpired), http.StatusUnprocessableEntity},
		{"unknown verb", fmt.Errorf("%w: blorgar", domain.ErrUnknownVerb), http.StatusUnprocessableEntity},
		{"not found", store.ErrCardNotFound, http.StatusNotFound},
		{"conflict exhausted", service.ErrConflictRetriesExhausted, http.StatusConflict},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &stubPracticeService{
				submitFn: func(context.Context, uuid.UUID, *domain.Exercise, string, int64, int) (*service.AnswerResult, error) {
					return nil, service.NewPracticeServiceError("submit answer", tc.err)
				},
			}
			router := newTestRouter(svc)

			rec := postJSON(t, router, "/api/answers", SubmitAnswerRequest{
				UserID:          uuid.New(),
				ExerciseID:      uuid.New(),
				Verb:            "hablar",
				Tense:           "present",
				Person:          "yo",
				TriggerCategory: "wish",
				Answer:          "hable",
			})
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.NotContains(t, rec.Body.String(), "boom", "internal error detail must not leak")
		})
	}
}

func TestPlanSessionEndpoint(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := &stubPracticeService{
		planFn: func(_ context.Context, gotUser uuid.UUID, size int) (*service.SessionPlan, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, 5, size)
			return &service.SessionPlan{
				Exercises: []*domain.Exercise{testExercise(userID), testExercise(userID)},
				DueCount:  1,
			}, nil
		},
	}
	router := newTestRouter(svc)

	rec := postJSON(t, router, "/api/sessions", PlanSessionRequest{UserID: userID, Size: 5})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp SessionPlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Exercises, 2)
	assert.Equal(t, 1, resp.DueCount)
}

func TestPlanSessionDefaultSize(t *testing.T) {
	t.Parallel()

	svc := &stubPracticeService{
		planFn: func(_ context.Context, _ uuid.UUID, size int) (*service.SessionPlan, error) {
			assert.Equal(t, 10, size, "omitted size falls back to the configured default")
			return &service.SessionPlan{}, nil
		},
	}
	router := newTestRouter(svc)

	rec := postJSON(t, router, "/api/sessions", PlanSessionRequest{UserID: uuid.New()})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestGetWeaknessEndpoint(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := &stubPracticeService{
		weaknessFn: func(_ context.Context, gotUser uuid.UUID) (*domain.WeaknessProfile, error) {
			assert.Equal(t, userID, gotUser)
			return &domain.WeaknessProfile{
				UserID:      userID,
				ErrorCounts: map[domain.ErrorType]int{domain.ErrorTypeAccent: 3},
				CategoryStats: map[domain.TriggerCategory]domain.CategoryStats{
					domain.TriggerDoubt: {Attempts: 4, Correct: 1},
				},
				Tier:    domain.TierIntermediate,
				Version: 7,
			}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/users/"+userID.String()+"/weakness", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp WeaknessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "intermediate", resp.Tier)
	assert.Equal(t, 3, resp.ErrorCounts["accent"])
	assert.InDelta(t, 0.25, resp.CategoryStats["doubt"].Accuracy, 1e-9)
}

func TestGetWeaknessRejectsBadID(t *testing.T) {
	t.Parallel()

	svc := &stubPracticeService{
		weaknessFn: func(context.Context, uuid.UUID) (*domain.WeaknessProfile, error) {
			t.Fatal("service must not be reached")
			return nil, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/users/not-a-uuid/weakness", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetProgressEndpoint(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	called := false
	svc := &stubPracticeService{
		resetFn: func(_ context.Context, gotUser uuid.UUID) error {
			called = true
			assert.Equal(t, userID, gotUser)
			return nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/users/"+userID.String()+"/reset", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, called)
}
