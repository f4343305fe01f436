// Package service orchestrates exercise generation, answer grading,
// scheduling and difficulty adaptation over the store interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/practico/practico-api/internal/analysis"
	"github.com/practico/practico-api/internal/difficulty"
	"github.com/practico/practico-api/internal/domain"
	"github.com/practico/practico-api/internal/domain/conjugation"
	"github.com/practico/practico-api/internal/domain/srs"
	"github.com/practico/practico-api/internal/exercise"
	"github.com/practico/practico-api/internal/store"
)

// PointsPerQuality converts a review quality grade into session points.
const PointsPerQuality = 20

// Config carries the practice service tunables.
type Config struct {
	// DueRatio is the fraction of a session reserved for due review
	// cards. New material fills the remainder, plus any unused due slots.
	DueRatio float64

	// MaxConflictRetries bounds how often an optimistic write is retried
	// after a version conflict before the operation fails.
	MaxConflictRetries int
}

// NewDefaultConfig returns the standard session mix and retry budget.
func NewDefaultConfig() Config {
	return Config{
		DueRatio:           0.7,
		MaxConflictRetries: 3,
	}
}

// AnswerResult reports the outcome of grading one submitted answer.
type AnswerResult struct {
	IsCorrect   bool                  `json:"is_correct"`
	Expected    string                `json:"expected"`
	ErrorType   domain.ErrorType      `json:"error_type,omitempty"`
	Explanation string                `json:"explanation,omitempty"`
	Quality     srs.Quality           `json:"quality"`
	Points      int                   `json:"points"`
	NextDueDate time.Time             `json:"next_due_date"`
	Tier        domain.DifficultyTier `json:"tier"`
	TierChanged bool                  `json:"tier_changed"`
}

// SessionPlan is an ordered list of exercises for one sitting. The first
// DueCount entries materialize due review cards; the rest introduce new
// combinations at the learner's tier.
type SessionPlan struct {
	Exercises []*domain.Exercise `json:"exercises"`
	DueCount  int                `json:"due_count"`
}

// CategoryBreakdown summarizes attempts for one trigger category within a
// session.
type CategoryBreakdown struct {
	Attempts int `json:"attempts"`
	Correct  int `json:"correct"`
}

// SessionSummary reports what happened over a completed session.
type SessionSummary struct {
	Attempted     int                                          `json:"attempted"`
	Correct       int                                          `json:"correct"`
	Accuracy      float64                                      `json:"accuracy"`
	Points        int                                          `json:"points"`
	DueReviewed   int                                          `json:"due_reviewed"`
	NewIntroduced int                                          `json:"new_introduced"`
	ByCategory    map[domain.TriggerCategory]CategoryBreakdown `json:"by_category"`
	StartTier     domain.DifficultyTier                        `json:"start_tier"`
	EndTier       domain.DifficultyTier                        `json:"end_tier"`
	TierChanged   bool                                         `json:"tier_changed"`
}

// AnswerFunc supplies the learner's answer for one exercise during
// RunSession. Returning an error aborts the session.
type AnswerFunc func(ex *domain.Exercise) (answer string, latencyMs int64, hintsUsed int, err error)

// PracticeService is the application-facing API for the practice engine.
type PracticeService interface {
	// GenerateExercise produces a fresh exercise for the user at their
	// current tier, or at tierOverride when non-nil.
	GenerateExercise(ctx context.Context, userID uuid.UUID, tierOverride *domain.DifficultyTier) (*domain.Exercise, error)

	// SubmitAnswer grades an answer, records the attempt, updates the
	// review card schedule and the weakness profile, and reports the
	// outcome.
	SubmitAnswer(ctx context.Context, userID uuid.UUID, ex *domain.Exercise, answer string, latencyMs int64, hintsUsed int) (*AnswerResult, error)

	// PlanSession assembles up to size exercises mixing due reviews and
	// new material.
	PlanSession(ctx context.Context, userID uuid.UUID, size int) (*SessionPlan, error)

	// RunSession plans a session, collects answers through respond, and
	// returns the aggregate summary.
	RunSession(ctx context.Context, userID uuid.UUID, size int, respond AnswerFunc) (*SessionSummary, error)

	// WeaknessReport returns the user's current weakness profile,
	// creating an empty one for first-time users.
	WeaknessReport(ctx context.Context, userID uuid.UUID) (*domain.WeaknessProfile, error)

	// ResetProgress deletes the user's review cards so scheduling starts
	// over. The weakness profile is kept.
	ResetProgress(ctx context.Context, userID uuid.UUID) error
}

type practiceService struct {
	cards      store.CardStore
	weakness   store.WeaknessStore
	verbs      store.VerbRepository
	engine     *conjugation.Engine
	analyzer   *analysis.Analyzer
	scheduler  srs.Service
	generator  *exercise.Generator
	difficulty *difficulty.Manager
	cfg        Config
	logger     *slog.Logger
	now        func() time.Time
}

var _ PracticeService = (*practiceService)(nil)

// NewPracticeService creates the practice orchestrator. All collaborators
// are required.
func NewPracticeService(
	cards store.CardStore,
	weakness store.WeaknessStore,
	verbs store.VerbRepository,
	engine *conjugation.Engine,
	analyzer *analysis.Analyzer,
	scheduler srs.Service,
	generator *exercise.Generator,
	diffManager *difficulty.Manager,
	cfg Config,
	logger *slog.Logger,
) (PracticeService, error) {
	switch {
	case cards == nil:
		return nil, fmt.Errorf("%w: card store", ErrNilDependency)
	case weakness == nil:
		return nil, fmt.Errorf("%w: weakness store", ErrNilDependency)
	case verbs == nil:
		return nil, fmt.Errorf("%w: verb repository", ErrNilDependency)
	case engine == nil:
		return nil, fmt.Errorf("%w: conjugation engine", ErrNilDependency)
	case analyzer == nil:
		return nil, fmt.Errorf("%w: analyzer", ErrNilDependency)
	case scheduler == nil:
		return nil, fmt.Errorf("%w: srs service", ErrNilDependency)
	case generator == nil:
		return nil, fmt.Errorf("%w: exercise generator", ErrNilDependency)
	case diffManager == nil:
		return nil, fmt.Errorf("%w: difficulty manager", ErrNilDependency)
	case logger == nil:
		return nil, fmt.Errorf("%w: logger", ErrNilDependency)
	}

	if cfg.DueRatio < 0 || cfg.DueRatio > 1 {
		return nil, fmt.Errorf("due ratio %v outside [0, 1]", cfg.DueRatio)
	}
	if cfg.MaxConflictRetries < 1 {
		cfg.MaxConflictRetries = NewDefaultConfig().MaxConflictRetries
	}

	return &practiceService{
		cards:      cards,
		weakness:   weakness,
		verbs:      verbs,
		engine:     engine,
		analyzer:   analyzer,
		scheduler:  scheduler,
		generator:  generator,
		difficulty: diffManager,
		cfg:        cfg,
		logger:     logger.With(slog.String("component", "practice_service")),
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *practiceService) GenerateExercise(ctx context.Context, userID uuid.UUID, tierOverride *domain.DifficultyTier) (*domain.Exercise, error) {
	profile, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, NewPracticeServiceError("generate exercise", err)
	}

	tier := profile.Tier
	if tierOverride != nil {
		if err := tierOverride.Validate(); err != nil {
			return nil, NewPracticeServiceError("generate exercise", err)
		}
		tier = *tierOverride
	}

	ex, err := s.generator.Generate(tier, profile)
	if err != nil {
		return nil, NewPracticeServiceError("generate exercise", err)
	}

	s.logger.DebugContext(ctx, "generated exercise",
		slog.String("user_id", userID.String()),
		slog.String("verb", ex.Verb),
		slog.String("tense", string(ex.Tense)),
		slog.String("person", string(ex.Person)),
		slog.String("tier", string(tier)))
	return ex, nil
}

func (s *practiceService) SubmitAnswer(ctx context.Context, userID uuid.UUID, ex *domain.Exercise, answer string, latencyMs int64, hintsUsed int) (*AnswerResult, error) {
	const op = "submit answer"

	if ex == nil {
		return nil, NewPracticeServiceError(op, domain.NewValidationError("exercise", "exercise is required", domain.ErrValidation))
	}
	if userID == uuid.Nil {
		return nil, NewPracticeServiceError(op, domain.NewValidationError("user_id", "user ID is required", domain.ErrValidation))
	}

	verb, err := s.verbs.GetVerb(ex.Verb)
	if err != nil {
		if errors.Is(err, store.ErrVerbNotFound) {
			return nil, NewPracticeServiceError(op, fmt.Errorf("%w: %s", ErrExerciseExpired, ex.Verb))
		}
		return nil, NewPracticeServiceError(op, err)
	}

	result, err := s.engine.Validate(verb, answer, ex.Tense, ex.Person)
	if err != nil {
		return nil, NewPracticeServiceError(op, err)
	}

	errType := domain.ErrorTypeNone
	if !result.IsCorrect {
		errType, err = s.analyzer.Classify(verb, answer, result.Expected, ex.Tense, ex.Person)
		if err != nil {
			return nil, NewPracticeServiceError(op, err)
		}
	}

	attempt, err := domain.NewAttempt(ex, userID, answer, result.NormalizedAnswer, result.IsCorrect, errType, latencyMs, hintsUsed)
	if err != nil {
		return nil, NewPracticeServiceError(op, err)
	}

	quality := s.scheduler.DeriveQuality(result.IsCorrect, errType, latencyMs, hintsUsed)

	card, err := s.reviewCard(ctx, userID, ex, quality)
	if err != nil {
		return nil, NewPracticeServiceError(op, err)
	}

	profile, tierChanged, err := s.updateProfile(ctx, userID, attempt)
	if err != nil {
		return nil, NewPracticeServiceError(op, err)
	}

	if err := s.weakness.RecordAttempt(ctx, attempt); err != nil {
		return nil, NewPracticeServiceError(op, err)
	}

	res := &AnswerResult{
		IsCorrect:   result.IsCorrect,
		Expected:    result.Expected,
		ErrorType:   errType,
		Quality:     quality,
		Points:      int(quality) * PointsPerQuality,
		NextDueDate: card.DueDate,
		Tier:        profile.Tier,
		TierChanged: tierChanged,
	}
	if errType != domain.ErrorTypeNone {
		res.Explanation = errType.Explanation()
	}

	s.logger.InfoContext(ctx, "graded answer",
		slog.String("user_id", userID.String()),
		slog.String("verb", ex.Verb),
		slog.Bool("is_correct", result.IsCorrect),
		slog.String("error_type", string(errType)),
		slog.Int("quality", int(quality)),
		slog.Bool("tier_changed", tierChanged))
	return res, nil
}

func (s *practiceService) PlanSession(ctx context.Context, userID uuid.UUID, size int) (*SessionPlan, error) {
	const op = "plan session"

	if size < 1 {
		return nil, NewPracticeServiceError(op, domain.NewValidationError("size", "session size must be positive", domain.ErrValidation))
	}

	profile, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, NewPracticeServiceError(op, err)
	}

	due, err := s.cards.GetDueCards(ctx, userID, s.now())
	if err != nil {
		return nil, NewPracticeServiceError(op, err)
	}

	dueBudget := int(math.Round(float64(size) * s.cfg.DueRatio))
	if dueBudget > len(due) {
		dueBudget = len(due)
	}

	plan := &SessionPlan{Exercises: make([]*domain.Exercise, 0, size)}
	for _, card := range due[:dueBudget] {
		ex, err := s.generator.ForCombination(card.Infinitive, card.Tense, card.Person, profile.Tier, profile)
		if err != nil {
			if errors.Is(err, store.ErrVerbNotFound) {
				// Stale card for a verb dropped from the reference set.
				continue
			}
			return nil, NewPracticeServiceError(op, err)
		}
		plan.Exercises = append(plan.Exercises, ex)
	}
	plan.DueCount = len(plan.Exercises)

	for len(plan.Exercises) < size {
		ex, err := s.generator.Generate(profile.Tier, profile)
		if err != nil {
			return nil, NewPracticeServiceError(op, err)
		}
		plan.Exercises = append(plan.Exercises, ex)
	}

	s.logger.DebugContext(ctx, "planned session",
		slog.String("user_id", userID.String()),
		slog.Int("size", len(plan.Exercises)),
		slog.Int("due", plan.DueCount))
	return plan, nil
}

func (s *practiceService) RunSession(ctx context.Context, userID uuid.UUID, size int, respond AnswerFunc) (*SessionSummary, error) {
	const op = "run session"

	if respond == nil {
		return nil, NewPracticeServiceError(op, fmt.Errorf("%w: answer callback", ErrNilDependency))
	}

	startProfile, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, NewPracticeServiceError(op, err)
	}

	plan, err := s.PlanSession(ctx, userID, size)
	if err != nil {
		return nil, err
	}

	summary := &SessionSummary{
		ByCategory:    make(map[domain.TriggerCategory]CategoryBreakdown),
		DueReviewed:   0,
		NewIntroduced: 0,
		StartTier:     startProfile.Tier,
		EndTier:       startProfile.Tier,
	}

	for i, ex := range plan.Exercises {
		if err := ctx.Err(); err != nil {
			return nil, NewPracticeServiceError(op, err)
		}

		answer, latencyMs, hintsUsed, err := respond(ex)
		if err != nil {
			return nil, NewPracticeServiceError(op, fmt.Errorf("%w: %v", ErrSessionAborted, err))
		}

		result, err := s.SubmitAnswer(ctx, userID, ex, answer, latencyMs, hintsUsed)
		if err != nil {
			return nil, err
		}

		summary.Attempted++
		if result.IsCorrect {
			summary.Correct++
		}
		summary.Points += result.Points
		if i < plan.DueCount {
			summary.DueReviewed++
		} else {
			summary.NewIntroduced++
		}

		breakdown := summary.ByCategory[ex.TriggerCategory]
		breakdown.Attempts++
		if result.IsCorrect {
			breakdown.Correct++
		}
		summary.ByCategory[ex.TriggerCategory] = breakdown

		summary.EndTier = result.Tier
	}

	if summary.Attempted > 0 {
		summary.Accuracy = float64(summary.Correct) / float64(summary.Attempted)
	}
	summary.TierChanged = summary.EndTier != summary.StartTier

	s.logger.InfoContext(ctx, "session complete",
		slog.String("user_id", userID.String()),
		slog.Int("attempted", summary.Attempted),
		slog.Int("correct", summary.Correct),
		slog.Int("points", summary.Points),
		slog.String("end_tier", string(summary.EndTier)))
	return summary, nil
}

func (s *practiceService) WeaknessReport(ctx context.Context, userID uuid.UUID) (*domain.WeaknessProfile, error) {
	profile, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, NewPracticeServiceError("weakness report", err)
	}
	return profile, nil
}

func (s *practiceService) ResetProgress(ctx context.Context, userID uuid.UUID) error {
	if err := s.cards.ResetCards(ctx, userID); err != nil {
		return NewPracticeServiceError("reset progress", err)
	}
	s.logger.InfoContext(ctx, "progress reset", slog.String("user_id", userID.String()))
	return nil
}

// reviewCard applies the quality grade to the user's card for the
// exercise's combination, creating the card on first contact. Version
// conflicts from concurrent sessions are retried against fresh reads.
func (s *practiceService) reviewCard(ctx context.Context, userID uuid.UUID, ex *domain.Exercise, quality srs.Quality) (*domain.ReviewCard, error) {
	key := domain.CardKey{UserID: userID, Infinitive: ex.Verb, Tense: ex.Tense, Person: ex.Person}

	for attempt := 0; attempt < s.cfg.MaxConflictRetries; attempt++ {
		card, err := s.cards.GetCard(ctx, key)
		switch {
		case errors.Is(err, store.ErrCardNotFound):
			card, err = domain.NewReviewCard(userID, ex.Verb, ex.Tense, ex.Person)
			if err != nil {
				return nil, err
			}
			if err := s.cards.SaveCard(ctx, card); err != nil {
				if errors.Is(err, store.ErrScheduleConflict) {
					// Another session created the card first; re-read it.
					continue
				}
				return nil, err
			}
		case err != nil:
			return nil, err
		}

		updated, err := s.scheduler.ApplyReview(card, quality, s.now())
		if err != nil {
			return nil, err
		}

		if err := s.cards.SaveCard(ctx, updated); err != nil {
			if errors.Is(err, store.ErrScheduleConflict) {
				continue
			}
			return nil, err
		}
		return updated, nil
	}

	return nil, fmt.Errorf("%w: card %s/%s/%s/%s", ErrConflictRetriesExhausted,
		userID, ex.Verb, ex.Tense, ex.Person)
}

// updateProfile folds the attempt into the weakness profile and runs the
// difficulty policy, retrying on version conflicts.
func (s *practiceService) updateProfile(ctx context.Context, userID uuid.UUID, attempt *domain.Attempt) (*domain.WeaknessProfile, bool, error) {
	for try := 0; try < s.cfg.MaxConflictRetries; try++ {
		profile, err := s.getOrCreateProfile(ctx, userID)
		if err != nil {
			return nil, false, err
		}

		profile.RecordAttempt(attempt)
		_, changed := s.difficulty.Record(profile, attempt.IsCorrect)
		profile.Version++

		if err := s.weakness.SaveProfile(ctx, profile); err != nil {
			if errors.Is(err, store.ErrProfileConflict) {
				continue
			}
			return nil, false, err
		}
		return profile, changed, nil
	}

	return nil, false, fmt.Errorf("%w: profile %s", ErrConflictRetriesExhausted, userID)
}

// getOrCreateProfile fetches the user's profile, persisting a fresh
// beginner profile on first contact. A concurrent create loses the race
// gracefully by re-reading.
func (s *practiceService) getOrCreateProfile(ctx context.Context, userID uuid.UUID) (*domain.WeaknessProfile, error) {
	profile, err := s.weakness.GetProfile(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, store.ErrProfileNotFound) {
		return nil, err
	}

	profile, err = domain.NewWeaknessProfile(userID)
	if err != nil {
		return nil, err
	}
	if err := s.weakness.SaveProfile(ctx, profile); err != nil {
		if errors.Is(err, store.ErrProfileConflict) {
			return s.weakness.GetProfile(ctx, userID)
		}
		return nil, err
	}
	return profile, nil
}
