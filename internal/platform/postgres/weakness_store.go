package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/practico/practico-api/internal/domain"
	"github.com/practico/practico-api/internal/store"
)

// PostgresWeaknessStore implements the store.WeaknessStore interface
// using a PostgreSQL database as the storage backend. Error counts,
// category stats and the rolling window are stored as JSONB.
type PostgresWeaknessStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWeaknessStore creates a new PostgreSQL implementation of the
// WeaknessStore interface. If logger is nil, the default logger is used.
func NewPostgresWeaknessStore(db store.DBTX, logger *slog.Logger) *PostgresWeaknessStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWeaknessStore{
		db:     db,
		logger: logger.With(slog.String("component", "weakness_store")),
	}
}

// Ensure PostgresWeaknessStore implements store.WeaknessStore interface
var _ store.WeaknessStore = (*PostgresWeaknessStore)(nil)

// GetProfile implements store.WeaknessStore.GetProfile.
func (s *PostgresWeaknessStore) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.WeaknessProfile, error) {
	query := `SELECT user_id, error_counts, category_stats, accuracy_window, tier, version, updated_at
		FROM weakness_profiles WHERE user_id = $1`

	var profile domain.WeaknessProfile
	var errorCounts, categoryStats, window []byte

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID, &errorCounts, &categoryStats, &window,
		&profile.Tier, &profile.Version, &profile.UpdatedAt)
	if err != nil {
		return nil, mapError(err, store.ErrProfileNotFound)
	}

	if err := json.Unmarshal(errorCounts, &profile.ErrorCounts); err != nil {
		return nil, fmt.Errorf("decoding error counts: %w", err)
	}
	if err := json.Unmarshal(categoryStats, &profile.CategoryStats); err != nil {
		return nil, fmt.Errorf("decoding category stats: %w", err)
	}
	if err := json.Unmarshal(window, &profile.Window); err != nil {
		return nil, fmt.Errorf("decoding accuracy window: %w", err)
	}

	return &profile, nil
}

// SaveProfile implements store.WeaknessStore.SaveProfile with the same
// version protocol as SaveCard: version 1 inserts, later versions update
// only when the stored version is exactly one behind.
func (s *PostgresWeaknessStore) SaveProfile(ctx context.Context, profile *domain.WeaknessProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	errorCounts, err := json.Marshal(profile.ErrorCounts)
	if err != nil {
		return fmt.Errorf("encoding error counts: %w", err)
	}
	categoryStats, err := json.Marshal(profile.CategoryStats)
	if err != nil {
		return fmt.Errorf("encoding category stats: %w", err)
	}
	window, err := json.Marshal(profile.Window)
	if err != nil {
		return fmt.Errorf("encoding accuracy window: %w", err)
	}

	if profile.Version == 1 {
		query := `INSERT INTO weakness_profiles
			(user_id, error_counts, category_stats, accuracy_window, tier, version, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		_, err := s.db.ExecContext(ctx, query,
			profile.UserID, errorCounts, categoryStats, window,
			profile.Tier, profile.Version, profile.UpdatedAt)
		if err != nil {
			if IsUniqueViolation(err) {
				return fmt.Errorf("%w: %v", store.ErrProfileConflict, err)
			}
			return mapError(err, store.ErrProfileNotFound)
		}
		return nil
	}

	query := `UPDATE weakness_profiles SET
		error_counts = $1, category_stats = $2, accuracy_window = $3,
		tier = $4, version = $5, updated_at = $6
		WHERE user_id = $7 AND version = $8`

	result, err := s.db.ExecContext(ctx, query,
		errorCounts, categoryStats, window,
		profile.Tier, profile.Version, profile.UpdatedAt,
		profile.UserID, profile.Version-1)
	if err != nil {
		return mapError(err, store.ErrProfileNotFound)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: stored version is not %d", store.ErrProfileConflict, profile.Version-1)
	}
	return nil
}

// RecordAttempt implements store.WeaknessStore.RecordAttempt.
func (s *PostgresWeaknessStore) RecordAttempt(ctx context.Context, attempt *domain.Attempt) error {
	if err := attempt.Validate(); err != nil {
		return err
	}

	query := `INSERT INTO attempts
		(id, exercise_id, user_id, verb, tense, person, trigger_category,
		answer, normalized_answer, is_correct, error_type, latency_ms, hints_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := s.db.ExecContext(ctx, query,
		attempt.ID, attempt.ExerciseID, attempt.UserID,
		attempt.Verb, attempt.Tense, attempt.Person, attempt.TriggerCategory,
		attempt.Answer, attempt.NormalizedAnswer, attempt.IsCorrect,
		attempt.ErrorType, attempt.LatencyMs, attempt.HintsUsed, attempt.CreatedAt)
	if err != nil {
		return mapError(err, store.ErrNotFound)
	}

	s.logger.DebugContext(ctx, "recorded attempt",
		slog.String("user_id", attempt.UserID.String()),
		slog.String("verb", attempt.Verb),
		slog.Bool("is_correct", attempt.IsCorrect))
	return nil
}
