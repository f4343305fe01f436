package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/practico/practico-api/internal/domain"
	"github.com/practico/practico-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil,
// the default logger is used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

const cardColumns = `user_id, infinitive, tense, person,
	ease_factor, interval_days, repetitions, consecutive_correct,
	due_date, last_reviewed_at, version, created_at, updated_at`

// GetCard implements store.CardStore.GetCard.
func (s *PostgresCardStore) GetCard(ctx context.Context, key domain.CardKey) (*domain.ReviewCard, error) {
	query := fmt.Sprintf(`SELECT %s FROM review_cards
		WHERE user_id = $1 AND infinitive = $2 AND tense = $3 AND person = $4`, cardColumns)

	row := s.db.QueryRowContext(ctx, query, key.UserID, key.Infinitive, key.Tense, key.Person)
	card, err := scanCard(row)
	if err != nil {
		return nil, mapError(err, store.ErrCardNotFound)
	}
	return card, nil
}

// GetDueCards implements store.CardStore.GetDueCards. Due cards are
// ordered by due date with ties broken by lowest easiness factor.
func (s *PostgresCardStore) GetDueCards(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.ReviewCard, error) {
	query := fmt.Sprintf(`SELECT %s FROM review_cards
		WHERE user_id = $1 AND due_date <= $2
		ORDER BY due_date ASC, ease_factor ASC`, cardColumns)

	rows, err := s.db.QueryContext(ctx, query, userID, now)
	if err != nil {
		return nil, mapError(err, store.ErrCardNotFound)
	}
	defer func() { _ = rows.Close() }()

	var cards []*domain.ReviewCard
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, mapError(err, store.ErrCardNotFound)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, store.ErrCardNotFound)
	}
	return cards, nil
}

// SaveCard implements store.CardStore.SaveCard. Cards at version 1 are
// inserted; later versions update the row only when the stored version is
// exactly one behind, otherwise ErrScheduleConflict is returned.
func (s *PostgresCardStore) SaveCard(ctx context.Context, card *domain.ReviewCard) error {
	if err := card.Validate(); err != nil {
		return err
	}

	if card.Version == 1 {
		return s.insertCard(ctx, card)
	}
	return s.updateCard(ctx, card)
}

func (s *PostgresCardStore) insertCard(ctx context.Context, card *domain.ReviewCard) error {
	query := `INSERT INTO review_cards (user_id, infinitive, tense, person,
		ease_factor, interval_days, repetitions, consecutive_correct,
		due_date, last_reviewed_at, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := s.db.ExecContext(ctx, query,
		card.UserID, card.Infinitive, card.Tense, card.Person,
		card.EaseFactor, card.IntervalDays, card.Repetitions, card.ConsecutiveCorrect,
		card.DueDate, nullableTime(card.LastReviewedAt), card.Version, card.CreatedAt, card.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			// Another session created the card between our read and write.
			return fmt.Errorf("%w: %v", store.ErrScheduleConflict, err)
		}
		return mapError(err, store.ErrCardNotFound)
	}

	s.logger.DebugContext(ctx, "inserted review card",
		slog.String("user_id", card.UserID.String()),
		slog.String("infinitive", card.Infinitive))
	return nil
}

func (s *PostgresCardStore) updateCard(ctx context.Context, card *domain.ReviewCard) error {
	query := `UPDATE review_cards SET
		ease_factor = $1, interval_days = $2, repetitions = $3,
		consecutive_correct = $4, due_date = $5, last_reviewed_at = $6,
		version = $7, updated_at = $8
		WHERE user_id = $9 AND infinitive = $10 AND tense = $11 AND person = $12
		AND version = $13`

	result, err := s.db.ExecContext(ctx, query,
		card.EaseFactor, card.IntervalDays, card.Repetitions,
		card.ConsecutiveCorrect, card.DueDate, nullableTime(card.LastReviewedAt),
		card.Version, card.UpdatedAt,
		card.UserID, card.Infinitive, card.Tense, card.Person,
		card.Version-1)
	if err != nil {
		return mapError(err, store.ErrCardNotFound)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: stored version is not %d", store.ErrScheduleConflict, card.Version-1)
	}
	return nil
}

// ResetCards implements store.CardStore.ResetCards.
func (s *PostgresCardStore) ResetCards(ctx context.Context, userID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM review_cards WHERE user_id = $1`, userID)
	if err != nil {
		return mapError(err, store.ErrCardNotFound)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "reset review cards",
		slog.String("user_id", userID.String()),
		slog.Int64("deleted", affected))
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*domain.ReviewCard, error) {
	var card domain.ReviewCard
	var lastReviewed sql.NullTime

	err := row.Scan(
		&card.UserID, &card.Infinitive, &card.Tense, &card.Person,
		&card.EaseFactor, &card.IntervalDays, &card.Repetitions, &card.ConsecutiveCorrect,
		&card.DueDate, &lastReviewed, &card.Version, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if lastReviewed.Valid {
		card.LastReviewedAt = lastReviewed.Time
	}
	return &card, nil
}

func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
