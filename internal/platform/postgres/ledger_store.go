package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
	"github.com/ali-aktas/HocaLingo-sub002/internal/platform/logger"
	"github.com/ali-aktas/HocaLingo-sub002/internal/store"
)

// PostgresLedgerStore implements the store.LedgerStore interface
// using a PostgreSQL database as the storage backend.
type PostgresLedgerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLedgerStore creates a new PostgreSQL implementation of the
// LedgerStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresLedgerStore(db store.DBTX, logger *slog.Logger) *PostgresLedgerStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLedgerStore{
		db:     db,
		logger: logger.With(slog.String("component", "ledger_store")),
	}
}

// Ensure PostgresLedgerStore implements store.LedgerStore interface
var _ store.LedgerStore = (*PostgresLedgerStore)(nil)

const ledgerColumns = `
	user_id, date, words_studied, correct_answers, total_answers,
	study_time_ms, streak_count, goal_achieved, created_at, updated_at
`

func scanLedgerEntry(row interface{ Scan(...any) error }) (*domain.DailyLedgerEntry, error) {
	var entry domain.DailyLedgerEntry

	err := row.Scan(
		&entry.UserID,
		&entry.Date,
		&entry.WordsStudied,
		&entry.CorrectAnswers,
		&entry.TotalAnswers,
		&entry.StudyTimeMs,
		&entry.StreakCount,
		&entry.GoalAchieved,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// Get implements store.LedgerStore.Get
func (s *PostgresLedgerStore) Get(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
) (*domain.DailyLedgerEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + ledgerColumns + `
		FROM daily_ledger
		WHERE user_id = $1 AND date = $2
	`

	entry, err := scanLedgerEntry(s.db.QueryRowContext(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLedgerEntryNotFound
		}
		log.Error("failed to get ledger entry",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("date", date.Format("2006-01-02")))
		return nil, mapError(err)
	}

	return entry, nil
}

// Insert implements store.LedgerStore.Insert
// The (user_id, date) uniqueness constraint resolves races between
// concurrent app launches: the losing insert reports created=false.
func (s *PostgresLedgerStore) Insert(ctx context.Context, entry *domain.DailyLedgerEntry) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("ledger entry validation failed during insert",
			slog.String("error", err.Error()),
			slog.String("user_id", entry.UserID.String()))
		return false, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO daily_ledger (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, date) DO NOTHING
	`

	result, err := s.db.ExecContext(ctx, query,
		entry.UserID,
		entry.Date,
		entry.WordsStudied,
		entry.CorrectAnswers,
		entry.TotalAnswers,
		entry.StudyTimeMs,
		entry.StreakCount,
		entry.GoalAchieved,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to insert ledger entry",
			slog.String("error", err.Error()),
			slog.String("user_id", entry.UserID.String()),
			slog.String("date", entry.Date.Format("2006-01-02")))
		return false, mapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, mapError(err)
	}

	created := rows > 0
	log.Debug("ledger entry insert attempted",
		slog.String("user_id", entry.UserID.String()),
		slog.String("date", entry.Date.Format("2006-01-02")),
		slog.Bool("created", created))
	return created, nil
}

// ApplyReview implements store.LedgerStore.ApplyReview
// Counters are incremented in a single additive update so concurrent
// reviews on the same day never lose increments to a read-modify-write race.
func (s *PostgresLedgerStore) ApplyReview(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
	wasCorrect bool,
	elapsed time.Duration,
	now time.Time,
) (*domain.DailyLedgerEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	correctDelta := 0
	if wasCorrect {
		correctDelta = 1
	}

	query := `
		UPDATE daily_ledger
		SET words_studied = words_studied + 1,
			total_answers = total_answers + 1,
			correct_answers = correct_answers + $3,
			study_time_ms = study_time_ms + $4,
			updated_at = $5
		WHERE user_id = $1 AND date = $2
		RETURNING ` + ledgerColumns + `
	`

	entry, err := scanLedgerEntry(s.db.QueryRowContext(ctx, query,
		userID, date, correctDelta, elapsed.Milliseconds(), now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLedgerEntryNotFound
		}
		log.Error("failed to apply review to ledger entry",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("date", date.Format("2006-01-02")))
		return nil, mapError(err)
	}

	return entry, nil
}

// ClaimGoalAchieved implements store.LedgerStore.ClaimGoalAchieved
func (s *PostgresLedgerStore) ClaimGoalAchieved(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// The NOT goal_achieved guard makes the claim exclusive: only one
	// of several concurrent writers sees an affected row.
	query := `
		UPDATE daily_ledger SET goal_achieved = TRUE
		WHERE user_id = $1 AND date = $2 AND NOT goal_achieved`

	result, err := s.db.ExecContext(ctx, query, userID, date)
	if err != nil {
		log.Error("failed to claim goal achieved flag",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("date", date.Format("2006-01-02")))
		return false, mapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check claim result: %w", err)
	}

	log.Debug("goal achieved claim attempted",
		slog.String("user_id", userID.String()),
		slog.String("date", date.Format("2006-01-02")),
		slog.Bool("claimed", rows > 0))
	return rows > 0, nil
}

// ListRange implements store.LedgerStore.ListRange
func (s *PostgresLedgerStore) ListRange(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]*domain.DailyLedgerEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + ledgerColumns + `
		FROM daily_ledger
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		log.Error("failed to query ledger range",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, mapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var entries []*domain.DailyLedgerEntry
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			log.Error("failed to scan ledger row", slog.String("error", err.Error()))
			return nil, mapError(err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	if entries == nil {
		entries = []*domain.DailyLedgerEntry{}
	}

	return entries, nil
}

// WithTx implements store.LedgerStore.WithTx
// It returns a new LedgerStore instance using the provided transaction.
func (s *PostgresLedgerStore) WithTx(tx *sql.Tx) store.LedgerStore {
	return &PostgresLedgerStore{
		db:     tx,
		logger: s.logger,
	}
}
