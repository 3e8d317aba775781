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

// PostgresStudyProgressStore implements the store.StudyProgressStore
// interface using a PostgreSQL database as the storage backend.
type PostgresStudyProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStudyProgressStore creates a new PostgreSQL implementation of
// the StudyProgressStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresStudyProgressStore(db store.DBTX, logger *slog.Logger) *PostgresStudyProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStudyProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_progress_store")),
	}
}

// Ensure PostgresStudyProgressStore implements store.StudyProgressStore interface
var _ store.StudyProgressStore = (*PostgresStudyProgressStore)(nil)

const progressColumns = `
	user_id, concept_id, direction, phase, interval_days, ease_factor,
	due_at, lapses, review_count, created_at, updated_at
`

// scanProgress reads a single study progress row from the given scanner.
func scanProgress(row interface{ Scan(...any) error }) (*domain.StudyProgress, error) {
	var progress domain.StudyProgress
	var direction, phase string

	err := row.Scan(
		&progress.UserID,
		&progress.ConceptID,
		&direction,
		&phase,
		&progress.IntervalDays,
		&progress.EaseFactor,
		&progress.DueAt,
		&progress.Lapses,
		&progress.ReviewCount,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	progress.Direction = domain.StudyDirection(direction)
	progress.Phase = domain.Phase(phase)
	return &progress, nil
}

// Create implements store.StudyProgressStore.Create
func (s *PostgresStudyProgressStore) Create(ctx context.Context, progress *domain.StudyProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("study progress validation failed during creation",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.Int64("concept_id", progress.ConceptID))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO study_progress (` + progressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := s.db.ExecContext(ctx, query,
		progress.UserID,
		progress.ConceptID,
		string(progress.Direction),
		string(progress.Phase),
		progress.IntervalDays,
		progress.EaseFactor,
		progress.DueAt,
		progress.Lapses,
		progress.ReviewCount,
		progress.CreatedAt,
		progress.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicate
		}
		log.Error("failed to create study progress",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.Int64("concept_id", progress.ConceptID),
			slog.String("direction", string(progress.Direction)))
		return mapError(err)
	}

	log.Debug("study progress created",
		slog.String("user_id", progress.UserID.String()),
		slog.Int64("concept_id", progress.ConceptID),
		slog.String("direction", string(progress.Direction)))
	return nil
}

// Get implements store.StudyProgressStore.Get
func (s *PostgresStudyProgressStore) Get(
	ctx context.Context,
	userID uuid.UUID,
	conceptID int64,
	direction domain.StudyDirection,
) (*domain.StudyProgress, error) {
	return s.get(ctx, userID, conceptID, direction, false)
}

// GetForUpdate implements store.StudyProgressStore.GetForUpdate
// It acquires a row-level lock; callers must be inside a transaction.
func (s *PostgresStudyProgressStore) GetForUpdate(
	ctx context.Context,
	userID uuid.UUID,
	conceptID int64,
	direction domain.StudyDirection,
) (*domain.StudyProgress, error) {
	return s.get(ctx, userID, conceptID, direction, true)
}

func (s *PostgresStudyProgressStore) get(
	ctx context.Context,
	userID uuid.UUID,
	conceptID int64,
	direction domain.StudyDirection,
	forUpdate bool,
) (*domain.StudyProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + progressColumns + `
		FROM study_progress
		WHERE user_id = $1 AND concept_id = $2 AND direction = $3
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	progress, err := scanProgress(s.db.QueryRowContext(ctx, query, userID, conceptID, string(direction)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrStudyProgressNotFound
		}
		log.Error("failed to get study progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("concept_id", conceptID),
			slog.String("direction", string(direction)))
		return nil, mapError(err)
	}

	return progress, nil
}

// Update implements store.StudyProgressStore.Update
func (s *PostgresStudyProgressStore) Update(ctx context.Context, progress *domain.StudyProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("study progress validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.Int64("concept_id", progress.ConceptID))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE study_progress
		SET phase = $4, interval_days = $5, ease_factor = $6, due_at = $7,
			lapses = $8, review_count = $9, updated_at = $10
		WHERE user_id = $1 AND concept_id = $2 AND direction = $3
	`

	result, err := s.db.ExecContext(ctx, query,
		progress.UserID,
		progress.ConceptID,
		string(progress.Direction),
		string(progress.Phase),
		progress.IntervalDays,
		progress.EaseFactor,
		progress.DueAt,
		progress.Lapses,
		progress.ReviewCount,
		progress.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to update study progress",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.Int64("concept_id", progress.ConceptID),
			slog.String("direction", string(progress.Direction)))
		return mapError(err)
	}

	if err := checkRowsAffected(result, store.ErrStudyProgressNotFound); err != nil {
		return err
	}

	log.Debug("study progress updated",
		slog.String("user_id", progress.UserID.String()),
		slog.Int64("concept_id", progress.ConceptID),
		slog.String("direction", string(progress.Direction)),
		slog.String("phase", string(progress.Phase)))
	return nil
}

// DeleteForConcept implements store.StudyProgressStore.DeleteForConcept
// Deleting a concept with no scheduling rows is not an error.
func (s *PostgresStudyProgressStore) DeleteForConcept(
	ctx context.Context,
	userID uuid.UUID,
	conceptID int64,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM study_progress WHERE user_id = $1 AND concept_id = $2`

	result, err := s.db.ExecContext(ctx, query, userID, conceptID)
	if err != nil {
		log.Error("failed to delete study progress for concept",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("concept_id", conceptID))
		return mapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}

	log.Debug("study progress deleted for concept",
		slog.String("user_id", userID.String()),
		slog.Int64("concept_id", conceptID),
		slog.Int64("rows", rows))
	return nil
}

// ListDue implements store.StudyProgressStore.ListDue
// Rows are ordered oldest overdue first. A limit of 0 means no limit.
func (s *PostgresStudyProgressStore) ListDue(
	ctx context.Context,
	userID uuid.UUID,
	direction domain.StudyDirection,
	now time.Time,
	limit int,
) ([]*domain.StudyProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + progressColumns + `
		FROM study_progress
		WHERE user_id = $1 AND direction = $2 AND due_at <= $3 AND phase != $4
		ORDER BY due_at ASC
	`

	args := []any{userID, string(direction), now, string(domain.PhaseMastered)}
	if limit > 0 {
		query += " LIMIT $5"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query due study progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("direction", string(direction)))
		return nil, mapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var due []*domain.StudyProgress
	for rows.Next() {
		progress, err := scanProgress(rows)
		if err != nil {
			log.Error("failed to scan study progress row", slog.String("error", err.Error()))
			return nil, mapError(err)
		}
		due = append(due, progress)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	if due == nil {
		due = []*domain.StudyProgress{}
	}

	return due, nil
}

// CountByPhase implements store.StudyProgressStore.CountByPhase
func (s *PostgresStudyProgressStore) CountByPhase(
	ctx context.Context,
	userID uuid.UUID,
	direction domain.StudyDirection,
) (map[domain.Phase]int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT phase, COUNT(*)
		FROM study_progress
		WHERE user_id = $1 AND direction = $2
		GROUP BY phase
	`

	rows, err := s.db.QueryContext(ctx, query, userID, string(direction))
	if err != nil {
		log.Error("failed to count study progress by phase",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("direction", string(direction)))
		return nil, mapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	counts := make(map[domain.Phase]int)
	for rows.Next() {
		var phase string
		var count int
		if err := rows.Scan(&phase, &count); err != nil {
			log.Error("failed to scan phase count row", slog.String("error", err.Error()))
			return nil, mapError(err)
		}
		counts[domain.Phase(phase)] = count
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	return counts, nil
}

// WithTx implements store.StudyProgressStore.WithTx
// It returns a new StudyProgressStore instance using the provided transaction.
func (s *PostgresStudyProgressStore) WithTx(tx *sql.Tx) store.StudyProgressStore {
	return &PostgresStudyProgressStore{
		db:     tx,
		logger: s.logger,
	}
}
