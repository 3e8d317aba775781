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

// PostgresSelectionStore implements the store.SelectionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSelectionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSelectionStore creates a new PostgreSQL implementation of the
// SelectionStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresSelectionStore(db store.DBTX, logger *slog.Logger) *PostgresSelectionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSelectionStore{
		db:     db,
		logger: logger.With(slog.String("component", "selection_store")),
	}
}

// Ensure PostgresSelectionStore implements store.SelectionStore interface
var _ store.SelectionStore = (*PostgresSelectionStore)(nil)

// Create implements store.SelectionStore.Create
// It returns store.ErrSelectionExists if the user already decided on the
// concept, and store.ErrInvalidEntity if the selection fails validation.
func (s *PostgresSelectionStore) Create(ctx context.Context, selection *domain.Selection) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := selection.Validate(); err != nil {
		log.Warn("selection validation failed during creation",
			slog.String("error", err.Error()),
			slog.String("user_id", selection.UserID.String()),
			slog.Int64("concept_id", selection.ConceptID))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO selections (user_id, concept_id, package_id, status, decided_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query,
		selection.UserID,
		selection.ConceptID,
		selection.PackageID,
		string(selection.Status),
		selection.DecidedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("selection already exists",
				slog.String("user_id", selection.UserID.String()),
				slog.Int64("concept_id", selection.ConceptID))
			return store.ErrSelectionExists
		}
		log.Error("failed to create selection",
			slog.String("error", err.Error()),
			slog.String("user_id", selection.UserID.String()),
			slog.Int64("concept_id", selection.ConceptID))
		return mapError(err)
	}

	log.Debug("selection created",
		slog.String("user_id", selection.UserID.String()),
		slog.Int64("concept_id", selection.ConceptID),
		slog.String("status", string(selection.Status)))
	return nil
}

// Get implements store.SelectionStore.Get
func (s *PostgresSelectionStore) Get(
	ctx context.Context,
	userID uuid.UUID,
	conceptID int64,
) (*domain.Selection, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, concept_id, package_id, status, decided_at
		FROM selections
		WHERE user_id = $1 AND concept_id = $2
	`

	var selection domain.Selection
	var status string

	err := s.db.QueryRowContext(ctx, query, userID, conceptID).Scan(
		&selection.UserID,
		&selection.ConceptID,
		&selection.PackageID,
		&status,
		&selection.DecidedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSelectionNotFound
		}
		log.Error("failed to get selection",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("concept_id", conceptID))
		return nil, mapError(err)
	}

	selection.Status = domain.SelectionStatus(status)
	return &selection, nil
}

// Delete implements store.SelectionStore.Delete
// It returns store.ErrSelectionNotFound if no matching row exists.
func (s *PostgresSelectionStore) Delete(ctx context.Context, userID uuid.UUID, conceptID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM selections WHERE user_id = $1 AND concept_id = $2`

	result, err := s.db.ExecContext(ctx, query, userID, conceptID)
	if err != nil {
		log.Error("failed to delete selection",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("concept_id", conceptID))
		return mapError(err)
	}

	if err := checkRowsAffected(result, store.ErrSelectionNotFound); err != nil {
		return err
	}

	log.Debug("selection deleted",
		slog.String("user_id", userID.String()),
		slog.Int64("concept_id", conceptID))
	return nil
}

// UpdateStatus implements store.SelectionStore.UpdateStatus
func (s *PostgresSelectionStore) UpdateStatus(
	ctx context.Context,
	userID uuid.UUID,
	conceptID int64,
	status domain.SelectionStatus,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE selections SET status = $3 WHERE user_id = $1 AND concept_id = $2`

	result, err := s.db.ExecContext(ctx, query, userID, conceptID, string(status))
	if err != nil {
		log.Error("failed to update selection status",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("concept_id", conceptID),
			slog.String("status", string(status)))
		return mapError(err)
	}

	if err := checkRowsAffected(result, store.ErrSelectionNotFound); err != nil {
		return err
	}

	log.Debug("selection status updated",
		slog.String("user_id", userID.String()),
		slog.Int64("concept_id", conceptID),
		slog.String("status", string(status)))
	return nil
}

// CountByStatus implements store.SelectionStore.CountByStatus
// An empty packageID counts across all packages.
func (s *PostgresSelectionStore) CountByStatus(
	ctx context.Context,
	userID uuid.UUID,
	packageID string,
	status domain.SelectionStatus,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	var err error

	if packageID == "" {
		query := `SELECT COUNT(*) FROM selections WHERE user_id = $1 AND status = $2`
		err = s.db.QueryRowContext(ctx, query, userID, string(status)).Scan(&count)
	} else {
		query := `SELECT COUNT(*) FROM selections WHERE user_id = $1 AND status = $2 AND package_id = $3`
		err = s.db.QueryRowContext(ctx, query, userID, string(status), packageID).Scan(&count)
	}

	if err != nil {
		log.Error("failed to count selections by status",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("status", string(status)))
		return 0, mapError(err)
	}

	return count, nil
}

// CountSelectedSince implements store.SelectionStore.CountSelectedSince
// Only rows that still exist count toward the total, so undone decisions
// release their share of the daily quota.
func (s *PostgresSelectionStore) CountSelectedSince(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM selections
		WHERE user_id = $1 AND status = $2 AND decided_at >= $3
	`

	var count int
	err := s.db.QueryRowContext(ctx, query, userID, string(domain.SelectionStatusSelected), since).Scan(&count)
	if err != nil {
		log.Error("failed to count selections since",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, mapError(err)
	}

	return count, nil
}

// WithTx implements store.SelectionStore.WithTx
// It returns a new SelectionStore instance using the provided transaction.
func (s *PostgresSelectionStore) WithTx(tx *sql.Tx) store.SelectionStore {
	return &PostgresSelectionStore{
		db:     tx,
		logger: s.logger,
	}
}
