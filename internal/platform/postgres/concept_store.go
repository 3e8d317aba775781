package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
	"github.com/ali-aktas/HocaLingo-sub002/internal/platform/logger"
	"github.com/ali-aktas/HocaLingo-sub002/internal/store"
)

// PostgresConceptStore implements the store.ConceptStore interface
// using a PostgreSQL database as the storage backend.
type PostgresConceptStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresConceptStore creates a new PostgreSQL implementation of the
// ConceptStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresConceptStore(db store.DBTX, logger *slog.Logger) *PostgresConceptStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresConceptStore{
		db:     db,
		logger: logger.With(slog.String("component", "concept_store")),
	}
}

// Ensure PostgresConceptStore implements store.ConceptStore interface
var _ store.ConceptStore = (*PostgresConceptStore)(nil)

// GetByID implements store.ConceptStore.GetByID
func (s *PostgresConceptStore) GetByID(ctx context.Context, id int64) (*domain.Concept, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, front_text, back_text, level, package_id, created_at
		FROM concepts
		WHERE id = $1
	`

	var concept domain.Concept
	var level string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&concept.ID,
		&concept.FrontText,
		&concept.BackText,
		&level,
		&concept.PackageID,
		&concept.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("concept not found", slog.Int64("concept_id", id))
			return nil, store.ErrConceptNotFound
		}
		log.Error("failed to get concept by ID",
			slog.String("error", err.Error()),
			slog.Int64("concept_id", id))
		return nil, mapError(err)
	}

	concept.Level = domain.Level(level)
	return &concept, nil
}

// ListUndecided implements store.ConceptStore.ListUndecided
// Concepts are returned in package-insertion order (ascending ID); a
// concept is undecided when the user has no selections row for it.
func (s *PostgresConceptStore) ListUndecided(
	ctx context.Context,
	userID uuid.UUID,
	packageID string,
) ([]*domain.Concept, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT c.id, c.front_text, c.back_text, c.level, c.package_id, c.created_at
		FROM concepts c
		LEFT JOIN selections s ON s.concept_id = c.id AND s.user_id = $1
		WHERE c.package_id = $2 AND s.concept_id IS NULL
		ORDER BY c.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, packageID)
	if err != nil {
		log.Error("failed to query undecided concepts",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("package_id", packageID))
		return nil, mapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var concepts []*domain.Concept
	for rows.Next() {
		var concept domain.Concept
		var level string

		err := rows.Scan(
			&concept.ID,
			&concept.FrontText,
			&concept.BackText,
			&level,
			&concept.PackageID,
			&concept.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan concept row", slog.String("error", err.Error()))
			return nil, mapError(err)
		}

		concept.Level = domain.Level(level)
		concepts = append(concepts, &concept)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	if concepts == nil {
		concepts = []*domain.Concept{}
	}

	log.Debug("listed undecided concepts",
		slog.String("user_id", userID.String()),
		slog.String("package_id", packageID),
		slog.Int("count", len(concepts)))
	return concepts, nil
}

// CountByPackage implements store.ConceptStore.CountByPackage
func (s *PostgresConceptStore) CountByPackage(ctx context.Context, packageID string) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT COUNT(*) FROM concepts WHERE package_id = $1`

	var count int
	if err := s.db.QueryRowContext(ctx, query, packageID).Scan(&count); err != nil {
		log.Error("failed to count concepts in package",
			slog.String("error", err.Error()),
			slog.String("package_id", packageID))
		return 0, mapError(err)
	}

	return count, nil
}
