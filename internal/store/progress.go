package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
)

// StudyProgressStore defines the interface for scheduling state persistence.
type StudyProgressStore interface {
	// Create saves a new study progress row.
	// It handles domain validation internally.
	// Returns an error if the (user, concept, direction) row already exists.
	Create(ctx context.Context, progress *domain.StudyProgress) error

	// Get retrieves scheduling state for a (user, concept, direction) triple.
	// Returns ErrStudyProgressNotFound if no row exists.
	// NOTE: This method does NOT provide any row locking, so it should not be
	// used when you plan to update the row and need concurrency protection.
	Get(
		ctx context.Context,
		userID uuid.UUID,
		conceptID int64,
		direction domain.StudyDirection,
	) (*domain.StudyProgress, error)

	// GetForUpdate retrieves scheduling state with a row-level lock using
	// SELECT FOR UPDATE. This should be used within a transaction when the
	// row is about to be updated, so two concurrent grades on the same
	// concept cannot both read the pre-grade state.
	// Returns ErrStudyProgressNotFound if no row exists.
	GetForUpdate(
		ctx context.Context,
		userID uuid.UUID,
		conceptID int64,
		direction domain.StudyDirection,
	) (*domain.StudyProgress, error)

	// Update modifies an existing study progress row.
	// It handles domain validation internally.
	// Returns ErrStudyProgressNotFound if no row exists.
	Update(ctx context.Context, progress *domain.StudyProgress) error

	// DeleteForConcept removes all of the user's scheduling state for a
	// concept, across directions. Used only by triage undo.
	// Deleting a concept that has no rows is not an error.
	DeleteForConcept(ctx context.Context, userID uuid.UUID, conceptID int64) error

	// ListDue returns scheduling rows with dueAt <= now and a phase other
	// than mastered, ordered by dueAt ascending (oldest overdue first).
	// A limit of 0 means no limit.
	ListDue(
		ctx context.Context,
		userID uuid.UUID,
		direction domain.StudyDirection,
		now time.Time,
		limit int,
	) ([]*domain.StudyProgress, error)

	// CountByPhase returns per-phase counts of the user's scheduling rows in
	// the given direction.
	CountByPhase(
		ctx context.Context,
		userID uuid.UUID,
		direction domain.StudyDirection,
	) (map[domain.Phase]int, error)

	// WithTx returns a new StudyProgressStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) StudyProgressStore
}
