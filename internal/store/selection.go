package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
)

// SelectionStore defines the interface for triage decision persistence.
type SelectionStore interface {
	// Create saves a new selection row.
	// It handles domain validation internally.
	// Returns ErrSelectionExists if the (user, concept) pair already has a
	// decision recorded.
	Create(ctx context.Context, selection *domain.Selection) error

	// Get retrieves the selection for a (user, concept) pair.
	// Returns ErrSelectionNotFound if the concept is undecided.
	Get(ctx context.Context, userID uuid.UUID, conceptID int64) (*domain.Selection, error)

	// Delete removes the selection for a (user, concept) pair. Used only by
	// triage undo. Returns ErrSelectionNotFound if no decision exists.
	Delete(ctx context.Context, userID uuid.UUID, conceptID int64) error

	// UpdateStatus transitions an existing selection to the given status.
	// The scheduler uses this to mirror mastery (selected → mastered).
	// Returns ErrSelectionNotFound if no decision exists.
	UpdateStatus(
		ctx context.Context,
		userID uuid.UUID,
		conceptID int64,
		status domain.SelectionStatus,
	) error

	// CountByStatus counts the user's selections with the given status.
	// An empty packageID counts across all packages.
	CountByStatus(
		ctx context.Context,
		userID uuid.UUID,
		packageID string,
		status domain.SelectionStatus,
	) (int, error)

	// CountSelectedSince counts SELECTED rows the user created at or after
	// the given instant. The daily keep quota is defined as this count with
	// the local midnight as the boundary, so undo self-corrects the quota.
	CountSelectedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)

	// WithTx returns a new SelectionStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) SelectionStore
}
