package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
)

// LedgerStore defines the interface for the per-day activity ledger.
// Entries are keyed (user, date) with a uniqueness constraint; that
// constraint, not client-side locking, is what makes day rollover
// idempotent under at-least-once invocation.
type LedgerStore interface {
	// Get retrieves the ledger entry for a (user, date) pair.
	// Returns ErrLedgerEntryNotFound if no activity was recorded that day.
	Get(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyLedgerEntry, error)

	// Insert conditionally creates the entry for its (user, date) key.
	// Returns created=false without error when an entry already exists, so
	// racing app launches cannot double-count a day or corrupt the streak.
	Insert(ctx context.Context, entry *domain.DailyLedgerEntry) (created bool, err error)

	// ApplyReview additively increments today's counters in a single SQL
	// update (no read-modify-write) and returns the resulting entry.
	// Returns ErrLedgerEntryNotFound if the day has no entry yet.
	ApplyReview(
		ctx context.Context,
		userID uuid.UUID,
		date time.Time,
		wasCorrect bool,
		elapsed time.Duration,
		now time.Time,
	) (*domain.DailyLedgerEntry, error)

	// ClaimGoalAchieved sets the daily-goal flag for the given day if it
	// is not already set. Returns true only for the caller that flipped
	// the flag, so concurrent writers cannot both claim the crossing.
	ClaimGoalAchieved(ctx context.Context, userID uuid.UUID, date time.Time) (bool, error)

	// ListRange returns the user's entries with from <= date <= to,
	// ordered by date ascending.
	ListRange(
		ctx context.Context,
		userID uuid.UUID,
		from, to time.Time,
	) ([]*domain.DailyLedgerEntry, error)

	// WithTx returns a new LedgerStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) LedgerStore
}
