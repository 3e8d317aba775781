package triage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
)

// Service-specific errors
var (
	// ErrPackageNotFound indicates the requested word package does not exist.
	ErrPackageNotFound = errors.New("word package not found")

	// ErrNoActiveSession indicates the user has no triage session loaded.
	ErrNoActiveSession = errors.New("no active triage session")

	// ErrNotQueueHead indicates the decided concept is not the current head
	// of the user's triage queue. Decisions are only accepted in queue order.
	ErrNotQueueHead = errors.New("concept is not at the head of the triage queue")

	// ErrConceptAlreadyDecided indicates a selection already exists for the
	// concept, usually because another device decided it first.
	ErrConceptAlreadyDecided = errors.New("concept has already been decided")

	// ErrQuotaExceeded indicates the user has reached their daily keep quota.
	// Discard decisions are never subject to the quota.
	ErrQuotaExceeded = errors.New("daily selection quota exceeded")

	// ErrEmptyDeck indicates the user tried to finish triage without keeping
	// a single concept, which would leave them nothing to study.
	ErrEmptyDeck = errors.New("deck is empty, keep at least one concept")
)

// State is a snapshot of a user's triage session, shaped for presentation.
type State struct {
	// PackageID is the package the session iterates over.
	PackageID string `json:"package_id"`

	// Current is the concept awaiting a decision, nil when the queue is done.
	Current *domain.Concept `json:"current,omitempty"`

	// Remaining is the number of undecided concepts left, Current included.
	Remaining int `json:"remaining"`

	// Kept and Discarded count this session's decisions.
	Kept      int `json:"kept"`
	Discarded int `json:"discarded"`

	// QuotaUsed and QuotaLimit describe today's keep quota. QuotaUsed counts
	// all of today's keeps, not just this session's.
	QuotaUsed  int `json:"quota_used"`
	QuotaLimit int `json:"quota_limit"`

	// UndoDepth is the number of decisions currently reversible.
	UndoDepth int `json:"undo_depth"`

	// Completed is true once every concept in the package has been decided.
	Completed bool `json:"completed"`
}

// Service orchestrates the keep/discard triage flow over a word package:
// an ordered queue of undecided concepts, a bounded undo history, and a
// per-day quota on keep decisions.
type Service interface {
	// LoadQueue starts (or restarts) a triage session over the given package.
	// The queue contains the package's concepts the user has not yet decided,
	// in package order. Returns ErrPackageNotFound for an unknown package.
	LoadQueue(ctx context.Context, userID uuid.UUID, packageID string) (*State, error)

	// Decide records a keep or discard decision for the concept at the head
	// of the queue. A keep creates the selection and initial scheduling state
	// in one transaction and consumes one unit of today's quota; a discard
	// only records the selection. Returns ErrNotQueueHead if conceptID is not
	// the queue head, ErrQuotaExceeded when a keep would pass the daily
	// limit, and ErrNoActiveSession when no session is loaded.
	Decide(
		ctx context.Context,
		userID uuid.UUID,
		conceptID int64,
		outcome domain.TriageOutcome,
	) (*State, error)

	// Undo reverses the most recent decision still in the undo history,
	// deleting the selection and any scheduling state it created and putting
	// the concept back at the head of the queue. An empty history is a
	// no-op: the current state is returned unchanged, and callers disable
	// the action by checking UndoDepth.
	Undo(ctx context.Context, userID uuid.UUID) (*State, error)

	// State returns the current session snapshot without modifying anything.
	// Returns ErrNoActiveSession when no session is loaded.
	State(ctx context.Context, userID uuid.UUID) (*State, error)

	// Finish discards the user's in-memory session. Recorded decisions are
	// unaffected; only the queue position and undo history are dropped.
	// Returns ErrEmptyDeck when the user has not kept a single concept in
	// the session's package, so they are not left with nothing to study.
	Finish(ctx context.Context, userID uuid.UUID) error
}
