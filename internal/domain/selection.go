package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Selection-specific validation errors
var (
	// ErrSelectionUserIDEmpty is returned when a selection's user ID is empty or nil.
	ErrSelectionUserIDEmpty = errors.New("selection user ID cannot be empty")

	// ErrSelectionConceptIDInvalid is returned when a selection's concept ID is not positive.
	ErrSelectionConceptIDInvalid = errors.New("selection concept ID must be a positive integer")

	// ErrSelectionPackageEmpty is returned when a selection's package ID is empty.
	ErrSelectionPackageEmpty = errors.New("selection package ID cannot be empty")

	// ErrInvalidSelectionStatus is returned when a selection status is not a known value.
	ErrInvalidSelectionStatus = errors.New("invalid selection status")

	// ErrInvalidTriageOutcome is returned when a triage outcome is not a known value.
	ErrInvalidTriageOutcome = errors.New("invalid triage outcome")
)

// SelectionStatus represents the triage decision recorded for a concept.
// MASTERED is written only by the scheduler when a concept's review interval
// crosses the mastery threshold; triage never produces it directly.
type SelectionStatus string

// Possible selection status values
const (
	SelectionStatusSelected SelectionStatus = "selected"
	SelectionStatusHidden   SelectionStatus = "hidden"
	SelectionStatusMastered SelectionStatus = "mastered"
)

// TriageOutcome represents the user's keep/discard decision on a concept
// presented during triage.
type TriageOutcome string

// Possible triage outcomes
const (
	TriageOutcomeKeep    TriageOutcome = "keep"
	TriageOutcomeDiscard TriageOutcome = "discard"
)

// Status maps a triage outcome to the selection status it records.
// Returns an error for unknown outcomes.
func (o TriageOutcome) Status() (SelectionStatus, error) {
	switch o {
	case TriageOutcomeKeep:
		return SelectionStatusSelected, nil
	case TriageOutcomeDiscard:
		return SelectionStatusHidden, nil
	default:
		return "", ErrInvalidTriageOutcome
	}
}

// Selection records a user's triage decision for a single concept.
// A concept with no Selection row is undecided and eligible for triage.
// At most one Selection exists per (user, concept) pair.
type Selection struct {
	UserID    uuid.UUID       `json:"user_id"`
	ConceptID int64           `json:"concept_id"`
	PackageID string          `json:"package_id"`
	Status    SelectionStatus `json:"status"`
	DecidedAt time.Time       `json:"decided_at"`
}

// NewSelection creates a Selection recording the given triage decision at the
// given time. Returns an error if validation fails.
func NewSelection(
	userID uuid.UUID,
	conceptID int64,
	packageID string,
	status SelectionStatus,
	decidedAt time.Time,
) (*Selection, error) {
	sel := &Selection{
		UserID:    userID,
		ConceptID: conceptID,
		PackageID: packageID,
		Status:    status,
		DecidedAt: decidedAt,
	}

	if err := sel.Validate(); err != nil {
		return nil, err
	}

	return sel, nil
}

// Validate checks if the Selection has valid data.
// Returns an error if any field fails validation.
func (s *Selection) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrSelectionUserIDEmpty
	}

	if s.ConceptID <= 0 {
		return ErrSelectionConceptIDInvalid
	}

	if s.PackageID == "" {
		return ErrSelectionPackageEmpty
	}

	switch s.Status {
	case SelectionStatusSelected, SelectionStatusHidden, SelectionStatusMastered:
		return nil
	default:
		return ErrInvalidSelectionStatus
	}
}
