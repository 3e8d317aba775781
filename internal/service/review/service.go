package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
)

// Service-specific errors
var (
	// ErrConceptNotInDeck indicates the user never kept the concept, so there
	// is nothing to grade.
	ErrConceptNotInDeck = errors.New("concept is not in the user's deck")

	// ErrConceptHidden indicates the concept was discarded during triage.
	ErrConceptHidden = errors.New("concept was discarded during triage")

	// ErrInvalidGrade indicates the submitted grade is not a known value.
	ErrInvalidGrade = errors.New("invalid review grade")
)

// Result describes the outcome of grading one concept.
type Result struct {
	// Progress is the scheduling state after the grade was applied.
	Progress *domain.StudyProgress `json:"progress"`

	// NewlyMastered is true when this grade pushed the concept into the
	// mastered phase.
	NewlyMastered bool `json:"newly_mastered"`
}

// DueConcept pairs a due concept with its scheduling state, shaped for the
// study screen.
type DueConcept struct {
	Concept  *domain.Concept       `json:"concept"`
	Progress *domain.StudyProgress `json:"progress"`
}

// Recorder receives a notification for every applied grade. The daily
// progress aggregator implements it; grading never fails because recording
// did.
type Recorder interface {
	RecordReview(ctx context.Context, userID uuid.UUID, wasCorrect bool, elapsed time.Duration) error
}

// Service applies spaced repetition grades and serves the due-review queue.
type Service interface {
	// SubmitGrade applies a hard/medium/easy grade to the concept's
	// scheduling state for the given direction and persists the result.
	// elapsed is how long the learner spent on the card and flows into the
	// daily ledger. Returns ErrConceptNotInDeck if the user never kept the
	// concept and ErrConceptHidden if they discarded it.
	SubmitGrade(
		ctx context.Context,
		userID uuid.UUID,
		conceptID int64,
		direction domain.StudyDirection,
		grade domain.ReviewGrade,
		elapsed time.Duration,
	) (*Result, error)

	// DueConcepts returns the concepts due for review in the given
	// direction, oldest due first. A limit of 0 means no limit.
	DueConcepts(
		ctx context.Context,
		userID uuid.UUID,
		direction domain.StudyDirection,
		limit int,
	) ([]*DueConcept, error)

	// Postpone pushes the concept's next due date the given number of days
	// into the future without touching ease or phase.
	Postpone(
		ctx context.Context,
		userID uuid.UUID,
		conceptID int64,
		direction domain.StudyDirection,
		days int,
	) (*domain.StudyProgress, error)
}
