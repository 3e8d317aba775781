package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewGrade represents the learner's self-assessed recall difficulty for a
// single review.
type ReviewGrade string

// Possible review grade values
const (
	ReviewGradeHard   ReviewGrade = "hard"
	ReviewGradeMedium ReviewGrade = "medium"
	ReviewGradeEasy   ReviewGrade = "easy"
)

// Phase represents a concept's position in the spaced-repetition lifecycle.
type Phase string

// Possible phase values
const (
	PhaseLearning Phase = "learning"
	PhaseReview   Phase = "review"
	PhaseMastered Phase = "mastered"
)

// StudyDirection identifies which side of the word pair is shown as the prompt.
type StudyDirection string

// Possible study directions
const (
	DirectionFrontToBack StudyDirection = "front_to_back"
	DirectionBackToFront StudyDirection = "back_to_front"
)

// DefaultEaseFactor is the ease factor assigned to newly kept concepts.
const DefaultEaseFactor = 2.5

// Common validation errors for StudyProgress
var (
	ErrProgressUserIDEmpty      = errors.New("study progress user ID cannot be empty")
	ErrProgressConceptIDInvalid = errors.New("study progress concept ID must be a positive integer")
	ErrInvalidDirection         = errors.New("invalid study direction")
	ErrInvalidPhase             = errors.New("invalid phase")
	ErrNegativeInterval         = errors.New("interval days must be greater than or equal to 0")
	ErrEaseFactorTooLow         = errors.New("ease factor must be greater than 1.0")
	ErrNegativeLapses           = errors.New("lapse count must be greater than or equal to 0")
	ErrInvalidReviewGrade       = errors.New("invalid review grade")
)

// StudyProgress tracks a user's spaced-repetition scheduling state for a
// single concept in a single study direction. It is created when the concept
// is kept during triage and mutated exclusively by the scheduler on each
// graded review.
type StudyProgress struct {
	UserID       uuid.UUID      `json:"user_id"`
	ConceptID    int64          `json:"concept_id"`
	Direction    StudyDirection `json:"direction"`
	Phase        Phase          `json:"phase"`
	IntervalDays float64        `json:"interval_days"`
	EaseFactor   float64        `json:"ease_factor"`
	DueAt        time.Time      `json:"due_at"`
	Lapses       int            `json:"lapses"`
	ReviewCount  int            `json:"review_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewStudyProgress creates scheduling state for a freshly kept concept.
// The concept starts in the learning phase with a zero interval and the
// default ease factor, due immediately.
func NewStudyProgress(
	userID uuid.UUID,
	conceptID int64,
	direction StudyDirection,
	now time.Time,
) (*StudyProgress, error) {
	progress := &StudyProgress{
		UserID:       userID,
		ConceptID:    conceptID,
		Direction:    direction,
		Phase:        PhaseLearning,
		IntervalDays: 0,
		EaseFactor:   DefaultEaseFactor,
		DueAt:        now,
		Lapses:       0,
		ReviewCount:  0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks if the StudyProgress has valid data.
// Returns an error if any field fails validation.
func (p *StudyProgress) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrProgressUserIDEmpty
	}

	if p.ConceptID <= 0 {
		return ErrProgressConceptIDInvalid
	}

	switch p.Direction {
	case DirectionFrontToBack, DirectionBackToFront:
	default:
		return ErrInvalidDirection
	}

	switch p.Phase {
	case PhaseLearning, PhaseReview, PhaseMastered:
	default:
		return ErrInvalidPhase
	}

	if p.IntervalDays < 0 {
		return ErrNegativeInterval
	}

	if p.EaseFactor <= 1.0 {
		return ErrEaseFactorTooLow
	}

	if p.Lapses < 0 {
		return ErrNegativeLapses
	}

	return nil
}

// Note: scheduling transitions are not methods on StudyProgress.
// Use srs.Service.ApplyGrade and srs.Service.Postpone, which follow
// immutability principles by returning new instances rather than modifying
// existing ones.
