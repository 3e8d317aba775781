package srs

import (
	"errors"
	"time"

	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
)

// Common errors
var (
	ErrNilProgress  = errors.New("study progress cannot be nil")
	ErrInvalidGrade = errors.New("invalid review grade")
	ErrInvalidDays  = errors.New("postpone days must be at least 1")
)

// Service defines the interface for scheduling algorithm operations.
type Service interface {
	// ApplyGrade computes new scheduling state based on a review grade.
	ApplyGrade(
		progress *domain.StudyProgress,
		grade domain.ReviewGrade,
		now time.Time,
	) (*domain.StudyProgress, error)

	// Postpone pushes the next due time forward by a specified number of days.
	Postpone(
		progress *domain.StudyProgress,
		days int,
		now time.Time,
	) (*domain.StudyProgress, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// ApplyGrade implements the Service interface for grading reviews.
func (s *defaultService) ApplyGrade(
	progress *domain.StudyProgress,
	grade domain.ReviewGrade,
	now time.Time,
) (*domain.StudyProgress, error) {
	if progress == nil {
		return nil, ErrNilProgress
	}

	if !isValidGrade(grade) {
		return nil, ErrInvalidGrade
	}

	return calculateNextProgress(progress, grade, now, s.params), nil
}

// Postpone implements the Service interface for snoozing a due concept.
func (s *defaultService) Postpone(
	progress *domain.StudyProgress,
	days int,
	now time.Time,
) (*domain.StudyProgress, error) {
	if progress == nil {
		return nil, ErrNilProgress
	}

	if days < 1 {
		return nil, ErrInvalidDays
	}

	next := *progress
	next.DueAt = progress.DueAt.AddDate(0, 0, days)
	next.UpdatedAt = now

	return &next, nil
}

// isValidGrade checks if the given grade is valid.
func isValidGrade(grade domain.ReviewGrade) bool {
	switch grade {
	case domain.ReviewGradeHard,
		domain.ReviewGradeMedium,
		domain.ReviewGradeEasy:
		return true
	default:
		return false
	}
}
