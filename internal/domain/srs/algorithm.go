package srs

import (
	"math"
	"time"

	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
)

// calculateNewEaseFactor determines the new ease factor based on the review grade.
//
// The ease factor represents how quickly a concept's review intervals grow:
// higher values mean the concept is easier for this learner. Hard grades
// lower it, easy grades raise it, medium grades leave it untouched. The
// result is always clamped to [params.MinEaseFactor, params.MaxEaseFactor]
// so a run of one-sided grades cannot push a concept into degenerate
// scheduling.
func calculateNewEaseFactor(
	currentEF float64,
	grade domain.ReviewGrade,
	params *Params,
) float64 {
	newEF := currentEF + params.EaseAdjustment[grade]

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}
	if newEF > params.MaxEaseFactor {
		newEF = params.MaxEaseFactor
	}

	return newEF
}

// calculateNewInterval determines the next review interval in days.
//
// The growth rule per grade:
//   - Hard: the interval halves (params.HardIntervalFactor)
//   - Medium: the interval grows by the ease factor damped by
//     params.MediumEaseDamping
//   - Easy: the interval grows by the ease factor boosted by
//     params.EasyIntervalBonus
//
// The ease factor used here is the concept's ease before this grade's
// adjustment is applied; the adjustment only affects future reviews.
// Every result is floored at params.MinIntervalDays, which both bootstraps
// a fresh concept (interval 0) to a one-day interval and prevents hard
// grades from collapsing the interval to zero.
func calculateNewInterval(
	currentInterval float64,
	easeFactor float64,
	grade domain.ReviewGrade,
	params *Params,
) float64 {
	var next float64
	switch grade {
	case domain.ReviewGradeHard:
		next = currentInterval * params.HardIntervalFactor
	case domain.ReviewGradeMedium:
		next = currentInterval * easeFactor * params.MediumEaseDamping
	case domain.ReviewGradeEasy:
		next = currentInterval * easeFactor * params.EasyIntervalBonus
	}

	if next < params.MinIntervalDays {
		next = params.MinIntervalDays
	}

	return next
}

// calculateNewPhase determines the concept's next lifecycle phase.
//
// Transitions:
//   - Hard demotes review back to learning.
//   - Medium promotes learning to review once the new interval has reached
//     a full day and the concept has at least one earlier review behind it.
//   - Easy promotes learning to review unconditionally.
//   - Any concept sitting in the review phase whose new interval has crossed
//     params.MasteryThresholdDays is promoted to mastered.
//
// priorReviewCount is the review count before the current grade is recorded.
func calculateNewPhase(
	currentPhase domain.Phase,
	grade domain.ReviewGrade,
	newInterval float64,
	priorReviewCount int,
	params *Params,
) domain.Phase {
	phase := currentPhase

	switch grade {
	case domain.ReviewGradeHard:
		if phase == domain.PhaseReview {
			phase = domain.PhaseLearning
		}
	case domain.ReviewGradeMedium:
		if phase == domain.PhaseLearning && newInterval >= 1 && priorReviewCount >= 1 {
			phase = domain.PhaseReview
		}
	case domain.ReviewGradeEasy:
		if phase == domain.PhaseLearning {
			phase = domain.PhaseReview
		}
	}

	if phase == domain.PhaseReview && newInterval >= params.MasteryThresholdDays {
		phase = domain.PhaseMastered
	}

	return phase
}

// calculateDueAt determines when the concept next becomes due.
// Fractional intervals round up to whole days, so a concept is never due
// earlier than its computed interval implies.
func calculateDueAt(interval float64, now time.Time) time.Time {
	return now.AddDate(0, 0, int(math.Ceil(interval)))
}

// calculateNextProgress creates a new StudyProgress with updated scheduling
// state for the given grade. It follows the immutable update pattern: the
// input is never modified, a fresh copy carries the new state. This keeps
// the algorithm a pure function of (progress, grade, now, params), which is
// what makes the scheduler's behavior exhaustively testable.
func calculateNextProgress(
	progress *domain.StudyProgress,
	grade domain.ReviewGrade,
	now time.Time,
	params *Params,
) *domain.StudyProgress {
	next := &domain.StudyProgress{
		UserID:       progress.UserID,
		ConceptID:    progress.ConceptID,
		Direction:    progress.Direction,
		Phase:        progress.Phase,
		IntervalDays: progress.IntervalDays,
		EaseFactor:   progress.EaseFactor,
		DueAt:        progress.DueAt,
		Lapses:       progress.Lapses,
		ReviewCount:  progress.ReviewCount,
		CreatedAt:    progress.CreatedAt,
		UpdatedAt:    progress.UpdatedAt,
	}

	if grade == domain.ReviewGradeHard {
		next.Lapses++
	}

	next.IntervalDays = calculateNewInterval(
		progress.IntervalDays,
		progress.EaseFactor,
		grade,
		params,
	)
	next.EaseFactor = calculateNewEaseFactor(progress.EaseFactor, grade, params)
	next.Phase = calculateNewPhase(
		progress.Phase,
		grade,
		next.IntervalDays,
		progress.ReviewCount,
		params,
	)

	next.ReviewCount++
	next.DueAt = calculateDueAt(next.IntervalDays, now)
	next.UpdatedAt = now

	return next
}
