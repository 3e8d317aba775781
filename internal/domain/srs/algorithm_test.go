package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
)

func TestCalculateNewInterval(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  float64
		ef       float64
		grade    domain.ReviewGrade
		expected float64
	}{
		{
			name:     "Hard grade halves the interval",
			current:  10,
			ef:       2.5,
			grade:    domain.ReviewGradeHard,
			expected: 5, // 10 * 0.5
		},
		{
			name:     "Hard grade never drops below one day",
			current:  1,
			ef:       1.3,
			grade:    domain.ReviewGradeHard,
			expected: 1, // 1 * 0.5 = 0.5 → floored to 1
		},
		{
			name:     "Medium grade grows by damped ease factor",
			current:  10,
			ef:       2.0,
			grade:    domain.ReviewGradeMedium,
			expected: 17, // 10 * 2.0 * 0.85
		},
		{
			name:     "Easy grade grows by boosted ease factor",
			current:  10,
			ef:       2.0,
			grade:    domain.ReviewGradeEasy,
			expected: 26, // 10 * 2.0 * 1.3
		},
		{
			name:     "Fresh concept bootstraps to one day",
			current:  0,
			ef:       2.5,
			grade:    domain.ReviewGradeEasy,
			expected: 1, // 0 * anything → floored to 1
		},
		{
			name:     "Fresh concept bootstraps to one day on medium too",
			current:  0,
			ef:       2.5,
			grade:    domain.ReviewGradeMedium,
			expected: 1,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := calculateNewInterval(tc.current, tc.ef, tc.grade, params)
			if got != tc.expected {
				t.Errorf("calculateNewInterval() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestCalculateNewEaseFactor(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  float64
		grade    domain.ReviewGrade
		expected float64
	}{
		{
			name:     "Hard grade lowers ease factor",
			current:  2.0,
			grade:    domain.ReviewGradeHard,
			expected: 1.8,
		},
		{
			name:     "Hard grade clamps at the minimum",
			current:  1.4,
			grade:    domain.ReviewGradeHard,
			expected: 1.3, // 1.4 - 0.2 = 1.2 → clamped to 1.3
		},
		{
			name:     "Medium grade leaves ease factor unchanged",
			current:  2.0,
			grade:    domain.ReviewGradeMedium,
			expected: 2.0,
		},
		{
			name:     "Easy grade raises ease factor",
			current:  2.0,
			grade:    domain.ReviewGradeEasy,
			expected: 2.1,
		},
		{
			name:     "Easy grade clamps at the maximum",
			current:  2.5,
			grade:    domain.ReviewGradeEasy,
			expected: 2.5, // 2.5 + 0.1 = 2.6 → clamped to 2.5
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := calculateNewEaseFactor(tc.current, tc.grade, params)
			if diff := got - tc.expected; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("calculateNewEaseFactor() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestCalculateNewPhase(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name        string
		phase       domain.Phase
		grade       domain.ReviewGrade
		newInterval float64
		priorCount  int
		expected    domain.Phase
	}{
		{
			name:        "Hard demotes review to learning",
			phase:       domain.PhaseReview,
			grade:       domain.ReviewGradeHard,
			newInterval: 5,
			priorCount:  4,
			expected:    domain.PhaseLearning,
		},
		{
			name:        "Hard keeps learning in learning",
			phase:       domain.PhaseLearning,
			grade:       domain.ReviewGradeHard,
			newInterval: 1,
			priorCount:  1,
			expected:    domain.PhaseLearning,
		},
		{
			name:        "Medium does not promote a first review",
			phase:       domain.PhaseLearning,
			grade:       domain.ReviewGradeMedium,
			newInterval: 1,
			priorCount:  0,
			expected:    domain.PhaseLearning,
		},
		{
			name:        "Medium promotes after a successful review",
			phase:       domain.PhaseLearning,
			grade:       domain.ReviewGradeMedium,
			newInterval: 2.125,
			priorCount:  1,
			expected:    domain.PhaseReview,
		},
		{
			name:        "Easy promotes learning immediately",
			phase:       domain.PhaseLearning,
			grade:       domain.ReviewGradeEasy,
			newInterval: 1,
			priorCount:  0,
			expected:    domain.PhaseReview,
		},
		{
			name:        "Easy keeps review in review below the threshold",
			phase:       domain.PhaseReview,
			grade:       domain.ReviewGradeEasy,
			newInterval: 10,
			priorCount:  3,
			expected:    domain.PhaseReview,
		},
		{
			name:        "Crossing the mastery threshold promotes to mastered",
			phase:       domain.PhaseReview,
			grade:       domain.ReviewGradeEasy,
			newInterval: 21,
			priorCount:  3,
			expected:    domain.PhaseMastered,
		},
		{
			name:        "Medium can also cross the mastery threshold",
			phase:       domain.PhaseReview,
			grade:       domain.ReviewGradeMedium,
			newInterval: 25,
			priorCount:  5,
			expected:    domain.PhaseMastered,
		},
		{
			name:        "Learning never masters directly on medium",
			phase:       domain.PhaseLearning,
			grade:       domain.ReviewGradeMedium,
			newInterval: 30,
			priorCount:  0,
			expected:    domain.PhaseLearning,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := calculateNewPhase(tc.phase, tc.grade, tc.newInterval, tc.priorCount, params)
			if got != tc.expected {
				t.Errorf("calculateNewPhase() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestCalculateDueAt(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		interval float64
		expected time.Time
	}{
		{
			name:     "Whole day interval",
			interval: 3,
			expected: now.AddDate(0, 0, 3),
		},
		{
			name:     "Fractional interval rounds up",
			interval: 3.25,
			expected: now.AddDate(0, 0, 4),
		},
		{
			name:     "One day interval",
			interval: 1,
			expected: now.AddDate(0, 0, 1),
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := calculateDueAt(tc.interval, now)
			if !got.Equal(tc.expected) {
				t.Errorf("calculateDueAt() = %v, want %v", got, tc.expected)
			}
		})
	}
}

// newTestProgress builds fresh scheduling state the way a keep decision does.
func newTestProgress(t *testing.T) *domain.StudyProgress {
	t.Helper()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	progress, err := domain.NewStudyProgress(uuid.New(), 42, domain.DirectionFrontToBack, now)
	if err != nil {
		t.Fatalf("NewStudyProgress() error = %v", err)
	}
	return progress
}

func TestEasyGradesGrowMonotonically(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	progress := newTestProgress(t)
	prev := progress.IntervalDays
	for i := 0; i < 3; i++ {
		progress = calculateNextProgress(progress, domain.ReviewGradeEasy, now, params)
		if progress.IntervalDays < prev {
			t.Fatalf("interval decreased on easy grade %d: %v < %v", i+1, progress.IntervalDays, prev)
		}
		prev = progress.IntervalDays
		now = now.AddDate(0, 0, 1)
	}
}

func TestHardGradesRespectFloors(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	progress := newTestProgress(t)
	for i := 0; i < 3; i++ {
		progress = calculateNextProgress(progress, domain.ReviewGradeHard, now, params)
		if progress.IntervalDays < 1 {
			t.Fatalf("interval fell below one day on hard grade %d: %v", i+1, progress.IntervalDays)
		}
		if progress.EaseFactor < params.MinEaseFactor {
			t.Fatalf("ease factor fell below minimum on hard grade %d: %v", i+1, progress.EaseFactor)
		}
	}
	if progress.Lapses != 3 {
		t.Errorf("Lapses = %d, want 3", progress.Lapses)
	}
}

func TestFourEasyGradesReachMastery(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	progress := newTestProgress(t)
	for i := 0; i < 3; i++ {
		progress = calculateNextProgress(progress, domain.ReviewGradeEasy, now, params)
		if progress.Phase == domain.PhaseMastered {
			t.Fatalf("mastered too early, on grade %d (interval %v)", i+1, progress.IntervalDays)
		}
		now = progress.DueAt
	}

	progress = calculateNextProgress(progress, domain.ReviewGradeEasy, now, params)
	if progress.Phase != domain.PhaseMastered {
		t.Fatalf("Phase = %v after 4 easy grades (interval %v), want mastered",
			progress.Phase, progress.IntervalDays)
	}
	if progress.IntervalDays < params.MasteryThresholdDays {
		t.Errorf("IntervalDays = %v, want >= %v", progress.IntervalDays, params.MasteryThresholdDays)
	}
	if progress.ReviewCount != 4 {
		t.Errorf("ReviewCount = %d, want 4", progress.ReviewCount)
	}
}

func TestCalculateNextProgressDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	progress := newTestProgress(t)
	original := *progress

	_ = calculateNextProgress(progress, domain.ReviewGradeEasy, now, params)

	if *progress != original {
		t.Errorf("input progress was mutated: %+v != %+v", *progress, original)
	}
}
