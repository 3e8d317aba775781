package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewStudyProgress(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Now()

	progress, err := NewStudyProgress(userID, 11, DirectionFrontToBack, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if progress.Phase != PhaseLearning {
		t.Errorf("Expected phase %q, got %q", PhaseLearning, progress.Phase)
	}
	if progress.IntervalDays != 0 {
		t.Errorf("Expected zero interval, got %v", progress.IntervalDays)
	}
	if progress.EaseFactor != DefaultEaseFactor {
		t.Errorf("Expected ease factor %v, got %v", DefaultEaseFactor, progress.EaseFactor)
	}
	if !progress.DueAt.Equal(now) {
		t.Errorf("Expected due immediately, got %v", progress.DueAt)
	}
	if progress.Lapses != 0 || progress.ReviewCount != 0 {
		t.Errorf("Expected zero counters, got lapses=%d reviews=%d",
			progress.Lapses, progress.ReviewCount)
	}
}

func TestNewStudyProgressRejectsBadInput(t *testing.T) {
	t.Parallel()

	now := time.Now()

	if _, err := NewStudyProgress(uuid.Nil, 11, DirectionFrontToBack, now); !errors.Is(
		err, ErrProgressUserIDEmpty) {
		t.Errorf("Expected error %v, got %v", ErrProgressUserIDEmpty, err)
	}

	if _, err := NewStudyProgress(uuid.New(), 0, DirectionFrontToBack, now); !errors.Is(
		err, ErrProgressConceptIDInvalid) {
		t.Errorf("Expected error %v, got %v", ErrProgressConceptIDInvalid, err)
	}

	if _, err := NewStudyProgress(uuid.New(), 11, "sideways", now); !errors.Is(
		err, ErrInvalidDirection) {
		t.Errorf("Expected error %v, got %v", ErrInvalidDirection, err)
	}
}

func TestStudyProgressValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(p *StudyProgress)
		wantErr error
	}{
		{
			name:    "unknown phase",
			mutate:  func(p *StudyProgress) { p.Phase = "graduated" },
			wantErr: ErrInvalidPhase,
		},
		{
			name:    "negative interval",
			mutate:  func(p *StudyProgress) { p.IntervalDays = -1 },
			wantErr: ErrNegativeInterval,
		},
		{
			name:    "ease factor at lower bound",
			mutate:  func(p *StudyProgress) { p.EaseFactor = 1.0 },
			wantErr: ErrEaseFactorTooLow,
		},
		{
			name:    "negative lapses",
			mutate:  func(p *StudyProgress) { p.Lapses = -1 },
			wantErr: ErrNegativeLapses,
		},
		{
			name:    "mastered phase is valid",
			mutate:  func(p *StudyProgress) { p.Phase = PhaseMastered },
			wantErr: nil,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			progress, err := NewStudyProgress(uuid.New(), 11, DirectionBackToFront, time.Now())
			if err != nil {
				t.Fatalf("Expected no error creating progress, got %v", err)
			}
			tc.mutate(progress)

			err = progress.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}
