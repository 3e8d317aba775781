package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewDailyLedgerEntry(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Date(2024, 6, 10, 14, 30, 0, 0, time.Local)
	day := LocalDay(now)

	entry, err := NewDailyLedgerEntry(userID, day, 3, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if entry.StreakCount != 3 {
		t.Errorf("Expected streak 3, got %d", entry.StreakCount)
	}
	if entry.WordsStudied != 0 || entry.TotalAnswers != 0 || entry.CorrectAnswers != 0 {
		t.Error("Expected a fresh entry to have zero counters")
	}
	if entry.GoalAchieved {
		t.Error("Expected a fresh entry to have the goal unachieved")
	}
}

func TestDailyLedgerEntryValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(e *DailyLedgerEntry)
		wantErr error
	}{
		{
			name:    "nil user ID",
			mutate:  func(e *DailyLedgerEntry) { e.UserID = uuid.Nil },
			wantErr: ErrLedgerUserIDEmpty,
		},
		{
			name:    "zero date",
			mutate:  func(e *DailyLedgerEntry) { e.Date = time.Time{} },
			wantErr: ErrLedgerDateZero,
		},
		{
			name:    "negative words studied",
			mutate:  func(e *DailyLedgerEntry) { e.WordsStudied = -1 },
			wantErr: ErrLedgerNegativeCount,
		},
		{
			name:    "negative study time",
			mutate:  func(e *DailyLedgerEntry) { e.StudyTimeMs = -1 },
			wantErr: ErrLedgerNegativeCount,
		},
		{
			name: "correct answers exceed total",
			mutate: func(e *DailyLedgerEntry) {
				e.CorrectAnswers = 5
				e.TotalAnswers = 4
			},
			wantErr: ErrLedgerAnswerMismatch,
		},
		{
			name:    "zero streak",
			mutate:  func(e *DailyLedgerEntry) { e.StreakCount = 0 },
			wantErr: ErrLedgerInvalidStreak,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			now := time.Now()
			entry, err := NewDailyLedgerEntry(uuid.New(), LocalDay(now), 1, now)
			if err != nil {
				t.Fatalf("Expected no error creating entry, got %v", err)
			}
			tc.mutate(entry)

			err = entry.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLocalDay(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		t.Fatalf("Failed to load location: %v", err)
	}

	late := time.Date(2024, 6, 10, 23, 59, 59, 0, loc)
	day := LocalDay(late)

	if day.Hour() != 0 || day.Minute() != 0 || day.Second() != 0 {
		t.Errorf("Expected midnight, got %v", day)
	}
	if day.Day() != 10 || day.Location() != loc {
		t.Errorf("Expected June 10 in %v, got %v", loc, day)
	}

	// A minute past midnight lands on the next day.
	next := LocalDay(day.Add(24*time.Hour + time.Minute))
	if next.Day() != 11 {
		t.Errorf("Expected June 11, got %v", next)
	}
}
