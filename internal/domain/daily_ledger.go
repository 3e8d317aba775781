package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for DailyLedgerEntry
var (
	ErrLedgerUserIDEmpty    = errors.New("ledger entry user ID cannot be empty")
	ErrLedgerDateZero       = errors.New("ledger entry date cannot be zero")
	ErrLedgerNegativeCount  = errors.New("ledger entry counters cannot be negative")
	ErrLedgerInvalidStreak  = errors.New("ledger entry streak count must be at least 1")
	ErrLedgerAnswerMismatch = errors.New("ledger entry correct answers cannot exceed total answers")
)

// DailyLedgerEntry records a user's study activity for one calendar day.
// At most one entry exists per (user, date); entries are created lazily on
// the first activity of a new day, mutated additively during the day, and
// never deleted. The streak count is fixed at creation time: it extends
// yesterday's streak by one when a yesterday entry exists, otherwise it
// resets to 1.
type DailyLedgerEntry struct {
	UserID         uuid.UUID `json:"user_id"`
	Date           time.Time `json:"date"` // midnight, local day boundary
	WordsStudied   int       `json:"words_studied"`
	CorrectAnswers int       `json:"correct_answers"`
	TotalAnswers   int       `json:"total_answers"`
	StudyTimeMs    int64     `json:"study_time_ms"`
	StreakCount    int       `json:"streak_count"`
	GoalAchieved   bool      `json:"goal_achieved"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewDailyLedgerEntry creates an empty ledger entry for the given day with
// the given streak count. Returns an error if validation fails.
func NewDailyLedgerEntry(
	userID uuid.UUID,
	date time.Time,
	streakCount int,
	now time.Time,
) (*DailyLedgerEntry, error) {
	entry := &DailyLedgerEntry{
		UserID:      userID,
		Date:        date,
		StreakCount: streakCount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the DailyLedgerEntry has valid data.
// Returns an error if any field fails validation.
func (e *DailyLedgerEntry) Validate() error {
	if e.UserID == uuid.Nil {
		return ErrLedgerUserIDEmpty
	}

	if e.Date.IsZero() {
		return ErrLedgerDateZero
	}

	if e.WordsStudied < 0 || e.CorrectAnswers < 0 || e.TotalAnswers < 0 || e.StudyTimeMs < 0 {
		return ErrLedgerNegativeCount
	}

	if e.CorrectAnswers > e.TotalAnswers {
		return ErrLedgerAnswerMismatch
	}

	if e.StreakCount < 1 {
		return ErrLedgerInvalidStreak
	}

	return nil
}

// LocalDay truncates t to midnight in t's location. All ledger bookkeeping
// is keyed by this value, so "today" follows the clock the caller supplies.
func LocalDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
