package progress

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
)

// Service-specific errors
var (
	// ErrInvalidMonth indicates the requested statistics month is invalid.
	ErrInvalidMonth = errors.New("invalid statistics month")
)

// DayActivity is a single day's activity, shaped for chart rendering.
// Days without a ledger entry appear with zero counts.
type DayActivity struct {
	Date           string `json:"date"` // YYYY-MM-DD, local day
	WordsStudied   int    `json:"words_studied"`
	CorrectAnswers int    `json:"correct_answers"`
	TotalAnswers   int    `json:"total_answers"`
	GoalAchieved   bool   `json:"goal_achieved"`
}

// Summary is the home-screen snapshot of today's progress.
type Summary struct {
	Date           string        `json:"date"` // YYYY-MM-DD, local day
	WordsStudied   int           `json:"words_studied"`
	CorrectAnswers int           `json:"correct_answers"`
	TotalAnswers   int           `json:"total_answers"`
	StudyTimeMs    int64         `json:"study_time_ms"`
	Streak         int           `json:"streak"`
	GoalTarget     int           `json:"goal_target"`
	GoalAchieved   bool          `json:"goal_achieved"`
	RecentActivity []DayActivity `json:"recent_activity"` // last 7 days, oldest first
}

// MonthlyStats aggregates a calendar month of ledger entries.
type MonthlyStats struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`

	// ActiveDays counts days with a ledger entry; opening the app
	// is enough to make a day active.
	ActiveDays int `json:"active_days"`

	TotalWordsStudied int   `json:"total_words_studied"`
	TotalAnswers      int   `json:"total_answers"`
	CorrectAnswers    int   `json:"correct_answers"`
	TotalStudyTimeMs  int64 `json:"total_study_time_ms"`

	// AccuracyPercent is correct over total answers, 0 when nothing was
	// answered.
	AccuracyPercent float64 `json:"accuracy_percent"`

	// GoalsAchieved counts days whose daily goal was reached.
	GoalsAchieved int `json:"goals_achieved"`

	// BestStreak is the highest streak count seen within the month.
	BestStreak int `json:"best_streak"`

	// DisciplineScore is the share of the month's days with any activity,
	// as a 0-100 score.
	DisciplineScore int `json:"discipline_score"`
}

// Service maintains the per-day activity ledger: streaks, daily goals, and
// the aggregates the statistics screens read.
type Service interface {
	// RecordAppOpen performs the idempotent day rollover: it ensures today's
	// ledger entry exists, computing the streak from yesterday's entry when
	// a new day starts. Calling it again on the same day returns the
	// existing entry unchanged, so every app launch can call it safely.
	RecordAppOpen(ctx context.Context, userID uuid.UUID) (*domain.DailyLedgerEntry, error)

	// RecordReview folds one graded answer into today's ledger entry,
	// creating the entry first if the day has not been opened yet. When the
	// answer crosses the daily goal threshold the goal flag is set once.
	RecordReview(
		ctx context.Context,
		userID uuid.UUID,
		wasCorrect bool,
		elapsed time.Duration,
	) error

	// Summary returns today's progress snapshot including the last seven
	// days of activity.
	Summary(ctx context.Context, userID uuid.UUID) (*Summary, error)

	// MonthlyStats aggregates the given calendar month.
	MonthlyStats(
		ctx context.Context,
		userID uuid.UUID,
		year int,
		month time.Month,
	) (*MonthlyStats, error)
}
