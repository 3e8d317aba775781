package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ali-aktas/HocaLingo-sub002/internal/config"
	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
	"github.com/ali-aktas/HocaLingo-sub002/internal/events"
	"github.com/ali-aktas/HocaLingo-sub002/internal/platform/logger"
	"github.com/ali-aktas/HocaLingo-sub002/internal/store"
)

const dateLayout = "2006-01-02"

// serviceImpl implements the Service interface.
type serviceImpl struct {
	ledgerStore store.LedgerStore
	emitter     events.Emitter
	cfg         config.StudyConfig
	logger      *slog.Logger
	timeFunc    func() time.Time
}

// Ensure serviceImpl implements Service interface
var _ Service = (*serviceImpl)(nil)

// NewService creates a new daily progress service with the given
// dependencies. Panics if any required dependency is nil.
func NewService(
	ledgerStore store.LedgerStore,
	emitter events.Emitter,
	cfg config.StudyConfig,
	log *slog.Logger,
) Service {
	if ledgerStore == nil {
		panic("ledgerStore cannot be nil")
	}
	if emitter == nil {
		panic("emitter cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		ledgerStore: ledgerStore,
		emitter:     emitter,
		cfg:         cfg,
		logger:      log.With(slog.String("component", "progress_service")),
		timeFunc:    time.Now,
	}
}

// RecordAppOpen implements Service.RecordAppOpen
func (s *serviceImpl) RecordAppOpen(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.DailyLedgerEntry, error) {
	return s.openDay(ctx, userID, s.timeFunc())
}

// openDay ensures the ledger entry for now's local day exists and returns
// it. The conditional insert makes concurrent calls converge on one entry.
func (s *serviceImpl) openDay(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*domain.DailyLedgerEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	today := domain.LocalDay(now)

	// The streak continues only when yesterday had an entry. The streak
	// value is fixed at entry creation; later activity never rewrites it.
	streak := 1
	yesterday, err := s.ledgerStore.Get(ctx, userID, today.AddDate(0, 0, -1))
	if err == nil {
		streak = yesterday.StreakCount + 1
	} else if !errors.Is(err, store.ErrLedgerEntryNotFound) {
		return nil, fmt.Errorf("failed to read yesterday's ledger entry: %w", err)
	}

	entry, err := domain.NewDailyLedgerEntry(userID, today, streak, now)
	if err != nil {
		return nil, err
	}

	created, err := s.ledgerStore.Insert(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	if !created {
		// Another call won the race or the day was already open.
		return s.ledgerStore.Get(ctx, userID, today)
	}

	log.Info("day opened",
		slog.String("user_id", userID.String()),
		slog.String("date", today.Format(dateLayout)),
		slog.Int("streak", streak))

	return entry, nil
}

// RecordReview implements Service.RecordReview
func (s *serviceImpl) RecordReview(
	ctx context.Context,
	userID uuid.UUID,
	wasCorrect bool,
	elapsed time.Duration,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := s.timeFunc()
	today := domain.LocalDay(now)

	entry, err := s.ledgerStore.ApplyReview(ctx, userID, today, wasCorrect, elapsed, now)
	if errors.Is(err, store.ErrLedgerEntryNotFound) {
		// First review of a day that was never opened; open it and retry.
		if _, err := s.openDay(ctx, userID, now); err != nil {
			return err
		}
		entry, err = s.ledgerStore.ApplyReview(ctx, userID, today, wasCorrect, elapsed, now)
		if err != nil {
			return fmt.Errorf("failed to apply review to ledger: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to apply review to ledger: %w", err)
	}

	if entry.TotalAnswers >= s.cfg.DailyGoalAnswers && !entry.GoalAchieved {
		// Two reviews can cross the threshold at the same time; the
		// store hands the flag to exactly one of them, so the goal
		// event fires once per day.
		claimed, err := s.ledgerStore.ClaimGoalAchieved(ctx, userID, today)
		if err != nil {
			return fmt.Errorf("failed to claim goal achieved flag: %w", err)
		}

		if claimed {
			log.Info("daily goal completed",
				slog.String("user_id", userID.String()),
				slog.String("date", today.Format(dateLayout)),
				slog.Int("total_answers", entry.TotalAnswers))

			s.emitGoalCompleted(ctx, userID, today, entry.TotalAnswers, now)
		}
	}

	return nil
}

// Summary implements Service.Summary
func (s *serviceImpl) Summary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	now := s.timeFunc()
	today := domain.LocalDay(now)

	entry, err := s.ledgerStore.Get(ctx, userID, today)
	if errors.Is(err, store.ErrLedgerEntryNotFound) {
		entry = nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read today's ledger entry: %w", err)
	}

	weekStart := today.AddDate(0, 0, -6)
	entries, err := s.ledgerStore.ListRange(ctx, userID, weekStart, today)
	if err != nil {
		return nil, fmt.Errorf("failed to read recent ledger entries: %w", err)
	}

	byDate := make(map[string]*domain.DailyLedgerEntry, len(entries))
	for _, e := range entries {
		byDate[e.Date.Format(dateLayout)] = e
	}

	recent := make([]DayActivity, 0, 7)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		key := day.Format(dateLayout)
		activity := DayActivity{Date: key}
		if e, ok := byDate[key]; ok {
			activity.WordsStudied = e.WordsStudied
			activity.CorrectAnswers = e.CorrectAnswers
			activity.TotalAnswers = e.TotalAnswers
			activity.GoalAchieved = e.GoalAchieved
		}
		recent = append(recent, activity)
	}

	summary := &Summary{
		Date:           today.Format(dateLayout),
		GoalTarget:     s.cfg.DailyGoalAnswers,
		RecentActivity: recent,
	}
	if entry != nil {
		summary.WordsStudied = entry.WordsStudied
		summary.CorrectAnswers = entry.CorrectAnswers
		summary.TotalAnswers = entry.TotalAnswers
		summary.StudyTimeMs = entry.StudyTimeMs
		summary.Streak = entry.StreakCount
		summary.GoalAchieved = entry.GoalAchieved
	}

	return summary, nil
}

// MonthlyStats implements Service.MonthlyStats
func (s *serviceImpl) MonthlyStats(
	ctx context.Context,
	userID uuid.UUID,
	year int,
	month time.Month,
) (*MonthlyStats, error) {
	if year < 1 || month < time.January || month > time.December {
		return nil, ErrInvalidMonth
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	daysInMonth := last.Day()

	entries, err := s.ledgerStore.ListRange(ctx, userID, first, last)
	if err != nil {
		return nil, fmt.Errorf("failed to read monthly ledger entries: %w", err)
	}

	// Every ledger entry counts as an active day. Opening the app is
	// enough to create one, so idle-but-opened days count too.
	stats := &MonthlyStats{Year: year, Month: month, ActiveDays: len(entries)}
	for _, e := range entries {
		stats.TotalWordsStudied += e.WordsStudied
		stats.TotalAnswers += e.TotalAnswers
		stats.CorrectAnswers += e.CorrectAnswers
		stats.TotalStudyTimeMs += e.StudyTimeMs
		if e.GoalAchieved {
			stats.GoalsAchieved++
		}
		if e.StreakCount > stats.BestStreak {
			stats.BestStreak = e.StreakCount
		}
	}

	if stats.TotalAnswers > 0 {
		stats.AccuracyPercent = 100 * float64(stats.CorrectAnswers) / float64(stats.TotalAnswers)
	}
	stats.DisciplineScore = (stats.ActiveDays*100 + daysInMonth/2) / daysInMonth

	return stats, nil
}

// emitGoalCompleted publishes the goal event. Emission is best effort.
func (s *serviceImpl) emitGoalCompleted(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
	totalAnswers int,
	now time.Time,
) {
	event, err := events.NewEvent(events.EventDailyGoalCompleted, events.DailyGoalCompletedPayload{
		UserID:       userID,
		Date:         date.Format(dateLayout),
		TotalAnswers: totalAnswers,
	}, now)
	if err != nil {
		s.logger.Error("failed to build goal completed event", slog.String("error", err.Error()))
		return
	}

	if err := s.emitter.Emit(ctx, event); err != nil {
		s.logger.Error("failed to emit goal completed event", slog.String("error", err.Error()))
	}
}
