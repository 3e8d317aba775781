package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
	"github.com/ali-aktas/HocaLingo-sub002/internal/domain/srs"
	"github.com/ali-aktas/HocaLingo-sub002/internal/events"
	"github.com/ali-aktas/HocaLingo-sub002/internal/platform/logger"
	"github.com/ali-aktas/HocaLingo-sub002/internal/store"
)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	db             *sql.DB
	conceptStore   store.ConceptStore
	selectionStore store.SelectionStore
	progressStore  store.StudyProgressStore
	scheduler      srs.Service
	recorder       Recorder
	emitter        events.Emitter
	logger         *slog.Logger
	timeFunc       func() time.Time
	runTx          func(ctx context.Context, db *sql.DB, fn store.TxFn) error
	locks          keyedMutex
}

// Ensure serviceImpl implements Service interface
var _ Service = (*serviceImpl)(nil)

// NewService creates a new review service with the given dependencies.
// recorder may be nil, in which case grades are not forwarded to the daily
// ledger. Panics if any other dependency is nil.
func NewService(
	db *sql.DB,
	conceptStore store.ConceptStore,
	selectionStore store.SelectionStore,
	progressStore store.StudyProgressStore,
	scheduler srs.Service,
	recorder Recorder,
	emitter events.Emitter,
	log *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if conceptStore == nil {
		panic("conceptStore cannot be nil")
	}
	if selectionStore == nil {
		panic("selectionStore cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if emitter == nil {
		panic("emitter cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		db:             db,
		conceptStore:   conceptStore,
		selectionStore: selectionStore,
		progressStore:  progressStore,
		scheduler:      scheduler,
		recorder:       recorder,
		emitter:        emitter,
		logger:         log.With(slog.String("component", "review_service")),
		timeFunc:       time.Now,
		runTx:          store.RunInTransaction,
	}
}

// SubmitGrade implements Service.SubmitGrade
func (s *serviceImpl) SubmitGrade(
	ctx context.Context,
	userID uuid.UUID,
	conceptID int64,
	direction domain.StudyDirection,
	grade domain.ReviewGrade,
	elapsed time.Duration,
) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	unlock := s.locks.lock(progressKey(userID, conceptID, direction))
	defer unlock()

	now := s.timeFunc()
	var result Result

	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		progressStore := s.progressStore.WithTx(tx)

		current, err := s.loadOrHealProgress(ctx, tx, userID, conceptID, direction, now)
		if err != nil {
			return err
		}

		next, err := s.scheduler.ApplyGrade(current, grade, now)
		if err != nil {
			if errors.Is(err, srs.ErrInvalidGrade) {
				return ErrInvalidGrade
			}
			return err
		}

		if err := progressStore.Update(ctx, next); err != nil {
			return fmt.Errorf("failed to persist graded progress: %w", err)
		}

		result.Progress = next
		result.NewlyMastered = next.Phase == domain.PhaseMastered &&
			current.Phase != domain.PhaseMastered

		// A mastered concept leaves the active deck, mirrored on the
		// selection so deck statistics agree with the scheduler.
		if result.NewlyMastered {
			err := s.selectionStore.WithTx(tx).UpdateStatus(
				ctx, userID, conceptID, domain.SelectionStatusMastered)
			if err != nil {
				return fmt.Errorf("failed to mark selection mastered: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug("grade applied",
		slog.String("user_id", userID.String()),
		slog.Int64("concept_id", conceptID),
		slog.String("direction", string(direction)),
		slog.String("grade", string(grade)),
		slog.String("phase", string(result.Progress.Phase)))

	if result.NewlyMastered {
		s.emitMastered(ctx, result.Progress)
	}

	if s.recorder != nil {
		wasCorrect := grade != domain.ReviewGradeHard
		if err := s.recorder.RecordReview(ctx, userID, wasCorrect, elapsed); err != nil {
			log.Error("failed to record review in daily ledger",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
	}

	return &result, nil
}

// loadOrHealProgress fetches the locked scheduling row for grading. A kept
// concept whose row went missing gets a fresh default row recreated instead
// of surfacing an error to the learner.
func (s *serviceImpl) loadOrHealProgress(
	ctx context.Context,
	tx *sql.Tx,
	userID uuid.UUID,
	conceptID int64,
	direction domain.StudyDirection,
	now time.Time,
) (*domain.StudyProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	progressStore := s.progressStore.WithTx(tx)

	current, err := progressStore.GetForUpdate(ctx, userID, conceptID, direction)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, store.ErrStudyProgressNotFound) {
		return nil, fmt.Errorf("failed to load study progress: %w", err)
	}

	selection, err := s.selectionStore.WithTx(tx).Get(ctx, userID, conceptID)
	if err != nil {
		if errors.Is(err, store.ErrSelectionNotFound) {
			return nil, ErrConceptNotInDeck
		}
		return nil, fmt.Errorf("failed to load selection: %w", err)
	}
	if selection.Status == domain.SelectionStatusHidden {
		return nil, ErrConceptHidden
	}

	fresh, err := domain.NewStudyProgress(userID, conceptID, direction, now)
	if err != nil {
		return nil, err
	}
	if err := progressStore.Create(ctx, fresh); err != nil {
		return nil, fmt.Errorf("failed to recreate study progress: %w", err)
	}

	log.Warn("recreated missing study progress",
		slog.String("user_id", userID.String()),
		slog.Int64("concept_id", conceptID),
		slog.String("direction", string(direction)))

	return fresh, nil
}

// DueConcepts implements Service.DueConcepts
func (s *serviceImpl) DueConcepts(
	ctx context.Context,
	userID uuid.UUID,
	direction domain.StudyDirection,
	limit int,
) ([]*DueConcept, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	due, err := s.progressStore.ListDue(ctx, userID, direction, s.timeFunc(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due progress: %w", err)
	}

	// Oldest overdue first. The store orders by due_at already, but the
	// queue contract belongs to the service; a stable sort keeps the
	// store's relative order on equal due_at values.
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].DueAt.Before(due[j].DueAt)
	})

	result := make([]*DueConcept, 0, len(due))
	for _, progress := range due {
		if progress.Phase == domain.PhaseMastered {
			continue
		}
		concept, err := s.conceptStore.GetByID(ctx, progress.ConceptID)
		if err != nil {
			if errors.Is(err, store.ErrConceptNotFound) {
				// Content packs can retract concepts; skip orphaned rows
				// rather than failing the whole queue.
				log.Warn("due progress references missing concept",
					slog.Int64("concept_id", progress.ConceptID))
				continue
			}
			return nil, fmt.Errorf("failed to load due concept: %w", err)
		}
		result = append(result, &DueConcept{Concept: concept, Progress: progress})
	}

	return result, nil
}

// Postpone implements Service.Postpone
func (s *serviceImpl) Postpone(
	ctx context.Context,
	userID uuid.UUID,
	conceptID int64,
	direction domain.StudyDirection,
	days int,
) (*domain.StudyProgress, error) {
	unlock := s.locks.lock(progressKey(userID, conceptID, direction))
	defer unlock()

	now := s.timeFunc()
	var next *domain.StudyProgress

	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		progressStore := s.progressStore.WithTx(tx)

		current, err := progressStore.GetForUpdate(ctx, userID, conceptID, direction)
		if err != nil {
			if errors.Is(err, store.ErrStudyProgressNotFound) {
				return ErrConceptNotInDeck
			}
			return fmt.Errorf("failed to load study progress: %w", err)
		}

		next, err = s.scheduler.Postpone(current, days, now)
		if err != nil {
			return err
		}

		return progressStore.Update(ctx, next)
	})
	if err != nil {
		return nil, err
	}

	return next, nil
}

// emitMastered publishes the mastered event. Emission is best effort.
func (s *serviceImpl) emitMastered(ctx context.Context, progress *domain.StudyProgress) {
	event, err := events.NewEvent(events.EventConceptMastered, events.ConceptMasteredPayload{
		UserID:       progress.UserID,
		ConceptID:    progress.ConceptID,
		Direction:    string(progress.Direction),
		IntervalDays: progress.IntervalDays,
	}, s.timeFunc())
	if err != nil {
		s.logger.Error("failed to build mastered event", slog.String("error", err.Error()))
		return
	}

	if err := s.emitter.Emit(ctx, event); err != nil {
		s.logger.Error("failed to emit mastered event", slog.String("error", err.Error()))
	}
}

func progressKey(userID uuid.UUID, conceptID int64, direction domain.StudyDirection) string {
	return fmt.Sprintf("%s/%d/%s", userID, conceptID, direction)
}
