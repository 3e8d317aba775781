package triage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ali-aktas/HocaLingo-sub002/internal/config"
	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
	"github.com/ali-aktas/HocaLingo-sub002/internal/events"
	"github.com/ali-aktas/HocaLingo-sub002/internal/platform/logger"
	"github.com/ali-aktas/HocaLingo-sub002/internal/store"
)

// serviceImpl implements the Service interface. Sessions live in memory,
// keyed by user; every recorded decision is durable in the database, so a
// lost session costs only the queue position and undo history.
type serviceImpl struct {
	db             *sql.DB
	conceptStore   store.ConceptStore
	selectionStore store.SelectionStore
	progressStore  store.StudyProgressStore
	userStore      store.UserStore
	emitter        events.Emitter
	cfg            config.StudyConfig
	logger         *slog.Logger
	timeFunc       func() time.Time
	runTx          func(ctx context.Context, db *sql.DB, fn store.TxFn) error

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

// Ensure serviceImpl implements Service interface
var _ Service = (*serviceImpl)(nil)

// NewService creates a new triage service with the given dependencies.
// Panics if any required dependency is nil.
func NewService(
	db *sql.DB,
	conceptStore store.ConceptStore,
	selectionStore store.SelectionStore,
	progressStore store.StudyProgressStore,
	userStore store.UserStore,
	emitter events.Emitter,
	cfg config.StudyConfig,
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
	if userStore == nil {
		panic("userStore cannot be nil")
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
		userStore:      userStore,
		emitter:        emitter,
		cfg:            cfg,
		logger:         log.With(slog.String("component", "triage_service")),
		timeFunc:       time.Now,
		runTx:          store.RunInTransaction,
		sessions:       make(map[uuid.UUID]*session),
	}
}

// LoadQueue implements Service.LoadQueue
func (s *serviceImpl) LoadQueue(
	ctx context.Context,
	userID uuid.UUID,
	packageID string,
) (*State, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	total, err := s.conceptStore.CountByPackage(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("failed to count package concepts: %w", err)
	}
	if total == 0 {
		return nil, ErrPackageNotFound
	}

	queue, err := s.conceptStore.ListUndecided(ctx, userID, packageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list undecided concepts: %w", err)
	}

	sess := newSession(packageID, queue, s.cfg.UndoDepth)

	s.mu.Lock()
	s.sessions[userID] = sess
	s.mu.Unlock()

	log.Info("triage queue loaded",
		slog.String("user_id", userID.String()),
		slog.String("package_id", packageID),
		slog.Int("queue_length", len(queue)))

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.snapshot(ctx, userID, sess)
}

// Decide implements Service.Decide
func (s *serviceImpl) Decide(
	ctx context.Context,
	userID uuid.UUID,
	conceptID int64,
	outcome domain.TriageOutcome,
) (*State, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	status, err := outcome.Status()
	if err != nil {
		return nil, err
	}

	sess, err := s.session(userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	head := sess.head()
	if head == nil || head.ID != conceptID {
		return nil, ErrNotQueueHead
	}

	now := s.timeFunc()

	if outcome == domain.TriageOutcomeKeep {
		used, limit, premium, err := s.quotaUsage(ctx, userID, now)
		if err != nil {
			return nil, err
		}
		if used >= limit {
			s.emitQuotaExceeded(ctx, userID, sess.packageID, limit, premium, now)
			log.Info("keep decision rejected: quota exceeded",
				slog.String("user_id", userID.String()),
				slog.Int("quota", limit))
			return nil, ErrQuotaExceeded
		}
	}

	selection, err := domain.NewSelection(userID, conceptID, sess.packageID, status, now)
	if err != nil {
		return nil, err
	}

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.selectionStore.WithTx(tx).Create(ctx, selection); err != nil {
			return err
		}

		if outcome == domain.TriageOutcomeKeep {
			progress, err := domain.NewStudyProgress(
				userID, conceptID, domain.DirectionFrontToBack, now)
			if err != nil {
				return err
			}
			if err := s.progressStore.WithTx(tx).Create(ctx, progress); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, store.ErrSelectionExists) {
			// Another device already decided this concept. Skip it so the
			// queue head does not stay permanently stuck.
			sess.cursor++
			return nil, ErrConceptAlreadyDecided
		}
		return nil, fmt.Errorf("failed to record triage decision: %w", err)
	}

	sess.cursor++
	switch outcome {
	case domain.TriageOutcomeKeep:
		sess.kept++
	case domain.TriageOutcomeDiscard:
		sess.discarded++
	}
	sess.undo.push(decision{concept: head, outcome: outcome})

	log.Debug("triage decision recorded",
		slog.String("user_id", userID.String()),
		slog.Int64("concept_id", conceptID),
		slog.String("outcome", string(outcome)))

	return s.snapshot(ctx, userID, sess)
}

// Undo implements Service.Undo
func (s *serviceImpl) Undo(ctx context.Context, userID uuid.UUID) (*State, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sess, err := s.session(userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	d, ok := sess.undo.pop()
	if !ok {
		// An empty history is a disabled action, not an error.
		log.Debug("undo requested with empty history",
			slog.String("user_id", userID.String()))
		return s.snapshot(ctx, userID, sess)
	}

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		err := s.selectionStore.WithTx(tx).Delete(ctx, userID, d.concept.ID)
		if err != nil && !errors.Is(err, store.ErrSelectionNotFound) {
			return err
		}
		return s.progressStore.WithTx(tx).DeleteForConcept(ctx, userID, d.concept.ID)
	})
	if err != nil {
		// Nothing was rolled back in the database, so the decision must
		// stay reversible.
		sess.undo.push(d)
		return nil, fmt.Errorf("failed to undo triage decision: %w", err)
	}

	// Put the concept back at the front of the queue. In the common case it
	// is simply the previous cursor position.
	if sess.cursor > 0 && sess.queue[sess.cursor-1].ID == d.concept.ID {
		sess.cursor--
	} else {
		rest := append([]*domain.Concept{d.concept}, sess.queue[sess.cursor:]...)
		sess.queue = append(sess.queue[:sess.cursor], rest...)
	}

	switch d.outcome {
	case domain.TriageOutcomeKeep:
		sess.kept--
	case domain.TriageOutcomeDiscard:
		sess.discarded--
	}

	log.Debug("triage decision undone",
		slog.String("user_id", userID.String()),
		slog.Int64("concept_id", d.concept.ID),
		slog.String("outcome", string(d.outcome)))

	return s.snapshot(ctx, userID, sess)
}

// State implements Service.State
func (s *serviceImpl) State(ctx context.Context, userID uuid.UUID) (*State, error) {
	sess, err := s.session(userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.snapshot(ctx, userID, sess)
}

// Finish implements Service.Finish
func (s *serviceImpl) Finish(ctx context.Context, userID uuid.UUID) error {
	sess, err := s.session(userID)
	if err != nil {
		return err
	}

	kept, err := s.selectionStore.CountByStatus(
		ctx, userID, sess.packageID, domain.SelectionStatusSelected)
	if err != nil {
		return fmt.Errorf("failed to count selections: %w", err)
	}
	mastered, err := s.selectionStore.CountByStatus(
		ctx, userID, sess.packageID, domain.SelectionStatusMastered)
	if err != nil {
		return fmt.Errorf("failed to count selections: %w", err)
	}
	// Mastered concepts were kept too; only a deck with no kept concepts at
	// all is empty.
	if kept+mastered == 0 {
		return ErrEmptyDeck
	}

	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
	return nil
}

// session returns the user's active session or ErrNoActiveSession.
func (s *serviceImpl) session(userID uuid.UUID) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return nil, ErrNoActiveSession
	}
	return sess, nil
}

// quotaUsage returns how many keeps the user has recorded since local
// midnight, together with their tier's daily limit. The count is read from
// the store rather than tracked in memory, so undone keeps release quota
// and restarts cannot double-count.
func (s *serviceImpl) quotaUsage(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (used, limit int, premium bool, err error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to load user for quota check: %w", err)
	}

	limit = s.cfg.FreeDailyQuota
	if user.Premium {
		limit = s.cfg.PremiumDailyQuota
	}

	used, err = s.selectionStore.CountSelectedSince(ctx, userID, domain.LocalDay(now))
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to count today's selections: %w", err)
	}

	return used, limit, user.Premium, nil
}

// snapshot builds a State for the session. Callers must hold sess.mu.
func (s *serviceImpl) snapshot(ctx context.Context, userID uuid.UUID, sess *session) (*State, error) {
	used, limit, _, err := s.quotaUsage(ctx, userID, s.timeFunc())
	if err != nil {
		return nil, err
	}

	return &State{
		PackageID:  sess.packageID,
		Current:    sess.head(),
		Remaining:  sess.remaining(),
		Kept:       sess.kept,
		Discarded:  sess.discarded,
		QuotaUsed:  used,
		QuotaLimit: limit,
		UndoDepth:  sess.undo.len(),
		Completed:  sess.completed(),
	}, nil
}

// emitQuotaExceeded publishes the quota event. Emission is best effort and
// never affects the decision outcome.
func (s *serviceImpl) emitQuotaExceeded(
	ctx context.Context,
	userID uuid.UUID,
	packageID string,
	quota int,
	premium bool,
	now time.Time,
) {
	event, err := events.NewEvent(events.EventQuotaExceeded, events.QuotaExceededPayload{
		UserID:    userID,
		PackageID: packageID,
		Quota:     quota,
		Premium:   premium,
	}, now)
	if err != nil {
		s.logger.Error("failed to build quota exceeded event", slog.String("error", err.Error()))
		return
	}

	if err := s.emitter.Emit(ctx, event); err != nil {
		s.logger.Error("failed to emit quota exceeded event", slog.String("error", err.Error()))
	}
}
