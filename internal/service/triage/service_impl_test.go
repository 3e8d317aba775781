package triage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ali-aktas/HocaLingo-sub002/internal/config"
	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
	"github.com/ali-aktas/HocaLingo-sub002/internal/events"
	"github.com/ali-aktas/HocaLingo-sub002/internal/mocks"
	"github.com/ali-aktas/HocaLingo-sub002/internal/store"
)

type triageFixture struct {
	svc        *serviceImpl
	concepts   *mocks.ConceptStore
	selections *mocks.SelectionStore
	progress   *mocks.StudyProgressStore
	users      *mocks.UserStore
	emitter    *mocks.RecordingEmitter
	now        time.Time
	userID     uuid.UUID
}

func newTriageFixture(t *testing.T) *triageFixture {
	t.Helper()

	f := &triageFixture{
		concepts:   new(mocks.ConceptStore),
		selections: new(mocks.SelectionStore),
		progress:   new(mocks.StudyProgressStore),
		users:      new(mocks.UserStore),
		emitter:    &mocks.RecordingEmitter{},
		now:        time.Date(2024, 6, 10, 14, 30, 0, 0, time.Local),
		userID:     uuid.New(),
	}

	cfg := config.StudyConfig{
		FreeDailyQuota:       3,
		PremiumDailyQuota:    10,
		MasteryThresholdDays: 21,
		DailyGoalAnswers:     20,
		UndoDepth:            5,
	}

	svc := NewService(
		&sql.DB{}, f.concepts, f.selections, f.progress, f.users, f.emitter, cfg, nil,
	).(*serviceImpl)
	svc.timeFunc = func() time.Time { return f.now }
	svc.runTx = func(ctx context.Context, db *sql.DB, fn store.TxFn) error {
		return fn(ctx, nil)
	}
	f.svc = svc

	return f
}

func (f *triageFixture) expectUser(premium bool) {
	f.users.On("GetByID", mock.Anything, f.userID).
		Return(&domain.User{ID: f.userID, Premium: premium}, nil)
}

func (f *triageFixture) expectQuotaUsed(used int) {
	f.selections.On("CountSelectedSince", mock.Anything, f.userID, domain.LocalDay(f.now)).
		Return(used, nil)
}

func (f *triageFixture) loadQueue(t *testing.T, concepts []*domain.Concept) *State {
	t.Helper()

	f.concepts.On("CountByPackage", mock.Anything, "a1-basics").Return(50, nil)
	f.concepts.On("ListUndecided", mock.Anything, f.userID, "a1-basics").Return(concepts, nil)

	state, err := f.svc.LoadQueue(context.Background(), f.userID, "a1-basics")
	require.NoError(t, err)
	return state
}

func TestLoadQueueUnknownPackage(t *testing.T) {
	t.Parallel()

	f := newTriageFixture(t)
	f.concepts.On("CountByPackage", mock.Anything, "missing").Return(0, nil)

	_, err := f.svc.LoadQueue(context.Background(), f.userID, "missing")
	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestLoadQueueFullyDecidedPackageIsCompleted(t *testing.T) {
	t.Parallel()

	f := newTriageFixture(t)
	f.expectUser(false)
	f.expectQuotaUsed(0)

	state := f.loadQueue(t, []*domain.Concept{})

	assert.True(t, state.Completed)
	assert.Nil(t, state.Current)
	assert.Equal(t, 0, state.Remaining)
}

func TestDecideRequiresActiveSession(t *testing.T) {
	t.Parallel()

	f := newTriageFixture(t)
	_, err := f.svc.Decide(context.Background(), f.userID, 1, domain.TriageOutcomeKeep)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestDecideRejectsOutOfOrderConcept(t *testing.T) {
	t.Parallel()

	f := newTriageFixture(t)
	f.expectUser(false)
	f.expectQuotaUsed(0)
	f.loadQueue(t, []*domain.Concept{testConcept(1), testConcept(2)})

	_, err := f.svc.Decide(context.Background(), f.userID, 2, domain.TriageOutcomeKeep)
	assert.ErrorIs(t, err, ErrNotQueueHead)
}

func TestDecideKeepCreatesSelectionAndProgress(t *testing.T) {
	t.Parallel()

	f := newTriageFixture(t)
	f.expectUser(false)
	f.expectQuotaUsed(1)
	f.loadQueue(t, []*domain.Concept{testConcept(1), testConcept(2)})

	f.selections.On("Create", mock.Anything, mock.MatchedBy(func(sel *domain.Selection) bool {
		return sel.ConceptID == 1 && sel.Status == domain.SelectionStatusSelected
	})).Return(nil)
	f.progress.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.StudyProgress) bool {
		return p.ConceptID == 1 &&
			p.Direction == domain.DirectionFrontToBack &&
			p.Phase == domain.PhaseLearning
	})).Return(nil)

	state, err := f.svc.Decide(context.Background(), f.userID, 1, domain.TriageOutcomeKeep)
	require.NoError(t, err)

	assert.Equal(t, 1, state.Kept)
	assert.Equal(t, int64(2), state.Current.ID)
	assert.Equal(t, 1, state.UndoDepth)
	f.selections.AssertExpectations(t)
	f.progress.AssertExpectations(t)
}

func TestDecideDiscardSkipsProgressAndQuota(t *testing.T) {
	t.Parallel()

	f := newTriageFixture(t)
	f.expectUser(false)
	f.expectQuotaUsed(3)
	f.loadQueue(t, []*domain.Concept{testConcept(1)})

	f.selections.On("Create", mock.Anything, mock.MatchedBy(func(sel *domain.Selection) bool {
		return sel.Status == domain.SelectionStatusHidden
	})).Return(nil)

	// Quota is already at the free limit, but discards must still go through.
	state, err := f.svc.Decide(context.Background(), f.userID, 1, domain.TriageOutcomeDiscard)
	require.NoError(t, err)

	assert.Equal(t, 1, state.Discarded)
	assert.True(t, state.Completed)
	f.progress.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDecideKeepAtQuotaLimitFails(t *testing.T) {
	t.Parallel()

	f := newTriageFixture(t)
	f.expectUser(false)
	f.expectQuotaUsed(3) // free quota in the fixture is 3
	f.loadQueue(t, []*domain.Concept{testConcept(1)})

	_, err := f.svc.Decide(context.Background(), f.userID, 1, domain.TriageOutcomeKeep)
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	require.Len(t, f.emitter.Emitted, 1)
	assert.Equal(t, events.EventQuotaExceeded, f.emitter.Emitted[0].Type)
	f.selections.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDecideKeepPremiumUsesLargerQuota(t *testing.T) {
	t.Parallel()

	f := newTriageFixture(t)
	f.expectUser(true)
	f.expectQuotaUsed(3) // over the free limit, under the premium one
	f.loadQueue(t, []*domain.Concept{testConcept(1)})

	f.selections.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.progress.On("Create", mock.Anything, mock.Anything).Return(nil)

	state, err := f.svc.Decide(context.Background(), f.userID, 1, domain.TriageOutcomeKeep)
	require.NoError(t, err)
	assert.Equal(t, 10, state.QuotaLimit)
}

func TestDecideAlreadyDecidedElsewhereSkipsConcept(t *testing.T) {
	t.Parallel()

	f := newTriageFixture(t)
	f.expectUser(false)
	f.expectQuotaUsed(0)
	f.loadQueue(t, []*domain.Concept{testConcept(1), testConcept(2)})

	f.selections.On("Create", mock.Anything, mock.Anything).Return(store.ErrSelectionExists).Once()

	_, err := f.svc.Decide(context.Background(), f.userID, 1, domain.TriageOutcomeKeep)
	assert.ErrorIs(t, err, ErrConceptAlreadyDecided)

	// The queue must have moved past the concept decided on another device.
	state, err := f.svc.State(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), state.Current.ID)
	assert.Equal(t, 0, state.UndoDepth)
}

func TestUndoReversesKeepDecision(t *testing.T) {
	t.Parallel()

	f := newTriageFixture(t)
	f.expectUser(false)
	f.expectQuotaUsed(0)
	f.loadQueue(t, []*domain.Concept{testConcept(1), testConcept(2)})

	f.selections.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.progress.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.selections.On("Delete", mock.Anything, f.userID, int64(1)).Return(nil)
	f.progress.On("DeleteForConcept", mock.Anything, f.userID, int64(1)).Return(nil)

	_, err := f.svc.Decide(context.Background(), f.userID, 1, domain.TriageOutcomeKeep)
	require.NoError(t, err)

	state, err := f.svc.Undo(context.Background(), f.userID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), state.Current.ID, "undone concept returns to the queue head")
	assert.Equal(t, 0, state.Kept)
	assert.Equal(t, 0, state.UndoDepth)
	f.selections.AssertExpectations(t)
	f.progress.AssertExpectations(t)
}

func TestUndoWithEmptyHistory(t *testing.T) {
	t.Parallel()

	f := newTriageFixture(t)
	f.expectUser(false)
	f.expectQuotaUsed(0)
	f.loadQueue(t, []*domain.Concept{testConcept(1)})

	// Undoing with no history is a no-op, not an error: the state comes
	// back unchanged and nothing is deleted.
	state, err := f.svc.Undo(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, 0, state.UndoDepth)
	assert.Equal(t, int64(1), state.Current.ID)
	f.selections.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestUndoKeepsHistoryWhenTransactionFails(t *testing.T) {
	t.Parallel()

	f := newTriageFixture(t)
	f.expectUser(false)
	f.expectQuotaUsed(0)
	f.loadQueue(t, []*domain.Concept{testConcept(1), testConcept(2)})

	f.selections.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	_, err := f.svc.Decide(context.Background(), f.userID, 1, domain.TriageOutcomeDiscard)
	require.NoError(t, err)

	f.selections.On("Delete", mock.Anything, f.userID, int64(1)).
		Return(errors.New("connection reset")).Once()
	_, err = f.svc.Undo(context.Background(), f.userID)
	require.Error(t, err)

	// The database still holds the selection, so the decision must stay
	// reversible.
	state, err := f.svc.State(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.UndoDepth)

	f.selections.On("Delete", mock.Anything, f.userID, int64(1)).Return(nil).Once()
	f.progress.On("DeleteForConcept", mock.Anything, f.userID, int64(1)).Return(nil).Once()

	state, err = f.svc.Undo(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, 0, state.UndoDepth)
	assert.Equal(t, int64(1), state.Current.ID)
}

func TestUndoDepthIsBounded(t *testing.T) {
	t.Parallel()

	f := newTriageFixture(t)
	f.expectUser(false)
	f.expectQuotaUsed(0)

	var queue []*domain.Concept
	for i := int64(1); i <= 8; i++ {
		queue = append(queue, testConcept(i))
	}
	f.loadQueue(t, queue)

	f.selections.On("Create", mock.Anything, mock.Anything).Return(nil)

	for i := int64(1); i <= 7; i++ {
		_, err := f.svc.Decide(context.Background(), f.userID, i, domain.TriageOutcomeDiscard)
		require.NoError(t, err)
	}

	state, err := f.svc.State(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, 5, state.UndoDepth, "history is capped at the configured depth")

	f.selections.On("Delete", mock.Anything, f.userID, mock.Anything).Return(nil)
	f.progress.On("DeleteForConcept", mock.Anything, f.userID, mock.Anything).Return(nil)

	for i := 0; i < 5; i++ {
		_, err := f.svc.Undo(context.Background(), f.userID)
		require.NoError(t, err)
	}

	state, err = f.svc.Undo(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, 0, state.UndoDepth, "evicted decisions are no longer reversible")
}

func TestFinishDropsSession(t *testing.T) {
	t.Parallel()

	f := newTriageFixture(t)
	f.expectUser(false)
	f.expectQuotaUsed(0)
	f.loadQueue(t, []*domain.Concept{testConcept(1)})
	f.selections.On("CountByStatus",
		mock.Anything, f.userID, "a1-basics", domain.SelectionStatusSelected).Return(3, nil)

	require.NoError(t, f.svc.Finish(context.Background(), f.userID))

	_, err := f.svc.State(context.Background(), f.userID)
	assert.ErrorIs(t, err, ErrNoActiveSession)

	assert.ErrorIs(t, f.svc.Finish(context.Background(), f.userID), ErrNoActiveSession)
}

func TestFinishRejectsEmptyDeck(t *testing.T) {
	t.Parallel()

	f := newTriageFixture(t)
	f.expectUser(false)
	f.expectQuotaUsed(0)
	f.loadQueue(t, []*domain.Concept{testConcept(1)})
	f.selections.On("CountByStatus",
		mock.Anything, f.userID, "a1-basics", mock.Anything).Return(0, nil)

	assert.ErrorIs(t, f.svc.Finish(context.Background(), f.userID), ErrEmptyDeck)

	// The session survives a rejected finish so the user can keep something.
	_, err := f.svc.State(context.Background(), f.userID)
	require.NoError(t, err)
}
