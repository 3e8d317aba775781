package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
	"github.com/ali-aktas/HocaLingo-sub002/internal/store"
)

// ConceptStore is a testify mock of store.ConceptStore.
type ConceptStore struct {
	mock.Mock
}

var _ store.ConceptStore = (*ConceptStore)(nil)

func (m *ConceptStore) GetByID(ctx context.Context, id int64) (*domain.Concept, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Concept), args.Error(1)
}

func (m *ConceptStore) ListUndecided(
	ctx context.Context,
	userID uuid.UUID,
	packageID string,
) ([]*domain.Concept, error) {
	args := m.Called(ctx, userID, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Concept), args.Error(1)
}

func (m *ConceptStore) CountByPackage(ctx context.Context, packageID string) (int, error) {
	args := m.Called(ctx, packageID)
	return args.Int(0), args.Error(1)
}

// SelectionStore is a testify mock of store.SelectionStore. WithTx returns
// the mock itself so transactional code paths hit the same expectations.
type SelectionStore struct {
	mock.Mock
}

var _ store.SelectionStore = (*SelectionStore)(nil)

func (m *SelectionStore) Create(ctx context.Context, selection *domain.Selection) error {
	args := m.Called(ctx, selection)
	return args.Error(0)
}

func (m *SelectionStore) Get(
	ctx context.Context,
	userID uuid.UUID,
	conceptID int64,
) (*domain.Selection, error) {
	args := m.Called(ctx, userID, conceptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Selection), args.Error(1)
}

func (m *SelectionStore) Delete(ctx context.Context, userID uuid.UUID, conceptID int64) error {
	args := m.Called(ctx, userID, conceptID)
	return args.Error(0)
}

func (m *SelectionStore) UpdateStatus(
	ctx context.Context,
	userID uuid.UUID,
	conceptID int64,
	status domain.SelectionStatus,
) error {
	args := m.Called(ctx, userID, conceptID, status)
	return args.Error(0)
}

func (m *SelectionStore) CountByStatus(
	ctx context.Context,
	userID uuid.UUID,
	packageID string,
	status domain.SelectionStatus,
) (int, error) {
	args := m.Called(ctx, userID, packageID, status)
	return args.Int(0), args.Error(1)
}

func (m *SelectionStore) CountSelectedSince(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}

func (m *SelectionStore) WithTx(tx *sql.Tx) store.SelectionStore {
	return m
}

// StudyProgressStore is a testify mock of store.StudyProgressStore.
type StudyProgressStore struct {
	mock.Mock
}

var _ store.StudyProgressStore = (*StudyProgressStore)(nil)

func (m *StudyProgressStore) Create(ctx context.Context, progress *domain.StudyProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *StudyProgressStore) Get(
	ctx context.Context,
	userID uuid.UUID,
	conceptID int64,
	direction domain.StudyDirection,
) (*domain.StudyProgress, error) {
	args := m.Called(ctx, userID, conceptID, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudyProgress), args.Error(1)
}

func (m *StudyProgressStore) GetForUpdate(
	ctx context.Context,
	userID uuid.UUID,
	conceptID int64,
	direction domain.StudyDirection,
) (*domain.StudyProgress, error) {
	args := m.Called(ctx, userID, conceptID, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudyProgress), args.Error(1)
}

func (m *StudyProgressStore) Update(ctx context.Context, progress *domain.StudyProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *StudyProgressStore) DeleteForConcept(
	ctx context.Context,
	userID uuid.UUID,
	conceptID int64,
) error {
	args := m.Called(ctx, userID, conceptID)
	return args.Error(0)
}

func (m *StudyProgressStore) ListDue(
	ctx context.Context,
	userID uuid.UUID,
	direction domain.StudyDirection,
	now time.Time,
	limit int,
) ([]*domain.StudyProgress, error) {
	args := m.Called(ctx, userID, direction, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StudyProgress), args.Error(1)
}

func (m *StudyProgressStore) CountByPhase(
	ctx context.Context,
	userID uuid.UUID,
	direction domain.StudyDirection,
) (map[domain.Phase]int, error) {
	args := m.Called(ctx, userID, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Phase]int), args.Error(1)
}

func (m *StudyProgressStore) WithTx(tx *sql.Tx) store.StudyProgressStore {
	return m
}

// LedgerStore is a testify mock of store.LedgerStore.
type LedgerStore struct {
	mock.Mock
}

var _ store.LedgerStore = (*LedgerStore)(nil)

func (m *LedgerStore) Get(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
) (*domain.DailyLedgerEntry, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyLedgerEntry), args.Error(1)
}

func (m *LedgerStore) Insert(ctx context.Context, entry *domain.DailyLedgerEntry) (bool, error) {
	args := m.Called(ctx, entry)
	return args.Bool(0), args.Error(1)
}

func (m *LedgerStore) ApplyReview(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
	wasCorrect bool,
	elapsed time.Duration,
	now time.Time,
) (*domain.DailyLedgerEntry, error) {
	args := m.Called(ctx, userID, date, wasCorrect, elapsed, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyLedgerEntry), args.Error(1)
}

func (m *LedgerStore) ClaimGoalAchieved(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
) (bool, error) {
	args := m.Called(ctx, userID, date)
	return args.Bool(0), args.Error(1)
}

func (m *LedgerStore) ListRange(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]*domain.DailyLedgerEntry, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyLedgerEntry), args.Error(1)
}

func (m *LedgerStore) WithTx(tx *sql.Tx) store.LedgerStore {
	return m
}

// UserStore is a testify mock of store.UserStore.
type UserStore struct {
	mock.Mock
}

var _ store.UserStore = (*UserStore)(nil)

func (m *UserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserStore) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
