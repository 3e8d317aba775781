package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
	"github.com/ali-aktas/HocaLingo-sub002/internal/service"
	"github.com/ali-aktas/HocaLingo-sub002/internal/service/progress"
)

// mockProgressService is a testify mock of progress.Service.
type mockProgressService struct {
	mock.Mock
}

func (m *mockProgressService) RecordAppOpen(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.DailyLedgerEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyLedgerEntry), args.Error(1)
}

func (m *mockProgressService) RecordReview(
	ctx context.Context,
	userID uuid.UUID,
	wasCorrect bool,
	elapsed time.Duration,
) error {
	args := m.Called(ctx, userID, wasCorrect, elapsed)
	return args.Error(0)
}

func (m *mockProgressService) Summary(
	ctx context.Context,
	userID uuid.UUID,
) (*progress.Summary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*progress.Summary), args.Error(1)
}

func (m *mockProgressService) MonthlyStats(
	ctx context.Context,
	userID uuid.UUID,
	year int,
	month time.Month,
) (*progress.MonthlyStats, error) {
	args := m.Called(ctx, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*progress.MonthlyStats), args.Error(1)
}

// mockDeckService is a testify mock of service.DeckService.
type mockDeckService struct {
	mock.Mock
}

func (m *mockDeckService) Stats(
	ctx context.Context,
	userID uuid.UUID,
	packageID string,
	direction domain.StudyDirection,
) (*service.DeckStats, error) {
	args := m.Called(ctx, userID, packageID, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DeckStats), args.Error(1)
}

func TestProgressAppOpen(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	entry := &domain.DailyLedgerEntry{
		UserID:      userID,
		Date:        time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local),
		StreakCount: 4,
	}
	progressSvc := new(mockProgressService)
	progressSvc.On("RecordAppOpen", mock.Anything, userID).Return(entry, nil)

	handler := NewProgressHandler(progressSvc, new(mockDeckService))
	w := httptest.NewRecorder()
	handler.AppOpen(w, authedRequest(http.MethodPost, "/progress/app-open", nil, userID))

	require.Equal(t, http.StatusOK, w.Code)

	var got domain.DailyLedgerEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 4, got.StreakCount)
}

func TestProgressSummary(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	progressSvc := new(mockProgressService)
	progressSvc.On("Summary", mock.Anything, userID).
		Return(&progress.Summary{Date: "2024-06-10", Streak: 2, GoalTarget: 20}, nil)

	handler := NewProgressHandler(progressSvc, new(mockDeckService))
	w := httptest.NewRecorder()
	handler.Summary(w, authedRequest(http.MethodGet, "/progress/summary", nil, userID))

	require.Equal(t, http.StatusOK, w.Code)

	var got progress.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Streak)
	assert.Equal(t, 20, got.GoalTarget)
}

func TestProgressMonthlyStatsExplicitMonth(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	progressSvc := new(mockProgressService)
	progressSvc.On("MonthlyStats", mock.Anything, userID, 2024, time.June).
		Return(&progress.MonthlyStats{Year: 2024, Month: 6, ActiveDays: 12}, nil)

	handler := NewProgressHandler(progressSvc, new(mockDeckService))
	w := httptest.NewRecorder()
	handler.MonthlyStats(w, authedRequest(
		http.MethodGet, "/progress/stats?year=2024&month=6", nil, userID))

	require.Equal(t, http.StatusOK, w.Code)
	progressSvc.AssertExpectations(t)
}

func TestProgressMonthlyStatsRejectsBadMonth(t *testing.T) {
	t.Parallel()

	progressSvc := new(mockProgressService)
	handler := NewProgressHandler(progressSvc, new(mockDeckService))

	w := httptest.NewRecorder()
	handler.MonthlyStats(w, authedRequest(
		http.MethodGet, "/progress/stats?year=2024&month=13", nil, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	progressSvc.AssertNotCalled(t, "MonthlyStats",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProgressDeckStats(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	deckSvc := new(mockDeckService)
	deckSvc.On("Stats", mock.Anything, userID, "a1-basics", domain.DirectionFrontToBack).
		Return(&service.DeckStats{PackageID: "a1-basics", Selected: 18, Mastered: 3}, nil)

	handler := NewProgressHandler(new(mockProgressService), deckSvc)
	w := httptest.NewRecorder()
	handler.DeckStats(w, authedRequest(
		http.MethodGet, "/progress/deck?package_id=a1-basics", nil, userID))

	require.Equal(t, http.StatusOK, w.Code)

	var got service.DeckStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 18, got.Selected)
}
