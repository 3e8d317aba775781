package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ali-aktas/HocaLingo-sub002/internal/api/shared"
	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
	"github.com/ali-aktas/HocaLingo-sub002/internal/service/triage"
)

// mockTriageService is a testify mock of triage.Service.
type mockTriageService struct {
	mock.Mock
}

func (m *mockTriageService) LoadQueue(
	ctx context.Context,
	userID uuid.UUID,
	packageID string,
) (*triage.State, error) {
	args := m.Called(ctx, userID, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*triage.State), args.Error(1)
}

func (m *mockTriageService) Decide(
	ctx context.Context,
	userID uuid.UUID,
	conceptID int64,
	outcome domain.TriageOutcome,
) (*triage.State, error) {
	args := m.Called(ctx, userID, conceptID, outcome)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*triage.State), args.Error(1)
}

func (m *mockTriageService) Undo(ctx context.Context, userID uuid.UUID) (*triage.State, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*triage.State), args.Error(1)
}

func (m *mockTriageService) State(ctx context.Context, userID uuid.UUID) (*triage.State, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*triage.State), args.Error(1)
}

func (m *mockTriageService) Finish(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// authedRequest builds a request whose context carries the given user ID,
// as the auth middleware would.
func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	return r.WithContext(ctx)
}

func TestTriageLoadQueue(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := new(mockTriageService)
	svc.On("LoadQueue", mock.Anything, userID, "a1-basics").
		Return(&triage.State{PackageID: "a1-basics", Remaining: 40, QuotaLimit: 25}, nil)

	router := chi.NewRouter()
	handler := NewTriageHandler(svc)
	router.Post("/triage/packages/{packageID}/queue", handler.LoadQueue)

	w := httptest.NewRecorder()
	r := authedRequest(http.MethodPost, "/triage/packages/a1-basics/queue", nil, userID)
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var state triage.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, 40, state.Remaining)
}

func TestTriageLoadQueueUnknownPackage(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := new(mockTriageService)
	svc.On("LoadQueue", mock.Anything, userID, "missing").
		Return(nil, triage.ErrPackageNotFound)

	router := chi.NewRouter()
	router.Post("/triage/packages/{packageID}/queue", NewTriageHandler(svc).LoadQueue)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(http.MethodPost, "/triage/packages/missing/queue", nil, userID))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTriageDecide(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := new(mockTriageService)
	svc.On("Decide", mock.Anything, userID, int64(7), domain.TriageOutcomeKeep).
		Return(&triage.State{Kept: 1, QuotaUsed: 1}, nil)

	body, _ := json.Marshal(DecideRequest{ConceptID: 7, Outcome: "keep"})
	w := httptest.NewRecorder()
	NewTriageHandler(svc).Decide(w, authedRequest(http.MethodPost, "/triage/decisions", body, userID))

	require.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestTriageDecideInvalidOutcome(t *testing.T) {
	t.Parallel()

	svc := new(mockTriageService)
	body, _ := json.Marshal(map[string]interface{}{"concept_id": 7, "outcome": "maybe"})

	w := httptest.NewRecorder()
	NewTriageHandler(svc).Decide(w, authedRequest(http.MethodPost, "/triage/decisions", body, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Decide",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTriageDecideQuotaExceeded(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := new(mockTriageService)
	svc.On("Decide", mock.Anything, userID, int64(7), domain.TriageOutcomeKeep).
		Return(nil, triage.ErrQuotaExceeded)

	body, _ := json.Marshal(DecideRequest{ConceptID: 7, Outcome: "keep"})
	w := httptest.NewRecorder()
	NewTriageHandler(svc).Decide(w, authedRequest(http.MethodPost, "/triage/decisions", body, userID))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestTriageUndoEmptyHistory(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := new(mockTriageService)
	svc.On("Undo", mock.Anything, userID).
		Return(&triage.State{Remaining: 40, UndoDepth: 0}, nil)

	w := httptest.NewRecorder()
	NewTriageHandler(svc).Undo(w, authedRequest(http.MethodPost, "/triage/undo", nil, userID))

	require.Equal(t, http.StatusOK, w.Code)

	var state triage.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, 0, state.UndoDepth)
}

func TestTriageRequiresAuthentication(t *testing.T) {
	t.Parallel()

	svc := new(mockTriageService)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/triage/state", nil)

	NewTriageHandler(svc).State(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
