package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ali-aktas/HocaLingo-sub002/internal/domain"
	"github.com/ali-aktas/HocaLingo-sub002/internal/mocks"
	"github.com/ali-aktas/HocaLingo-sub002/internal/service/auth"
	"github.com/ali-aktas/HocaLingo-sub002/internal/store"
)

// mockJWTService is a testify mock of auth.JWTService.
type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

// mockPasswordVerifier is a testify mock of auth.PasswordVerifier.
type mockPasswordVerifier struct {
	mock.Mock
}

func (m *mockPasswordVerifier) Compare(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
}

func postJSON(target string, payload interface{}) *http.Request {
	body, _ := json.Marshal(payload)
	r := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestRegisterCreatesUserAndReturnsToken(t *testing.T) {
	t.Parallel()

	userStore := new(mocks.UserStore)
	userStore.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	jwtSvc := new(mockJWTService)
	jwtSvc.On("GenerateToken", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return("signed.jwt.token", nil)

	handler := NewAuthHandler(userStore, jwtSvc, new(mockPasswordVerifier))
	w := httptest.NewRecorder()
	handler.Register(w, postJSON("/auth/register", RegisterRequest{
		Email:    "learner@example.com",
		Password: "correct horse battery",
	}))

	require.Equal(t, http.StatusCreated, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed.jwt.token", resp.Token)
	assert.NotEmpty(t, resp.UserID)
	userStore.AssertExpectations(t)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	t.Parallel()

	userStore := new(mocks.UserStore)
	handler := NewAuthHandler(userStore, new(mockJWTService), new(mockPasswordVerifier))

	w := httptest.NewRecorder()
	handler.Register(w, postJSON("/auth/register", RegisterRequest{
		Email:    "learner@example.com",
		Password: "short",
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	userStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	userStore := new(mocks.UserStore)
	userStore.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Return(store.ErrEmailExists)

	handler := NewAuthHandler(userStore, new(mockJWTService), new(mockPasswordVerifier))
	w := httptest.NewRecorder()
	handler.Register(w, postJSON("/auth/register", RegisterRequest{
		Email:    "learner@example.com",
		Password: "correct horse battery",
	}))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginSucceeds(t *testing.T) {
	t.Parallel()

	user := &domain.User{
		ID:             uuid.New(),
		Email:          "learner@example.com",
		HashedPassword: "$2a$10$fakehash",
		Premium:        true,
	}

	userStore := new(mocks.UserStore)
	userStore.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	verifier := new(mockPasswordVerifier)
	verifier.On("Compare", user.HashedPassword, "correct horse battery").Return(nil)

	jwtSvc := new(mockJWTService)
	jwtSvc.On("GenerateToken", mock.Anything, user.ID).Return("signed.jwt.token", nil)

	handler := NewAuthHandler(userStore, jwtSvc, verifier)
	w := httptest.NewRecorder()
	handler.Login(w, postJSON("/auth/login", LoginRequest{
		Email:    user.Email,
		Password: "correct horse battery",
	}))

	require.Equal(t, http.StatusOK, w.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Premium)
	assert.Equal(t, user.ID.String(), resp.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	user := &domain.User{
		ID:             uuid.New(),
		Email:          "learner@example.com",
		HashedPassword: "$2a$10$fakehash",
	}

	userStore := new(mocks.UserStore)
	userStore.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	verifier := new(mockPasswordVerifier)
	verifier.On("Compare", user.HashedPassword, "wrong password!").
		Return(errors.New("crypto/bcrypt: hashedPassword is not the hash of the given password"))

	handler := NewAuthHandler(userStore, new(mockJWTService), verifier)
	w := httptest.NewRecorder()
	handler.Login(w, postJSON("/auth/login", LoginRequest{
		Email:    user.Email,
		Password: "wrong password!",
	}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnknownEmailLooksLikeBadCredentials(t *testing.T) {
	t.Parallel()

	userStore := new(mocks.UserStore)
	userStore.On("GetByEmail", mock.Anything, "nobody@example.com").
		Return(nil, store.ErrUserNotFound)

	handler := NewAuthHandler(userStore, new(mockJWTService), new(mockPasswordVerifier))
	w := httptest.NewRecorder()
	handler.Login(w, postJSON("/auth/login", LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct horse battery",
	}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}
