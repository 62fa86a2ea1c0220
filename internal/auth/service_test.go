package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sebuszqo/ExpenseTracker/internal/httputil"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testCookie = CookieConfig{Name: "session"}

func newTestAuthService(loginFn func(ctx context.Context, email, password string) (*user.User, error)) Service {
	return NewAuthService(&MockUserService{LoginFn: loginFn}, NewJWTManager(testSecret, time.Hour), testCookie, zap.NewNop())
}

func TestLogin_MapsUserErrors(t *testing.T) {
	tests := []struct {
		userErr  error
		expected error
	}{
		{user.ErrUserNotFound, ErrInvalidCredentials},
		{user.ErrInvalidCredentials, ErrInvalidCredentials},
		{user.ErrAccountNotActivated, ErrAccountNotActivated},
		{errors.New("db down"), ErrInternalError},
	}

	for _, tt := range tests {
		service := newTestAuthService(func(context.Context, string, string) (*user.User, error) {
			return nil, tt.userErr
		})
		_, token, err := service.Login(context.Background(), "a@x.com", "Sup3r$ecret")
		assert.ErrorIs(t, err, tt.expected)
		assert.Empty(t, token)
	}
}

func TestLogin_IssuesTokenForUser(t *testing.T) {
	service := newTestAuthService(func(context.Context, string, string) (*user.User, error) {
		return &user.User{ID: 9, Email: "a@x.com"}, nil
	})

	loggedIn, token, err := service.Login(context.Background(), "a@x.com", "Sup3r$ecret")
	require.NoError(t, err)
	assert.Equal(t, int64(9), loggedIn.ID)

	userID, err := NewJWTManager(testSecret, time.Hour).ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(9), userID)
}

func TestSessionMiddleware(t *testing.T) {
	service := newTestAuthService(nil)
	token, err := NewJWTManager(testSecret, time.Hour).GenerateSessionJWT(7)
	require.NoError(t, err)

	var gotUserID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = httputil.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := service.SessionMiddleware()(next)

	tests := []struct {
		name         string
		cookie       *http.Cookie
		expectedCode int
	}{
		{"missing cookie", nil, http.StatusUnauthorized},
		{"malformed cookie", &http.Cookie{Name: "session", Value: "not-a-token"}, http.StatusUnauthorized},
		{"other cookie name", &http.Cookie{Name: "other", Value: token}, http.StatusUnauthorized},
		{"valid cookie", &http.Cookie{Name: "session", Value: token}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = 0
			req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusNoContent {
				assert.Equal(t, int64(7), gotUserID)
			} else {
				assert.Zero(t, gotUserID)
			}
		})
	}
}
