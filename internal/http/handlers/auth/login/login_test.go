package login

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/middlewarectx"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/apperr"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
	authsvc "github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/services/auth"
)

type MockService struct{ mock.Mock }

func (m *MockService) Login(ctx context.Context, req models.LoginRequest) (authsvc.LoginResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(authsvc.LoginResult), args.Error(1)
}

func TestLoginHandler_SetsCookie(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := new(MockService)
	svc.On("Login", mock.Anything, models.LoginRequest{Email: "ana@mail.rs", Password: "secret1"}).
		Return(authsvc.LoginResult{Token: "jwt-token", User: models.User{ID: "u-1", Role: models.RoleClient}}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"ana@mail.rs","lozinka":"secret1"}`))
	w := httptest.NewRecorder()
	New(logger, svc, 7*24*time.Hour, true).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"jwt-token"`)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, middlewarectx.CookieName, c.Name)
	assert.Equal(t, "jwt-token", c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 7*24*3600, c.MaxAge)
}

func TestLoginHandler_Errors(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("bad credentials", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Login", mock.Anything, mock.Anything).
			Return(authsvc.LoginResult{}, apperr.Unauthenticated("invalid credentials")).Once()

		w := httptest.NewRecorder()
		New(logger, svc, time.Hour, false).ServeHTTP(w,
			httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.rs","lozinka":"x"}`)))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("invalid json", func(t *testing.T) {
		w := httptest.NewRecorder()
		New(logger, new(MockService), time.Hour, false).ServeHTTP(w,
			httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`nope`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
