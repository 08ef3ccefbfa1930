package resetpassword

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/apperr"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

type MockService struct{ mock.Mock }

func (m *MockService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func TestResetPasswordHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success", func(t *testing.T) {
		svc := new(MockService)
		svc.On("ResetPassword", mock.Anything, models.ResetPasswordRequest{Token: "tok", NewPassword: "newpass"}).Return(nil).Once()

		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/reset-password",
			strings.NewReader(`{"token":"tok","novaLozinka":"newpass"}`)))

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("expired link", func(t *testing.T) {
		svc := new(MockService)
		svc.On("ResetPassword", mock.Anything, mock.Anything).Return(apperr.Validation("reset link has expired")).Once()

		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/reset-password",
			strings.NewReader(`{"token":"tok","novaLozinka":"newpass"}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"success":false,"error":"reset link has expired"}`, w.Body.String())
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		New(logger, new(MockService)).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/reset-password",
			strings.NewReader(`{"novaLozinka":"newpass"}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
