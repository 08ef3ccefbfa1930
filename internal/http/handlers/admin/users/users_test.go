package users

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

type MockService struct{ mock.Mock }

func (m *MockService) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func TestUsersHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := new(MockService)
	svc.On("ListUsers", mock.Anything).Return([]models.User{
		{ID: "u-1", Email: "ana@example.com", Role: models.RoleClient, PasswordHash: "$2a$10$secret"},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/korisnici", nil)
	w := httptest.NewRecorder()
	New(logger, svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uloga":"CLIENT"`)
	assert.NotContains(t, w.Body.String(), "secret")
	svc.AssertExpectations(t)
}
