package progress

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/middlewarectx"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

type MockService struct{ mock.Mock }

func (m *MockService) Progress(ctx context.Context, p models.Principal, courseID string) (models.Progress, error) {
	args := m.Called(ctx, p, courseID)
	return args.Get(0).(models.Progress), args.Error(1)
}

func TestProgressHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := models.NewPrincipal("c-1", models.RoleClient, "")

	svc := new(MockService)
	svc.On("Progress", mock.Anything, client, "k-1").Return(models.Progress{CourseID: "k-1", Total: 0, Percent: 0}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/kursevi/k-1/napredak", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "k-1")
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	req = req.WithContext(middlewarectx.WithPrincipal(ctx, client))

	w := httptest.NewRecorder()
	New(logger, svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"procenat":0`)
	svc.AssertExpectations(t)
}
