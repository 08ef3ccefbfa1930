package list

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/middlewarectx"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/apperr"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

type MockService struct{ mock.Mock }

func (m *MockService) List(ctx context.Context, p models.Principal) ([]models.Course, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]models.Course), args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	edu := models.NewPrincipal("e-1", models.RoleEducator, "")

	t.Run("principal forwarded", func(t *testing.T) {
		svc := new(MockService)
		svc.On("List", mock.Anything, edu).Return([]models.Course{{ID: "k-1", Title: "Moj kurs", EducatorID: "e-1"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/kursevi", nil)
		req = req.WithContext(middlewarectx.WithPrincipal(req.Context(), edu))
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"data":[{"id":"k-1","naziv":"Moj kurs"`)
		assert.NotContains(t, w.Body.String(), "lekcije")
		svc.AssertExpectations(t)
	})

	t.Run("store failure", func(t *testing.T) {
		svc := new(MockService)
		svc.On("List", mock.Anything, models.Anonymous()).
			Return([]models.Course(nil), apperr.Internal(errors.New("relation \"courses\" does not exist"))).Once()

		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/kursevi", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "relation")
	})
}
