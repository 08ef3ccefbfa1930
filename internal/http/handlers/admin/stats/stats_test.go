package stats

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

func (m *MockService) SalesStats(ctx context.Context) ([]models.CourseSales, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.CourseSales), args.Error(1)
}

func TestStatsHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := new(MockService)
	svc.On("SalesStats", mock.Anything).Return([]models.CourseSales{
		{CourseID: "k-1", Title: "Vecernji makeup", Revenue: 59.9, Sold: 1},
	}, nil).Once()

	w := httptest.NewRecorder()
	New(logger, svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/statistika-prodaje", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"success":true,"data":[{"kursId":"k-1","naziv":"Vecernji makeup","prihod":59.9,"prodato":1}]}`,
		w.Body.String())
	svc.AssertExpectations(t)
}
