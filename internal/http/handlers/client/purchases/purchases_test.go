package purchases

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/middlewarectx"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

type MockService struct{ mock.Mock }

func (m *MockService) ListPurchases(ctx context.Context, p models.Principal, userID string) ([]models.PurchasedCourse, error) {
	args := m.Called(ctx, p, userID)
	return args.Get(0).([]models.PurchasedCourse), args.Error(1)
}

func TestPurchasesHandler_PassesQuery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	admin := models.NewPrincipal("a-1", models.RoleAdmin, "")

	svc := new(MockService)
	svc.On("ListPurchases", mock.Anything, admin, "c-9").Return([]models.PurchasedCourse{
		{Purchase: models.Purchase{ID: "p-1", UserID: "c-9", CourseID: "k-1"}},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/klijent/kupljeni-kursevi?korisnikId=c-9", nil)
	req = req.WithContext(middlewarectx.WithPrincipal(req.Context(), admin))
	w := httptest.NewRecorder()
	New(logger, svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"korisnikId":"c-9"`)
	svc.AssertExpectations(t)
}
