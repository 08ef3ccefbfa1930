package complete

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
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/apperr"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

type MockService struct{ mock.Mock }

func (m *MockService) CompleteLesson(ctx context.Context, p models.Principal, courseID, lessonID string) (models.Progress, error) {
	args := m.Called(ctx, p, courseID, lessonID)
	return args.Get(0).(models.Progress), args.Error(1)
}

func newRequest(p models.Principal) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/kursevi/k-1/lekcije/l-1/napredak", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "k-1")
	rctx.URLParams.Add("lekcijaId", "l-1")
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	return req.WithContext(middlewarectx.WithPrincipal(ctx, p))
}

func TestCompleteHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := models.NewPrincipal("c-1", models.RoleClient, "")

	t.Run("progress returned", func(t *testing.T) {
		svc := new(MockService)
		svc.On("CompleteLesson", mock.Anything, client, "k-1", "l-1").
			Return(models.Progress{CourseID: "k-1", Completed: 1, Total: 4, Percent: 25}, nil).Once()

		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, newRequest(client))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":{"kursId":"k-1","zavrseno":1,"ukupno":4,"procenat":25}}`, w.Body.String())
	})

	t.Run("not purchased", func(t *testing.T) {
		svc := new(MockService)
		svc.On("CompleteLesson", mock.Anything, client, "k-1", "l-1").
			Return(models.Progress{}, apperr.Forbidden("course is not purchased")).Once()

		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, newRequest(client))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
