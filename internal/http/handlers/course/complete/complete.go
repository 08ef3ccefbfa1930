// Package complete отмечает урок пройденным.
package complete

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/middlewarectx"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/response"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/sl"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

type Service interface {
	CompleteLesson(ctx context.Context, p models.Principal, courseID, lessonID string) (models.Progress, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отметить урок пройденным
// @Tags Progress
// @Produce json
// @Param id path string true "ID курса"
// @Param lekcijaId path string true "ID урока"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /kursevi/{id}/lekcije/{lekcijaId}/napredak [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.complete"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	courseID := chi.URLParam(r, "id")
	lessonID := chi.URLParam(r, "lekcijaId")
	p := middlewarectx.PrincipalFrom(r.Context())

	progress, err := h.service.CompleteLesson(r.Context(), p, courseID, lessonID)
	if err != nil {
		log.Info("failed to complete lesson", slog.String("lesson_id", lessonID), sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("lesson completed", slog.String("lesson_id", lessonID), slog.Int("percent", progress.Percent))
	render.JSON(w, r, response.OK(progress))
}
