// Package progress отдаёт прогресс пользователя по курсу.
package progress

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
	Progress(ctx context.Context, p models.Principal, courseID string) (models.Progress, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Прогресс по курсу
// @Tags Progress
// @Produce json
// @Param id path string true "ID курса"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "Курс не куплен"
// @Router /kursevi/{id}/napredak [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.progress"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	courseID := chi.URLParam(r, "id")
	progress, err := h.service.Progress(r.Context(), middlewarectx.PrincipalFrom(r.Context()), courseID)
	if err != nil {
		log.Info("failed to get progress", slog.String("course_id", courseID), sl.Err(err))
		response.WriteError(w, r, err)
		return
	}
	render.JSON(w, r, response.OK(progress))
}
