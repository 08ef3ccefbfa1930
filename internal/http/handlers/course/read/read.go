// Package read реализует HTTP-обработчик детального просмотра курса.
//
// Ссылки на видео уроков отдаются только владельцу курса и купившим его
// пользователям; остальным уроки возвращаются без поля video.
package read

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

// Service описывает интерфейс чтения курса.
type Service interface {
	Read(ctx context.Context, p models.Principal, id string) (models.CourseView, error)
}

// Handler обрабатывает GET /kursevi/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Детали курса
// @Tags Courses
// @Produce json
// @Param id path string true "ID курса"
// @Success 200 {object} map[string]any
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /kursevi/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	p := middlewarectx.PrincipalFrom(r.Context())

	view, err := h.service.Read(r.Context(), p, id)
	if err != nil {
		log.Error("failed to read course", slog.String("course_id", id), sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("course read", slog.String("course_id", id), slog.Bool("full_access", view.Purchased))
	render.JSON(w, r, map[string]any{
		"success": true,
		"kurs":    view,
	})
}
