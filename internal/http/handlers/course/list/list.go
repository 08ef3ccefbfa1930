// Package list реализует HTTP-обработчик каталога курсов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/middlewarectx"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/response"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/sl"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

// Service описывает интерфейс получения каталога.
type Service interface {
	List(ctx context.Context, p models.Principal) ([]models.Course, error)
}

// Handler отдаёт список курсов без уроков.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список курсов
// @Description Преподаватель получает только свои курсы, остальные пользователи весь каталог.
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Router /kursevi [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	p := middlewarectx.PrincipalFrom(r.Context())
	courses, err := h.service.List(r.Context(), p)
	if err != nil {
		log.Error("failed to list courses", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("courses listed", slog.Int("count", len(courses)), sl.Principal(p))
	render.JSON(w, r, response.OK(courses))
}
