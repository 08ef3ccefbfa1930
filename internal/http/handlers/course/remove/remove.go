// Package remove реализует HTTP-обработчик удаления курса.
package remove

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

// Service описывает интерфейс удаления курса.
type Service interface {
	Delete(ctx context.Context, p models.Principal, id string) error
}

// Handler обрабатывает DELETE /kursevi/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить курс
// @Description Курс с покупками удалить нельзя (409).
// @Tags Courses
// @Produce json
// @Param id path string true "ID курса"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /kursevi/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	p := middlewarectx.PrincipalFrom(r.Context())

	if err := h.service.Delete(r.Context(), p, id); err != nil {
		log.Error("failed to delete course", slog.String("course_id", id), sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("course deleted", slog.String("course_id", id))
	render.JSON(w, r, response.Response{Success: true})
}
