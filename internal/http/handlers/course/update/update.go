// Package update реализует HTTP-обработчик изменения курса владельцем.
//
// Переданный список уроков полностью задаёт уроки курса: уроки с id
// обновляются, без id создаются, отсутствующие удаляются.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/middlewarectx"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/response"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/sl"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

// Service описывает интерфейс изменения курса.
type Service interface {
	Update(ctx context.Context, p models.Principal, id string, upd models.CourseUpdate) error
}

// Handler обрабатывает PATCH /kursevi/{id}.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить курс
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "ID курса"
// @Param request body models.CourseUpdate true "Изменяемые поля"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse "Не владелец курса"
// @Failure 404 {object} response.ErrorResponse
// @Router /kursevi/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var req models.CourseUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		response.WriteValidation(w, r, err)
		return
	}

	p := middlewarectx.PrincipalFrom(r.Context())
	if err := h.service.Update(r.Context(), p, id, req); err != nil {
		log.Error("failed to update course", slog.String("course_id", id), sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("course updated", slog.String("course_id", id))
	render.JSON(w, r, response.Response{Success: true})
}
