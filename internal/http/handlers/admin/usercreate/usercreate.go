// Package usercreate реализует создание пользователя с произвольной ролью.
package usercreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/response"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/sl"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

// Service описывает интерфейс создания пользователя.
type Service interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error)
}

// Handler обрабатывает POST /admin/korisnik.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Создание пользователя
// @Description Администратор создаёт пользователя с ролью CLIENT, EDUCATOR или ADMIN.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "Пользователь"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Email занят"
// @Router /admin/korisnik [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.usercreate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreateUserRequest
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

	user, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		log.Error("failed to create user", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("user created", slog.String("user_id", user.ID), slog.String("role", user.Role.String()))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OK(user))
}
