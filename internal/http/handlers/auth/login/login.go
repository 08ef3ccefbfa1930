// Package login реализует HTTP-обработчик входа.
//
// При успешной аутентификации токен возвращается в теле ответа и
// дополнительно выставляется в HttpOnly cookie auth.
package login

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/middlewarectx"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/response"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/sl"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
	authsvc "github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/services/auth"
)

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, req models.LoginRequest) (authsvc.LoginResult, error)
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log           *slog.Logger
	service       Service
	cookieTTL     time.Duration
	secureCookies bool
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, cookieTTL time.Duration, secureCookies bool) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		cookieTTL:     cookieTTL,
		secureCookies: secureCookies,
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет email (или korisnickoIme) и пароль, выдаёт JWT на 7 дней.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Учетные данные пользователя"
// @Success 200 {object} map[string]any
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 403 {object} response.ErrorResponse "Неверный CSRF-токен"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	res, err := h.service.Login(r.Context(), req)
	if err != nil {
		log.Info("login failed", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	middlewarectx.SetAuthCookie(w, res.Token, h.cookieTTL, h.secureCookies)
	log.Info("login success", slog.String("user_id", res.User.ID))
	render.JSON(w, r, map[string]any{
		"success":  true,
		"token":    res.Token,
		"korisnik": res.User,
	})
}
