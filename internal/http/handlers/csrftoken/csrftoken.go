// Package csrftoken выдаёт CSRF-токен для последующих изменяющих запросов.
package csrftoken

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/response"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/sl"
)

// Issuer выпускает CSRF-токены.
type Issuer interface {
	Issue() (string, error)
}

// Handler отдаёт новый CSRF-токен.
type Handler struct {
	log    *slog.Logger
	issuer Issuer
}

// New создает новый Handler.
func New(log *slog.Logger, issuer Issuer) *Handler {
	return &Handler{log: log, issuer: issuer}
}

// ServeHTTP godoc
// @Summary Получить CSRF-токен
// @Description Токен передаётся в заголовке x-csrf-token всех изменяющих запросов.
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} response.ErrorResponse
// @Router /csrf-token [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.csrftoken"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token, err := h.issuer.Issue()
	if err != nil {
		log.Error("failed to issue csrf token", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	render.JSON(w, r, map[string]string{"csrfToken": token})
}
