// Package logout реализует выход: удаляет cookie сессии.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/middlewarectx"
)

type Handler struct {
	log           *slog.Logger
	secureCookies bool
}

func New(log *slog.Logger, secureCookies bool) *Handler {
	return &Handler{log: log, secureCookies: secureCookies}
}

// ServeHTTP godoc
// @Summary Выход
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]any
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"
	h.log.Info("logout",
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	middlewarectx.ClearAuthCookie(w, h.secureCookies)
	render.JSON(w, r, map[string]any{"success": true, "message": "logged out"})
}
