package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/response"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/apperr"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/csrf"
)

// CSRFVerifier проверяет анти-CSRF токен.
type CSRFVerifier interface {
	Verify(token string) bool
}

// CSRF отклоняет запрос с 403, если заголовок x-csrf-token отсутствует или
// токен не прошёл проверку.
func CSRF(guard CSRFVerifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(csrf.HeaderName)
			if token == "" || !guard.Verify(token) {
				log.Warn("invalid csrf token",
					slog.String("op", "middlewarectx.CSRF"),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.Bool("present", token != ""),
				)
				response.WriteError(w, r, apperr.InvalidCSRF("invalid csrf token"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
