package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/access"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/response"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/sl"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

// Decider вычисляет решение политики доступа.
type Decider interface {
	Decide(p models.Principal, action access.Action) access.Decision
}

// Authorize пропускает запрос, только если политика разрешает action
// принципалу из контекста.
func Authorize(policy Decider, action access.Action, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFrom(r.Context())
			d := policy.Decide(p, action)
			if !d.Allowed() {
				log.Info("access denied",
					slog.String("op", "middlewarectx.Authorize"),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("action", action.String()),
					slog.String("decision", d.String()),
					sl.Principal(p),
				)
				response.WriteError(w, r, d.Err())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
