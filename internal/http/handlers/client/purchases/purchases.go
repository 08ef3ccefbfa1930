// Package purchases отдаёт купленные курсы клиента.
package purchases

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

// UserQueryParam - параметр, которым администратор выбирает клиента.
const UserQueryParam = "korisnikId"

// Service описывает интерфейс получения покупок.
type Service interface {
	ListPurchases(ctx context.Context, p models.Principal, userID string) ([]models.PurchasedCourse, error)
}

// Handler обрабатывает GET /klijent/kupljeni-kursevi.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Купленные курсы
// @Description Клиент получает свои покупки. Администратор может передать korisnikId.
// @Tags Purchases
// @Produce json
// @Param korisnikId query string false "ID клиента (только для администратора)"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /klijent/kupljeni-kursevi [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.purchases"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	p := middlewarectx.PrincipalFrom(r.Context())
	purchases, err := h.service.ListPurchases(r.Context(), p, r.URL.Query().Get(UserQueryParam))
	if err != nil {
		log.Error("failed to list purchases", sl.Principal(p), sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("purchases listed", slog.Int("count", len(purchases)))
	render.JSON(w, r, response.OK(purchases))
}
