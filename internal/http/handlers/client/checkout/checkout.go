// Package checkout реализует создание страницы оплаты для корзины клиента.
package checkout

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/middlewarectx"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/response"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/sl"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

// Service описывает интерфейс оформления заказа.
type Service interface {
	Checkout(ctx context.Context, p models.Principal, req models.CheckoutRequest) (string, error)
}

// Handler обрабатывает POST /klijent/checkout.
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
// @Summary Оплата корзины
// @Description Создаёт страницу оплаты и возвращает её адрес.
// @Tags Purchases
// @Accept json
// @Produce json
// @Param request body models.CheckoutRequest true "Корзина"
// @Success 200 {object} map[string]any
// @Failure 400 {object} response.ErrorResponse "Корзина пуста"
// @Failure 401 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Все курсы уже куплены"
// @Router /klijent/checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.checkout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CheckoutRequest
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
	url, err := h.service.Checkout(r.Context(), p, req)
	if err != nil {
		log.Error("checkout failed", sl.Principal(p), sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{"success": true, "url": url})
}
