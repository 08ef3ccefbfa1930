// Package webhook принимает уведомления платёжного провайдера.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/sl"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/paymentprovider"
)

// maxBodyBytes ограничивает размер тела уведомления.
const maxBodyBytes = 1 << 20

// Service описывает обработку завершённой оплаты.
type Service interface {
	ProcessCheckoutCompleted(ctx context.Context, ev models.CheckoutCompleted) (int, error)
}

// Handler обрабатывает POST /webhooks/checkout.
type Handler struct {
	log           *slog.Logger
	service       Service
	webhookSecret string // Секрет для проверки подписи
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, secret string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		webhookSecret: secret,
	}
}

// ServeHTTP godoc
// @Summary Вебхук платёжного провайдера
// @Description Проверяет подпись X-Signature и записывает покупки по оплаченной сессии.
// @Tags Purchases
// @Accept json
// @Success 200
// @Failure 400 "Некорректное событие"
// @Failure 401 "Неверная подпись"
// @Failure 500 "Ошибка записи покупок"
// @Router /webhooks/checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"
	log := h.log.With(slog.String("op", op))

	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	signature := r.Header.Get(paymentprovider.SignatureHeader)
	if !paymentprovider.VerifySignature(h.webhookSecret, body, signature) {
		log.Error("invalid or missing webhook signature")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var event paymentprovider.Event
	if err := json.Unmarshal(body, &event); err != nil {
		log.Error("failed to unmarshal webhook payload", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case paymentprovider.EventCheckoutCompleted, paymentprovider.EventAsyncPaymentSucceeded:
		completed, err := event.CheckoutCompleted()
		if errors.Is(err, paymentprovider.ErrNotPaid) {
			// Покупки запишутся по async_payment_succeeded.
			log.Info("checkout session is not paid yet",
				slog.String("event_id", event.ID),
				slog.String("session_id", event.Data.Object.ID),
				slog.String("payment_status", event.Data.Object.PaymentStatus),
			)
			break
		}
		if err != nil {
			log.Error("malformed checkout event", slog.String("event_id", event.ID), sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		n, err := h.service.ProcessCheckoutCompleted(r.Context(), completed)
		if err != nil {
			log.Error("failed to process webhook event", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		log.Info("checkout completed",
			slog.String("session_id", completed.SessionID),
			slog.Int("recorded", n),
		)
	default:
		log.Info("ignored webhook event", slog.String("event", event.Type))
	}

	w.WriteHeader(http.StatusOK)
}
