package paymentprovider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

const (
	// SignatureHeader - заголовок с подписью тела вебхука.
	SignatureHeader = "X-Signature"
	// EventCheckoutCompleted - покупатель завершил оформление. Деньги могут
	// прийти позже, если способ оплаты отложенный.
	EventCheckoutCompleted = "checkout.session.completed"
	// EventAsyncPaymentSucceeded - отложенная оплата по сессии прошла.
	EventAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"
	// PaymentStatusPaid - статус сессии, по которому выдаётся доступ.
	PaymentStatusPaid = "paid"
)

var (
	ErrMalformedEvent = errors.New("malformed checkout event")
	// ErrNotPaid - сессия завершена, но оплата ещё не поступила.
	ErrNotPaid = errors.New("checkout session is not paid")
)

// Event - уведомление провайдера.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID            string            `json:"id"`
			PaymentStatus string            `json:"payment_status"`
			Metadata      map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// Sign возвращает подпись тела: base64(HMAC-SHA256(secret, body)).
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature проверяет подпись вебхука.
func VerifySignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(secret, body)), []byte(signature))
}

// CheckoutCompleted извлекает из события пользователя и оплаченные курсы.
// Для неоплаченной сессии возвращается ErrNotPaid.
func (e Event) CheckoutCompleted() (models.CheckoutCompleted, error) {
	const op = "paymentprovider.Event.CheckoutCompleted"
	obj := e.Data.Object
	userID := obj.Metadata[MetadataUserID]
	if obj.ID == "" || userID == "" {
		return models.CheckoutCompleted{}, fmt.Errorf("%s: %w", op, ErrMalformedEvent)
	}

	var courseIDs []string
	if err := json.Unmarshal([]byte(obj.Metadata[MetadataCourseIDs]), &courseIDs); err != nil {
		return models.CheckoutCompleted{}, fmt.Errorf("%s: %w: %v", op, ErrMalformedEvent, err)
	}
	if len(courseIDs) == 0 {
		return models.CheckoutCompleted{}, fmt.Errorf("%s: %w", op, ErrMalformedEvent)
	}
	if obj.PaymentStatus != PaymentStatusPaid {
		return models.CheckoutCompleted{}, fmt.Errorf("%s: %w: %q", op, ErrNotPaid, obj.PaymentStatus)
	}

	return models.CheckoutCompleted{
		SessionID: obj.ID,
		UserID:    userID,
		CourseIDs: courseIDs,
	}, nil
}
