// Package payment содержит логику покупок: список купленных курсов,
// создание страницы оплаты и запись покупок по событию провайдера.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/apperr"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/metrics"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/rabbitmq"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/sl"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/paymentprovider"
)

// Repository определяет методы хранилища, нужные для покупок.
type Repository interface {
	GetCoursesByIDs(ctx context.Context, ids []string) ([]models.Course, error)
	HasPurchase(ctx context.Context, userID, courseID string) (bool, error)
	ListPurchasedCourses(ctx context.Context, userID string) ([]models.PurchasedCourse, error)
	RecordPurchases(ctx context.Context, userID, sessionID string, courseIDs []string) ([]string, error)
}

// Provider создаёт сессии оплаты у платёжного провайдера.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params paymentprovider.SessionRequest) (*paymentprovider.Session, error)
}

// EventPublisher публикует доменные события в брокер.
type EventPublisher interface {
	Publish(ctx context.Context, key string, message any) error
}

// PaymentService реализует логику покупок курсов.
type PaymentService struct {
	repo      Repository
	provider  Provider
	publisher EventPublisher
	log       *slog.Logger
	now       func() time.Time
}

// New создаёт PaymentService. publisher может быть nil: тогда события
// только пишутся в лог.
func New(repo Repository, provider Provider, publisher EventPublisher, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:      repo,
		provider:  provider,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// ListPurchases возвращает купленные курсы. Клиент видит только свои
// покупки; администратор может указать userID или получить все покупки.
func (s *PaymentService) ListPurchases(ctx context.Context, p models.Principal, userID string) ([]models.PurchasedCourse, error) {
	const op = "services.payment.ListPurchases"

	switch {
	case p.Is(models.RoleClient):
		userID = p.SubjectID
	case p.Is(models.RoleAdmin):
		if userID != "" && uuid.Validate(userID) != nil {
			return nil, apperr.Validation("korisnikId must be a valid uuid")
		}
	case p.IsAnonymous():
		return nil, apperr.Unauthenticated("authentication required")
	default:
		return nil, apperr.Forbidden("insufficient role")
	}

	purchases, err := s.repo.ListPurchasedCourses(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}
	if purchases == nil {
		purchases = []models.PurchasedCourse{}
	}
	return purchases, nil
}

// Checkout создаёт страницу оплаты для курсов корзины и возвращает её адрес.
// Курсы, которые клиент уже купил, в оплату не попадают.
func (s *PaymentService) Checkout(ctx context.Context, p models.Principal, req models.CheckoutRequest) (string, error) {
	const op = "services.payment.Checkout"

	if len(req.Items) == 0 {
		return "", apperr.Validation("cart is empty")
	}
	ids := make([]string, 0, len(req.Items))
	seen := make(map[string]struct{}, len(req.Items))
	for _, item := range req.Items {
		if uuid.Validate(item.ID) != nil {
			return "", apperr.Validation("cart contains an invalid course id")
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		ids = append(ids, item.ID)
	}

	courses, err := s.repo.GetCoursesByIDs(ctx, ids)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}
	if len(courses) == 0 {
		return "", apperr.Validation("courses not found")
	}

	params := paymentprovider.SessionRequest{UserID: p.SubjectID}
	for _, c := range courses {
		owned, err := s.repo.HasPurchase(ctx, p.SubjectID, c.ID)
		if err != nil {
			return "", apperr.Internal(fmt.Errorf("%s: %w", op, err))
		}
		if owned {
			continue
		}
		params.CourseIDs = append(params.CourseIDs, c.ID)
		params.Items = append(params.Items, paymentprovider.LineItem{
			Name:       c.Title,
			Image:      c.CoverImage,
			UnitAmount: paymentprovider.ToCents(c.Price),
		})
	}
	if len(params.Items) == 0 {
		return "", apperr.Conflict("all courses in the cart are already purchased")
	}

	session, err := s.provider.CreateCheckoutSession(ctx, params)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}

	metrics.CheckoutSessionsTotal.Inc()
	s.log.Info("checkout session created",
		slog.String("session_id", session.ID),
		slog.String("user_id", p.SubjectID),
		slog.Int("courses", len(params.CourseIDs)),
	)
	return session.URL, nil
}

// ProcessCheckoutCompleted записывает покупки по завершённой оплате.
// Повторная доставка того же события новых записей не создаёт, а событие
// о покупке содержит только курсы, записанные этим вызовом.
func (s *PaymentService) ProcessCheckoutCompleted(ctx context.Context, ev models.CheckoutCompleted) (int, error) {
	const op = "services.payment.ProcessCheckoutCompleted"

	if uuid.Validate(ev.UserID) != nil {
		return 0, apperr.Validation("event has an invalid user id")
	}
	ids := make([]string, 0, len(ev.CourseIDs))
	for _, id := range ev.CourseIDs {
		if uuid.Validate(id) == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return 0, apperr.Validation("event has no valid course ids")
	}

	recorded, err := s.repo.RecordPurchases(ctx, ev.UserID, ev.SessionID, ids)
	if err != nil {
		return 0, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}
	n := len(recorded)
	metrics.PurchasesRecordedTotal.Add(float64(n))

	log := s.log.With(slog.String("session_id", ev.SessionID), slog.String("user_id", ev.UserID))
	log.Info("purchases recorded", slog.Int("new", n))
	if n == 0 {
		return 0, nil
	}

	event := models.PurchaseEvent{
		UserID:    ev.UserID,
		CourseIDs: recorded,
		SessionID: ev.SessionID,
		At:        s.now().UTC(),
	}
	if s.publisher == nil {
		log.Info("broker disabled, purchase event not published")
		return n, nil
	}
	if err := s.publisher.Publish(ctx, rabbitmq.RoutingKeyPurchaseCompleted, event); err != nil {
		log.Error("failed to publish purchase event", sl.Err(err))
	}
	return n, nil
}
