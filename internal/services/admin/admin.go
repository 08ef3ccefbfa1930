// Package admin содержит административные операции и отчёты о продажах.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/apperr"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/password"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/storage"
)

// Repository определяет методы хранилища для администрирования и отчётов.
type Repository interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	ListEducatorClients(ctx context.Context, educatorID string) ([]models.EducatorClient, error)
	CourseSales(ctx context.Context) ([]models.CourseSales, error)
	MonthlySales(ctx context.Context) ([]models.MonthlySales, error)
}

// Service реализует административную логику.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ListUsers возвращает всех пользователей без хешей паролей.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "services.admin.ListUsers"
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// CreateUser создаёт пользователя с явно указанной ролью.
func (s *Service) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	const op = "services.admin.CreateUser"

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || req.Role == "" {
		return models.User{}, apperr.Validation("email, password and role are required")
	}
	role, err := models.ParseRole(strings.ToUpper(strings.TrimSpace(req.Role)))
	if err != nil {
		return models.User{}, apperr.Wrap(apperr.KindValidation, "unknown role", err)
	}
	if err := password.Validate(req.Password); err != nil {
		return models.User{}, apperr.Wrap(apperr.KindValidation, "password must be at least 6 characters long", err)
	}

	hash, err := password.GetHash(req.Password)
	if err != nil {
		return models.User{}, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}
	user, err := s.repo.CreateUser(ctx, models.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if errors.Is(err, storage.ErrEmailTaken) {
		return models.User{}, apperr.Wrap(apperr.KindConflict, "email already in use", err)
	}
	if err != nil {
		return models.User{}, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}

	s.log.Info("user created by admin", slog.String("user_id", user.ID), slog.String("role", role.String()))
	user.PasswordHash = ""
	return user, nil
}

// Clients возвращает клиентов преподавателя. Администратор видит клиентов
// всех преподавателей.
func (s *Service) Clients(ctx context.Context, p models.Principal) ([]models.EducatorClient, error) {
	const op = "services.admin.Clients"

	var educatorID string
	switch {
	case p.Is(models.RoleEducator):
		educatorID = p.SubjectID
	case p.Is(models.RoleAdmin):
	case p.IsAnonymous():
		return nil, apperr.Unauthenticated("authentication required")
	default:
		return nil, apperr.Forbidden("insufficient role")
	}

	clients, err := s.repo.ListEducatorClients(ctx, educatorID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}
	return clients, nil
}

// SalesStats возвращает статистику продаж по курсам.
func (s *Service) SalesStats(ctx context.Context) ([]models.CourseSales, error) {
	const op = "services.admin.SalesStats"
	stats, err := s.repo.CourseSales(ctx)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}
	return stats, nil
}

// Report - сводный отчёт о продажах по месяцам.
type Report struct {
	Months  []models.MonthlySales `json:"meseci"`
	Revenue float64               `json:"ukupanPrihod"`
	Sold    int                   `json:"ukupnoProdato"`
}

// MonthlyReport возвращает продажи по месяцам с итогами.
func (s *Service) MonthlyReport(ctx context.Context) (Report, error) {
	const op = "services.admin.MonthlyReport"
	months, err := s.repo.MonthlySales(ctx)
	if err != nil {
		return Report{}, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}

	report := Report{Months: months}
	if report.Months == nil {
		report.Months = []models.MonthlySales{}
	}
	for _, m := range months {
		report.Revenue += m.Revenue
		report.Sold += m.Sold
	}
	return report, nil
}
