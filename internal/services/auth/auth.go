// Package auth содержит логику регистрации, входа и восстановления пароля.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/apperr"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/password"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/sl"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/storage"
)

const resetTokenBytes = 32

// dummyHash сравнивается с паролем при неизвестном email, чтобы время
// ответа не выдавало существование учётной записи.
var dummyHash = sync.OnceValue(func() string {
	h, err := password.GetHash("not-a-real-password")
	if err != nil {
		return ""
	}
	return h
})

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByResetToken(ctx context.Context, token string) (models.User, error)
	SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error
	ResetPassword(ctx context.Context, userID, passwordHash string) error
}

// TokenIssuer выпускает учётные данные сессии.
type TokenIssuer interface {
	Issue(subjectID string, role models.Role, email string) (string, error)
}

// Mailer отправляет письмо со ссылкой для смены пароля.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, token string) error
}

// LoginResult - выпущенный токен и пользователь без хеша пароля.
type LoginResult struct {
	Token string
	User  models.User
}

// Service отвечает за регистрацию, вход и сброс пароля.
type Service struct {
	users    UserRepository
	tokens   TokenIssuer
	mailer   Mailer
	resetTTL time.Duration
	log      *slog.Logger
	now      func() time.Time
	compare  func(hash, plain string) error
}

// NewService создает новый экземпляр Service.
func NewService(users UserRepository, tokens TokenIssuer, mailer Mailer, resetTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		mailer:   mailer,
		resetTTL: resetTTL,
		log:      log,
		now:      time.Now,
		compare:  password.CompareHash,
	}
}

// NormalizeEmail приводит email к виду, в котором он хранится.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register создаёт клиента. Роль всегда CLIENT независимо от запроса.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	const op = "services.auth.Register"

	email := NormalizeEmail(req.Email)
	if email == "" || strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return models.User{}, apperr.Validation("all fields are required")
	}
	if err := password.Validate(req.Password); err != nil {
		return models.User{}, apperr.Wrap(apperr.KindValidation, "password must be at least 6 characters long", err)
	}

	hash, err := password.GetHash(req.Password)
	if err != nil {
		return models.User{}, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}

	user, err := s.users.CreateUser(ctx, models.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleClient,
	})
	if errors.Is(err, storage.ErrEmailTaken) {
		return models.User{}, apperr.Wrap(apperr.KindConflict, "email already in use", err)
	}
	if err != nil {
		return models.User{}, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}

	s.log.Info("user registered", slog.String("user_id", user.ID))
	return user, nil
}

// Login проверяет пароль и выпускает токен. Неизвестный email и неверный
// пароль неразличимы для клиента.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (LoginResult, error) {
	const op = "services.auth.Login"

	email := NormalizeEmail(req.Login())
	if email == "" || req.Password == "" {
		return LoginResult{}, apperr.Validation("email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		_ = s.compare(dummyHash(), req.Password)
		return LoginResult{}, apperr.Unauthenticated("invalid credentials")
	}
	if err != nil {
		return LoginResult{}, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}

	if err := s.compare(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return LoginResult{}, apperr.Unauthenticated("invalid credentials")
		}
		return LoginResult{}, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}

	token, err := s.tokens.Issue(user.ID, user.Role, user.Email)
	if err != nil {
		return LoginResult{}, apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}

	user.PasswordHash = ""
	return LoginResult{Token: token, User: user}, nil
}

// ForgotPassword выдаёт токен сброса и отправляет письмо. Для неизвестного
// email ничего не делает и не возвращает ошибку. Сбой отправки письма
// только логируется: ответ не должен отличаться от ответа для неизвестного email.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	const op = "services.auth.ForgotPassword"

	email = NormalizeEmail(email)
	if email == "" {
		return apperr.Validation("email is required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		s.log.Info("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}

	token, err := newResetToken()
	if err != nil {
		return apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}
	if err := s.users.SetResetToken(ctx, user.ID, token, s.now().Add(s.resetTTL)); err != nil {
		return apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}
	if err := s.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
		s.log.Error("failed to send reset mail", slog.String("op", op), slog.String("user_id", user.ID), sl.Err(err))
	}
	return nil
}

// ResetPassword устанавливает новый пароль по действующему токену сброса.
func (s *Service) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	const op = "services.auth.ResetPassword"

	if req.Token == "" {
		return apperr.Validation("token and new password are required")
	}
	if err := password.Validate(req.NewPassword); err != nil {
		return apperr.Wrap(apperr.KindValidation, "password must be at least 6 characters long", err)
	}

	user, err := s.users.GetUserByResetToken(ctx, req.Token)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.Validation("reset link is invalid")
	}
	if err != nil {
		return apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}
	if user.ResetTokenExpiry == nil || !s.now().Before(*user.ResetTokenExpiry) {
		return apperr.Validation("reset link has expired")
	}

	hash, err := password.GetHash(req.NewPassword)
	if err != nil {
		return apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}
	if err := s.users.ResetPassword(ctx, user.ID, hash); err != nil {
		return apperr.Internal(fmt.Errorf("%s: %w", op, err))
	}

	s.log.Info("password reset", slog.String("user_id", user.ID))
	return nil
}

func newResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
