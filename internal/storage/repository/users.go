package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/storage"
)

const userColumns = `id, first_name, last_name, email, password_hash, role,
	reset_token, reset_token_expiry, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	var role string
	var token sql.NullString
	var expiry sql.NullTime
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&role, &token, &expiry, &u.CreatedAt); err != nil {
		return models.User{}, err
	}
	u.Role = models.Role(role)
	if token.Valid {
		u.ResetToken = &token.String
	}
	if expiry.Valid {
		u.ResetTokenExpiry = &expiry.Time
	}
	return u, nil
}

// CreateUser сохраняет пользователя. Занятый email даёт storage.ErrEmailTaken.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const op = "storage.CreateUser"
	if err := ctxDone(ctx, op); err != nil {
		return models.User{}, err
	}

	query := `INSERT INTO users (first_name, last_name, email, password_hash, role)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + userColumns
	created, err := scanUser(s.DB.QueryRowContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.PasswordHash, user.Role.String()))
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrEmailTaken)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	const op = "storage.GetUserByEmail"
	return s.getUser(ctx, op, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// GetUserByID возвращает пользователя по идентификатору.
func (s *Storage) GetUserByID(ctx context.Context, id string) (models.User, error) {
	const op = "storage.GetUserByID"
	return s.getUser(ctx, op, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetUserByResetToken возвращает пользователя по токену сброса пароля.
func (s *Storage) GetUserByResetToken(ctx context.Context, token string) (models.User, error) {
	const op = "storage.GetUserByResetToken"
	return s.getUser(ctx, op, `SELECT `+userColumns+` FROM users WHERE reset_token = $1`, token)
}

func (s *Storage) getUser(ctx context.Context, op, query string, arg any) (models.User, error) {
	if err := ctxDone(ctx, op); err != nil {
		return models.User{}, err
	}
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsers возвращает всех пользователей, новые первыми.
func (s *Storage) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "storage.ListUsers"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// SetResetToken сохраняет токен сброса пароля и срок его действия.
func (s *Storage) SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error {
	const op = "storage.SetResetToken"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE users SET reset_token = $2, reset_token_expiry = $3 WHERE id = $1`,
		userID, token, expiry)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return expectAffected(res, op)
}

// ResetPassword устанавливает новый хеш пароля и очищает токен сброса.
func (s *Storage) ResetPassword(ctx context.Context, userID, passwordHash string) error {
	const op = "storage.ResetPassword"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE users SET password_hash = $2, reset_token = NULL, reset_token_expiry = NULL WHERE id = $1`,
		userID, passwordHash)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return expectAffected(res, op)
}

func expectAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}
