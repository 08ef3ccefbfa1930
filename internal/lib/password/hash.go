// Package password хеширует и проверяет пароли пользователей (bcrypt).
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinLength - минимальная длина пароля.
const MinLength = 6

var (
	// ErrTooShort - пароль короче MinLength.
	ErrTooShort = errors.New("password is too short")
	// ErrMismatch - пароль не соответствует хешу.
	ErrMismatch = errors.New("password does not match")
)

// Validate проверяет требования к новому паролю.
func Validate(password string) error {
	if len([]rune(password)) < MinLength {
		return fmt.Errorf("%w: at least %d characters required", ErrTooShort, MinLength)
	}
	return nil
}

// GetHash возвращает bcrypt-хеш пароля.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt-хеш с введённым паролем.
// Несовпадение возвращает ErrMismatch.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
