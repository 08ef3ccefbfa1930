// Package jwt реализует кодек учётных данных сессии: выпуск подписанного
// HS256-токена с идентификатором, email и ролью пользователя, а также его
// разбор в двух режимах - мягком (Decode) и строгом (Verify).
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

// DefaultTTL - срок жизни токена, если в конфиге не задан другой.
const DefaultTTL = 7 * 24 * time.Hour

var (
	// ErrInvalidCredential - токен повреждён, подписан другим ключом или истёк.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrEmptySecret - секрет подписи не задан.
	ErrEmptySecret = errors.New("jwt: signing secret is empty")
)

// Claims описывает данные, хранящиеся в токене.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"uloga"`
	jwt.RegisteredClaims
}

// Codec выпускает и проверяет токены сессии.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec создаёт кодек. Пустой секрет - ошибка конфигурации.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// TTL возвращает срок жизни выпускаемых токенов.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue выпускает токен для пользователя. Срок действия - момент выпуска плюс TTL.
func (c *Codec) Issue(subjectID string, role models.Role, email string) (string, error) {
	const op = "jwt.Issue"
	if subjectID == "" || !role.Valid() {
		return "", fmt.Errorf("%s: subject and valid role are required", op)
	}

	now := c.now()
	claims := Claims{
		Email: email,
		Role:  role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Verify строго проверяет токен: подпись, алгоритм, срок действия и состав
// claims. Любое нарушение возвращает ErrInvalidCredential.
func (c *Codec) Verify(tokenStr string) (models.Principal, error) {
	const op = "jwt.Verify"

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return models.Anonymous(), fmt.Errorf("%s: %w: %w", op, ErrInvalidCredential, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return models.Anonymous(), fmt.Errorf("%s: %w", op, ErrInvalidCredential)
	}

	role, err := models.ParseRole(claims.Role)
	if err != nil || claims.Subject == "" {
		return models.Anonymous(), fmt.Errorf("%s: %w: incomplete claims", op, ErrInvalidCredential)
	}

	return models.NewPrincipal(claims.Subject, role, claims.Email), nil
}

// Decode - мягкий вариант Verify: при любой ошибке возвращает анонимного
// принципала, неотличимого от запроса без токена.
func (c *Codec) Decode(tokenStr string) models.Principal {
	p, err := c.Verify(tokenStr)
	if err != nil {
		return models.Anonymous()
	}
	return p
}
