// Package csrf выпускает и проверяет анти-CSRF токены.
//
// Токен имеет вид nonce.exp.sig, где nonce - случайные 16 байт, exp - unix-время
// окончания действия, sig - HMAC-SHA256 от "nonce.exp" на серверном секрете.
// Проверка только длины токена не используется.
package csrf

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultTTL - срок жизни токена по умолчанию.
	DefaultTTL = 2 * time.Hour
	// HeaderName - заголовок, в котором клиент возвращает токен.
	HeaderName = "x-csrf-token"

	nonceSize = 16
)

// ErrEmptySecret - секрет не задан.
var ErrEmptySecret = errors.New("csrf: secret is empty")

var encoding = base64.RawURLEncoding

// Guard выпускает и проверяет токены.
type Guard struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewGuard создаёт Guard. Пустой секрет - ошибка конфигурации.
func NewGuard(secret string, ttl time.Duration) (*Guard, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Guard{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue выпускает новый токен.
func (g *Guard) Issue() (string, error) {
	const op = "csrf.Issue"

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	payload := encoding.EncodeToString(nonce) + "." + strconv.FormatInt(g.now().Add(g.ttl).Unix(), 10)
	return payload + "." + g.sign(payload), nil
}

// Verify проверяет форму токена, срок действия и подпись.
func (g *Guard) Verify(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}

	nonce, err := encoding.DecodeString(parts[0])
	if err != nil || len(nonce) != nonceSize {
		return false
	}

	exp, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || !g.now().Before(time.Unix(exp, 0)) {
		return false
	}

	got, err := encoding.DecodeString(parts[2])
	if err != nil {
		return false
	}
	want, _ := encoding.DecodeString(g.sign(parts[0] + "." + parts[1]))
	return hmac.Equal(got, want)
}

func (g *Guard) sign(payload string) string {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(payload))
	return encoding.EncodeToString(mac.Sum(nil))
}
