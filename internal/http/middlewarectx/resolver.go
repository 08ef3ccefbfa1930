package middlewarectx

import (
	"net/http"
	"strings"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

// CookieName - имя cookie с учётными данными сессии.
const CookieName = "auth"

// CredentialDecoder разбирает токен сессии.
type CredentialDecoder interface {
	Decode(token string) models.Principal
	Verify(token string) (models.Principal, error)
}

// Resolver определяет принципала запроса.
type Resolver struct {
	codec CredentialDecoder
}

// NewResolver создаёт Resolver.
func NewResolver(codec CredentialDecoder) *Resolver {
	return &Resolver{codec: codec}
}

// TokenFrom возвращает токен из заголовка Authorization: Bearer, а при его
// отсутствии - из cookie auth. Заголовок имеет приоритет.
func TokenFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")); token != "" {
			return token
		}
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// Resolve возвращает принципала; отсутствующий или негодный токен даёт анонимного.
func (res *Resolver) Resolve(r *http.Request) models.Principal {
	token := TokenFrom(r)
	if token == "" {
		return models.Anonymous()
	}
	return res.codec.Decode(token)
}

// ResolveStrict отличает отсутствие токена (анонимный, nil) от негодного
// токена (ошибка).
func (res *Resolver) ResolveStrict(r *http.Request) (models.Principal, error) {
	token := TokenFrom(r)
	if token == "" {
		return models.Anonymous(), nil
	}
	return res.codec.Verify(token)
}
