// Package middlewarectx содержит HTTP middleware магазина: определение
// принципала запроса, проверку политики доступа, CSRF и ограничение частоты.
package middlewarectx

import (
	"context"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// PrincipalKey - ключ принципала в контексте.
const PrincipalKey Key = "principal"

// WithPrincipal кладёт принципала в контекст.
func WithPrincipal(ctx context.Context, p models.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

// PrincipalFrom достаёт принципала из контекста. Без него - анонимный.
func PrincipalFrom(ctx context.Context) models.Principal {
	p, ok := ctx.Value(PrincipalKey).(models.Principal)
	if !ok {
		return models.Anonymous()
	}
	return p
}
