package access

import (
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/apperr"
)

// Decision - результат проверки политики.
type Decision int

const (
	// DenyForbidden - роль не допускает действие.
	DenyForbidden Decision = iota
	// DenyUnauthenticated - действие требует входа.
	DenyUnauthenticated
	// Allow - действие разрешено.
	Allow
)

// Allowed сообщает, что решение разрешающее.
func (d Decision) Allowed() bool {
	return d == Allow
}

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "deny_unauthenticated"
	default:
		return "deny_forbidden"
	}
}

// Err переводит запрет в ошибку прикладной таксономии. Для Allow - nil.
func (d Decision) Err() error {
	switch d {
	case Allow:
		return nil
	case DenyUnauthenticated:
		return apperr.Unauthenticated("authentication required")
	default:
		return apperr.Forbidden("access denied")
	}
}
