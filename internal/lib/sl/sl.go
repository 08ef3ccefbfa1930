// Package sl содержит вспомогательные атрибуты для логгера slog.
package sl

import (
	"log/slog"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

// Err возвращает slog.Attr с ключом "error".
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Principal группирует поля принципала запроса.
func Principal(p models.Principal) slog.Attr {
	if p.IsAnonymous() {
		return slog.String("principal", "anonymous")
	}
	return slog.Group("principal",
		slog.String("id", p.SubjectID),
		slog.String("role", p.Role.String()),
	)
}
