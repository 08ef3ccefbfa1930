// Package entitlement определяет, видит ли принципал защищённые поля курса
// (ссылки на видео уроков), и вырезает их при отсутствии доступа.
package entitlement

import (
	"context"
	"fmt"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

// PurchaseChecker проверяет наличие покупки курса пользователем.
type PurchaseChecker interface {
	HasPurchase(ctx context.Context, userID, courseID string) (bool, error)
}

// Entitlement - результат проверки доступа к содержимому курса.
type Entitlement struct {
	FullAccess bool
}

// Resolver вычисляет доступ к курсу. Результат не кешируется.
type Resolver struct {
	purchases PurchaseChecker
}

// NewResolver создаёт Resolver.
func NewResolver(purchases PurchaseChecker) *Resolver {
	return &Resolver{purchases: purchases}
}

// Resolve возвращает полный доступ, если принципал аутентифицирован и
// является владельцем курса либо купил его. Владелец проверяется первым,
// без обращения к хранилищу.
func (r *Resolver) Resolve(ctx context.Context, p models.Principal, course models.Course) (Entitlement, error) {
	const op = "entitlement.Resolve"

	if p.IsAnonymous() {
		return Entitlement{}, nil
	}
	if course.EducatorID != "" && course.EducatorID == p.SubjectID {
		return Entitlement{FullAccess: true}, nil
	}

	bought, err := r.purchases.HasPurchase(ctx, p.SubjectID, course.ID)
	if err != nil {
		return Entitlement{}, fmt.Errorf("%s: %w", op, err)
	}
	return Entitlement{FullAccess: bought}, nil
}

// RedactLessons возвращает копию уроков. Без полного доступа поле Video
// очищается у всех уроков; порядок и остальные поля сохраняются.
func RedactLessons(lessons []models.Lesson, fullAccess bool) []models.Lesson {
	out := make([]models.Lesson, len(lessons))
	copy(out, lessons)
	if fullAccess {
		return out
	}
	for i := range out {
		out[i].Video = nil
	}
	return out
}
