// Package models содержит доменные структуры приложения: пользователей,
// курсы с уроками, покупки и прогресс, а также типы входных данных
// HTTP-запросов до их валидации.
package models

import (
	"errors"
	"fmt"
)

// ErrUnknownRole возвращается при разборе строки, не являющейся известной ролью.
var ErrUnknownRole = errors.New("unknown role")

// Role - роль пользователя. Множество ролей закрыто: CLIENT, EDUCATOR, ADMIN.
type Role string

const (
	// RoleClient - покупатель курсов.
	RoleClient Role = "CLIENT"
	// RoleEducator - автор курсов.
	RoleEducator Role = "EDUCATOR"
	// RoleAdmin - администратор.
	RoleAdmin Role = "ADMIN"
)

// Roles возвращает все роли системы.
func Roles() []Role {
	return []Role{RoleClient, RoleEducator, RoleAdmin}
}

// ParseRole разбирает строковое представление роли.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// Valid сообщает, входит ли роль в закрытое множество ролей.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleEducator, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
