// Package access реализует ролевую политику доступа к действиям API.
//
// Таблица решений хранится во встроенных model.conf и policy.csv (casbin) и
// проверяется при старте: каждый субъект - известная роль или ANONYMOUS,
// каждое действие известно и встречается в таблице хотя бы один раз.
package access

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/apperr"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/metrics"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/models"
)

// SubjectAnonymous - субъект таблицы для запросов без учётных данных.
const SubjectAnonymous = "ANONYMOUS"

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// ErrInvalidPolicy - таблица решений не прошла проверку.
var ErrInvalidPolicy = errors.New("invalid access policy")

// Policy вычисляет решения по таблице.
type Policy struct {
	enforcer *casbin.SyncedEnforcer
}

// New загружает встроенную таблицу решений.
func New() (*Policy, error) {
	return NewFromString(embeddedPolicy)
}

// NewFromString загружает таблицу решений в формате CSV.
func NewFromString(policy string) (*Policy, error) {
	const op = "access.New"

	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load casbin model: %w", op, err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create casbin enforcer: %w", op, err)
	}
	if err := loadPolicy(enforcer, policy); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Policy{enforcer: enforcer}, nil
}

// MustNew - как New, но паникует при ошибке. Встроенная таблица проверяется тестами.
func MustNew() *Policy {
	p, err := New()
	if err != nil {
		panic(err)
	}
	return p
}

func loadPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	covered := make(map[Action]bool)

	for n, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) != 3 || parts[0] != "p" {
			return fmt.Errorf("%w: line %d: expected \"p, subject, action\"", ErrInvalidPolicy, n+1)
		}

		subject, action := parts[1], Action(parts[2])
		if !validSubject(subject) {
			return fmt.Errorf("%w: line %d: unknown subject %q", ErrInvalidPolicy, n+1, subject)
		}
		if !action.Valid() {
			return fmt.Errorf("%w: line %d: unknown action %q", ErrInvalidPolicy, n+1, action)
		}

		if _, err := enforcer.AddPolicy(subject, action.String()); err != nil {
			return fmt.Errorf("failed to add policy %v: %w", parts[1:], err)
		}
		covered[action] = true
	}

	for _, a := range Actions() {
		if !covered[a] {
			return fmt.Errorf("%w: action %q is not covered", ErrInvalidPolicy, a)
		}
	}
	return nil
}

func validSubject(s string) bool {
	if s == SubjectAnonymous {
		return true
	}
	_, err := models.ParseRole(s)
	return err == nil
}

func subjectOf(p models.Principal) string {
	if p.IsAnonymous() {
		return SubjectAnonymous
	}
	return p.Role.String()
}

// Decide возвращает решение для принципала и действия.
// Ошибка вычисления трактуется как запрет.
func (p *Policy) Decide(principal models.Principal, action Action) Decision {
	d := p.decide(principal, action)
	metrics.RecordAccessDecision(action.String(), d.String())
	return d
}

func (p *Policy) decide(principal models.Principal, action Action) Decision {
	allowed, err := p.enforcer.Enforce(subjectOf(principal), action.String())
	if err == nil && allowed {
		return Allow
	}
	if principal.IsAnonymous() {
		return DenyUnauthenticated
	}
	return DenyForbidden
}

// CheckOwner проверяет, что принципал - владелец курса. Несовпадение
// возвращает Forbidden, а не NotFound: существование курса не скрывается.
func CheckOwner(principal models.Principal, course models.Course) error {
	if principal.IsAnonymous() {
		return apperr.Unauthenticated("authentication required")
	}
	if course.EducatorID != principal.SubjectID {
		return apperr.Forbidden("only the course owner may modify it")
	}
	return nil
}
