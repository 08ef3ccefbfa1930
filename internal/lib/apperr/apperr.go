// Package apperr описывает таксономию ошибок приложения.
//
// Сервисы возвращают *Error с видом ошибки (Kind), а HTTP-слой однозначно
// отображает вид в статус ответа. Сообщение Message показывается клиенту,
// вложенная ошибка Err - только в логах.
package apperr

import "errors"

// Kind - вид ошибки.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindInvalidCSRF
	KindNotFound
	KindConflict
)

const internalMessage = "internal server error"

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindInvalidCSRF:
		return "invalid_csrf"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error - ошибка приложения.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New создаёт ошибку указанного вида.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap создаёт ошибку указанного вида с вложенной причиной.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// Internal оборачивает непредвиденную ошибку хранилища или сериализации.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: internalMessage, Err: err}
}

func Validation(msg string) *Error      { return New(KindValidation, msg) }
func Unauthenticated(msg string) *Error { return New(KindUnauthenticated, msg) }
func Forbidden(msg string) *Error       { return New(KindForbidden, msg) }
func InvalidCSRF(msg string) *Error     { return New(KindInvalidCSRF, msg) }
func NotFound(msg string) *Error        { return New(KindNotFound, msg) }
func Conflict(msg string) *Error        { return New(KindConflict, msg) }

// KindOf возвращает вид ошибки; ошибки вне таксономии считаются внутренними.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// PublicMessage возвращает текст, допустимый для показа клиенту.
// Для внутренних ошибок текст причины никогда не раскрывается.
func PublicMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) || e.Kind == KindInternal {
		return internalMessage
	}
	return e.Message
}
