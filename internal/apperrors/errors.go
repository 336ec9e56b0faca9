package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind - категория ошибки, единственное, на что смотрят обработчики и клиент.
// Никакого сопоставления по тексту сообщений.
type Kind string

const (
	KindNotFound    Kind = "not_found"
	KindValidation  Kind = "validation"
	KindConflict    Kind = "conflict"
	KindUnavailable Kind = "unavailable"
	KindUnknown     Kind = "unknown"
)

// Error - ошибка с категорией и человекочитаемой деталью
type Error struct {
	Kind   Kind   `json:"kind"`
	Detail string `json:"detail"`
	Err    error  `json:"-"`
}

// Error реализует интерфейс error
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Unwrap позволяет использовать errors.Is и errors.As
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus возвращает HTTP-статус, соответствующий категории
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(detail string) *Error {
	return &Error{Kind: KindNotFound, Detail: detail}
}

func Validation(detail string) *Error {
	return &Error{Kind: KindValidation, Detail: detail}
}

func Conflict(detail string) *Error {
	return &Error{Kind: KindConflict, Detail: detail}
}

func Unavailable(detail string) *Error {
	return &Error{Kind: KindUnavailable, Detail: detail}
}

// Wrap оборачивает произвольную ошибку с категорией
func Wrap(err error, kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// KindOf извлекает категорию из ошибки; для посторонних ошибок - unknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound - проверка на "не найдено" без разбора текста
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
