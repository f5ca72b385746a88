package infrastructure

import (
	"errors"
	"fmt"
)

// ErrorKind классифицирует отказ удаленного вызова
type ErrorKind string

const (
	// ErrInvalidRequest - некорректный URL или параметры. При корректных
	// вызывающих недостижимо, сигнализирует о баге клиента.
	ErrInvalidRequest ErrorKind = "invalid_request"
	// ErrTransport - сеть недоступна или таймаут
	ErrTransport ErrorKind = "transport"
	// ErrUnexpectedStatus - HTTP ответ вне 2xx
	ErrUnexpectedStatus ErrorKind = "unexpected_status"
	// ErrDecoding - тело ответа не соответствует ожидаемой форме
	ErrDecoding ErrorKind = "decoding"
)

// APIError - типизированная ошибка удаленного вызова.
// Message всегда пригоден для показа пользователю.
type APIError struct {
	Kind    ErrorKind
	Status  int // HTTP статус, только для ErrUnexpectedStatus
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// UserMessage возвращает единственную человекочитаемую строку для
// lastError фетчера. Для не-APIError ошибок возвращает generic текст.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Something went wrong. Please try again."
}
