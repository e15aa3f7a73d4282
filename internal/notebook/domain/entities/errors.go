package entities

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Доменные ошибки. Вместе с ValidationError образуют все варианты отказа операций.
var (
	ErrUnauthenticated     = errors.New("user not authenticated")
	ErrNotFoundOrForbidden = errors.New("note not found or you don't have permission")
	ErrInvalidPayload      = errors.New("invalid payload")
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountExists       = errors.New("account already exists")
	ErrStorageConfig       = errors.New("storage configuration is missing")
	ErrStorageWrite        = errors.New("failed to write to storage")
	ErrImageRejected       = errors.New("image rejected")
)

// ValidationError содержит сообщения об ошибках по полям формы.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError создает пустую ошибку валидации.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add добавляет сообщение для поля.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// Empty сообщает, что ошибок нет.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// RejectionError объясняет, почему файл изображения не принят.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrImageRejected).
func (e *RejectionError) Unwrap() error {
	return ErrImageRejected
}
