// Package validation проверяет пользовательский ввод заметки до очистки и записи.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"notebook/internal/notebook/domain/entities"
)

// Ограничения полей заметки.
const (
	MaxTitleLength   = 200
	MaxContentLength = 10000
	MaxTagLength     = 50
	MaxTagCount      = 20
)

// NoteInput - поля формы заметки в том виде, в каком они пришли от пользователя.
type NoteInput struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Content string   `json:"content" validate:"required,max=10000"`
	Tags    []string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateNote возвращает *entities.ValidationError с сообщениями по полям или nil.
func ValidateNote(input NoteInput) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("failed to validate note: %w", err)
	}

	result := entities.NewValidationError()
	for _, fieldErr := range fieldErrors {
		field := rootField(fieldErr.Namespace())
		result.Add(field, message(field, fieldErr))
	}
	return result
}

// rootField превращает "NoteInput.tags[3]" в "tags".
func rootField(namespace string) string {
	_, field, found := strings.Cut(namespace, ".")
	if !found {
		field = namespace
	}
	if idx := strings.IndexByte(field, '['); idx >= 0 {
		field = field[:idx]
	}
	return field
}

func message(field string, fieldErr validator.FieldError) string {
	switch field {
	case "title":
		if fieldErr.Tag() == "required" {
			return "Title is required"
		}
		return fmt.Sprintf("Title must be less than %d characters", MaxTitleLength)
	case "content":
		if fieldErr.Tag() == "required" {
			return "Content is required"
		}
		return fmt.Sprintf("Content must be less than %d characters", MaxContentLength)
	}

	// tags
	if fieldErr.Kind() == reflect.Slice {
		return fmt.Sprintf("Array must contain at most %d element(s)", MaxTagCount)
	}
	if fieldErr.Tag() == "min" {
		return "String must contain at least 1 character(s)"
	}
	return fmt.Sprintf("String must contain at most %d character(s)", MaxTagLength)
}
