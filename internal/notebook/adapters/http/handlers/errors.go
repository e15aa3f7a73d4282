// Package handlers содержит HTTP-обработчики сервиса заметок.
package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"notebook/internal/notebook/adapters/http/dto"
	"notebook/internal/notebook/domain/entities"
)

// Сообщения ответов об ошибках.
const (
	ErrMsgUnauthorized       = "Unauthorized"
	ErrMsgNotFound           = "Note not found or you don't have permission"
	ErrMsgInvalidPayload     = "Invalid payload"
	ErrMsgInvalidNoteID      = "Invalid note id"
	ErrMsgInvalidRequestBody = "Invalid request body"
	ErrMsgUploadFailed       = "Failed to upload image"
	ErrMsgInternal           = "Internal server error"
)

// HeaderRefresh сообщает клиенту, что список заметок устарел.
const (
	HeaderRefresh = "X-Notebook-Refresh"
	RefreshList   = "list"
)

func sendError(ctx fiber.Ctx, status int, message string) error {
	if err := ctx.Status(status).JSON(dto.ErrorResponse{Error: message}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func sendJSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// handleError отображает доменные ошибки на HTTP-статусы.
func handleError(ctx fiber.Ctx, err error) error {
	var validationErr *entities.ValidationError
	var rejection *entities.RejectionError

	switch {
	case errors.As(err, &validationErr):
		return sendJSON(ctx, fiber.StatusUnprocessableEntity, dto.ValidationErrorResponse{Errors: validationErr.Fields})
	case errors.Is(err, entities.ErrUnauthenticated):
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	case errors.Is(err, entities.ErrNotFoundOrForbidden):
		return sendError(ctx, fiber.StatusNotFound, ErrMsgNotFound)
	case errors.As(err, &rejection):
		return sendError(ctx, fiber.StatusBadRequest, rejection.Reason)
	case errors.Is(err, entities.ErrInvalidPayload):
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidPayload)
	case errors.Is(err, entities.ErrStorageConfig), errors.Is(err, entities.ErrStorageWrite):
		return sendError(ctx, fiber.StatusBadGateway, ErrMsgUploadFailed)
	default:
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
	}
}
