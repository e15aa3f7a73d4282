package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notebook/internal/notebook/adapters/http/dto"
	"notebook/internal/notebook/adapters/http/middleware"
	"notebook/internal/notebook/ports/api"
	"notebook/pkg/logger"
)

// Сообщения логирования.
const (
	LogHandlerCreateNote = "handling create note request"
	LogHandlerGetNote    = "handling get note request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"
	LogHandlerRemoveTag  = "handling remove tag request"
)

// NotesHandler обрабатывает запросы изменения заметок.
type NotesHandler struct {
	notes api.NoteUseCase
}

// NewNotesHandler создает новый экземпляр обработчика заметок.
func NewNotesHandler(notes api.NoteUseCase) *NotesHandler {
	return &NotesHandler{notes: notes}
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *NotesHandler) CreateNote(ctx fiber.Ctx) error {
	userCtx := middleware.UserContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "NotesHandler.CreateNote"))
	log.Debug(userCtx, LogHandlerCreateNote)

	account, ok := middleware.Account(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	input, err := bindNoteInput(ctx)
	if err != nil {
		log.Debug(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	note, err := h.notes.CreateNote(userCtx, account.ID, input)
	if err != nil {
		log.Debug(userCtx, "failed to create note", zap.Error(err))
		return handleError(ctx, err)
	}

	ctx.Set(HeaderRefresh, RefreshList)
	return sendJSON(ctx, fiber.StatusCreated, dto.NoteResponse{Note: note})
}

// GetNote обрабатывает запрос на получение заметки по ID.
func (h *NotesHandler) GetNote(ctx fiber.Ctx) error {
	userCtx := middleware.UserContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "NotesHandler.GetNote"))
	log.Debug(userCtx, LogHandlerGetNote)

	account, ok := middleware.Account(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	noteID, ok := parseNoteID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidNoteID)
	}

	note, err := h.notes.GetNote(userCtx, noteID, account.ID)
	if err != nil {
		log.Debug(userCtx, "failed to get note", zap.Error(err))
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.NoteResponse{Note: note})
}

// UpdateNote обрабатывает запрос на изменение заметки.
func (h *NotesHandler) UpdateNote(ctx fiber.Ctx) error {
	userCtx := middleware.UserContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "NotesHandler.UpdateNote"))
	log.Debug(userCtx, LogHandlerUpdateNote)

	account, ok := middleware.Account(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	noteID, ok := parseNoteID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidNoteID)
	}

	input, err := bindNoteInput(ctx)
	if err != nil {
		log.Debug(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	note, err := h.notes.UpdateNote(userCtx, noteID, account.ID, input)
	if err != nil {
		log.Debug(userCtx, "failed to update note", zap.Error(err))
		return handleError(ctx, err)
	}

	ctx.Set(HeaderRefresh, RefreshList)
	return sendJSON(ctx, fiber.StatusOK, dto.NoteResponse{Note: note})
}

// DeleteNote обрабатывает запрос на удаление заметки.
func (h *NotesHandler) DeleteNote(ctx fiber.Ctx) error {
	userCtx := middleware.UserContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "NotesHandler.DeleteNote"))
	log.Debug(userCtx, LogHandlerDeleteNote)

	account, ok := middleware.Account(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	noteID, ok := parseNoteID(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidNoteID)
	}

	if err := h.notes.DeleteNote(userCtx, noteID, account.ID); err != nil {
		log.Debug(userCtx, "failed to delete note", zap.Error(err))
		return handleError(ctx, err)
	}

	ctx.Set(HeaderRefresh, RefreshList)
	return sendJSON(ctx, fiber.StatusOK, fiber.Map{"ok": true})
}

// RemoveTag обрабатывает запрос на удаление тега из заметки.
func (h *NotesHandler) RemoveTag(ctx fiber.Ctx) error {
	userCtx := middleware.UserContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "NotesHandler.RemoveTag"))
	log.Debug(userCtx, LogHandlerRemoveTag)

	account, ok := middleware.Account(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	var req dto.RemoveTagRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidPayload)
	}

	remaining, err := h.notes.RemoveTag(userCtx, int64(req.NoteID), req.Tag, account.ID)
	if err != nil {
		log.Debug(userCtx, "failed to remove tag", zap.Error(err))
		return handleError(ctx, err)
	}

	ctx.Set(HeaderRefresh, RefreshList)
	return sendJSON(ctx, fiber.StatusOK, dto.RemoveTagResponse{OK: true, Tags: remaining})
}

// bindNoteInput читает поля заметки из JSON-тела или из формы.
func bindNoteInput(ctx fiber.Ctx) (api.NoteInput, error) {
	if strings.HasPrefix(ctx.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		var req dto.NoteRequest
		if err := ctx.Bind().Body(&req); err != nil {
			return api.NoteInput{}, err
		}
		return req.Input(), nil
	}

	return api.NoteInput{
		Title:     ctx.FormValue("title"),
		Content:   ctx.FormValue("content"),
		ImagesRaw: ctx.FormValue("images"),
		TagsRaw:   ctx.FormValue("tags"),
	}, nil
}

func parseNoteID(ctx fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
