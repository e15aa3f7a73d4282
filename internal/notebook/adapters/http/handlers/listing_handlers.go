package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notebook/internal/notebook/adapters/http/dto"
	"notebook/internal/notebook/adapters/http/middleware"
	"notebook/internal/notebook/domain/entities"
	"notebook/internal/notebook/ports/api"
	"notebook/pkg/logger"
)

// Сообщения логирования.
const (
	LogHandlerListNotes = "handling list notes request"
	LogHandlerListTags  = "handling list tags request"
)

// ListingHandler обрабатывает запросы чтения списка заметок.
type ListingHandler struct {
	listing api.ListingUseCase
}

// NewListingHandler создает новый экземпляр обработчика списка.
func NewListingHandler(listing api.ListingUseCase) *ListingHandler {
	return &ListingHandler{listing: listing}
}

// ListNotes возвращает страницу заметок вместе со счетчиками тегов.
func (h *ListingHandler) ListNotes(ctx fiber.Ctx) error {
	userCtx := middleware.UserContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "ListingHandler.ListNotes"))
	log.Debug(userCtx, LogHandlerListNotes)

	account, ok := middleware.Account(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	query := entities.ListQuery{
		Page:   parsePage(ctx.Query("page")),
		Search: ctx.Query("search"),
		Tag:    ctx.Query("tag"),
	}

	overview, err := h.listing.Overview(userCtx, account.ID, query)
	if err != nil {
		log.Error(userCtx, "failed to list notes", zap.Error(err))
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, overview)
}

// ListTags возвращает счетчики тегов учетной записи.
func (h *ListingHandler) ListTags(ctx fiber.Ctx) error {
	userCtx := middleware.UserContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "ListingHandler.ListTags"))
	log.Debug(userCtx, LogHandlerListTags)

	account, ok := middleware.Account(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	counts, err := h.listing.TagCounts(userCtx, account.ID)
	if err != nil {
		log.Error(userCtx, "failed to count tags", zap.Error(err))
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.TagsResponse{Tags: counts})
}

// parsePage возвращает 1 для пустого или нечислового значения.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
