package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notebook/internal/notebook/adapters/http/dto"
	"notebook/internal/notebook/adapters/http/middleware"
	"notebook/pkg/logger"
)

// Pinger проверяет доступность зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler обслуживает служебные маршруты.
type SystemHandler struct {
	db Pinger
}

// NewSystemHandler создает обработчик служебных маршрутов.
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db}
}

// Me возвращает учетную запись текущей сессии.
func (h *SystemHandler) Me(ctx fiber.Ctx) error {
	account, ok := middleware.Account(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}
	return sendJSON(ctx, fiber.StatusOK, dto.AccountResponse{Account: account})
}

// Health проверяет соединение с базой данных.
func (h *SystemHandler) Health(ctx fiber.Ctx) error {
	userCtx := middleware.UserContext(ctx)

	if h.db != nil {
		if err := h.db.Ping(userCtx); err != nil {
			logger.Log(userCtx).Error(userCtx, "health check failed", zap.Error(err))
			return sendJSON(ctx, fiber.StatusServiceUnavailable, fiber.Map{"status": "unavailable"})
		}
	}

	return sendJSON(ctx, fiber.StatusOK, fiber.Map{"status": "ok"})
}
