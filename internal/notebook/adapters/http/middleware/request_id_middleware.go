package middleware

import (
	"github.com/gofiber/fiber/v3"

	"notebook/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware создает промежуточное ПО, которое присваивает запросу идентификатор.
// Корректный идентификатор из входящего заголовка сохраняется, иначе генерируется новый.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := logger.NormalizeRequestID(ctx.Get(HeaderRequestID))

		ctx.Locals(LocalUserContext, logger.NewRequestIDContext(ctx.Context(), requestID))
		ctx.Set(HeaderRequestID, requestID)

		return ctx.Next()
	}
}
