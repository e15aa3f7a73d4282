// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"notebook/internal/notebook/domain/entities"
)

// Ключи значений в Locals.
const (
	LocalUserContext = "userContext"
	LocalAccount     = "account"
)

// UserContext возвращает контекст запроса с request id.
func UserContext(ctx fiber.Ctx) context.Context {
	if userCtx, ok := ctx.Locals(LocalUserContext).(context.Context); ok {
		return userCtx
	}
	return ctx.Context()
}

// Account возвращает учетную запись, установленную NewSessionMiddleware.
func Account(ctx fiber.Ctx) (*entities.Account, bool) {
	account, ok := ctx.Locals(LocalAccount).(*entities.Account)
	return account, ok && account != nil
}
