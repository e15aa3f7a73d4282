package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notebook/internal/notebook/domain/entities"
	"notebook/internal/notebook/ports/api"
	"notebook/internal/notebook/ports/services"
	"notebook/pkg/logger"
)

// Константы сессионного промежуточного ПО.
const (
	DefaultSessionCookie = "session_token"
	HeaderSessionToken   = "X-Session-Token"

	LogSessionMiddleware = "session middleware"
	LogNoSession         = "no active session"
	LogSessionFailed     = "failed to read session"
	LogResolveFailed     = "failed to resolve account"

	ErrorUnauthorized   = "Unauthorized"
	ErrorInternalServer = "Internal server error"

	bearerPrefix = "Bearer "
)

// NewSessionMiddleware создает промежуточное ПО, которое читает сессию запроса
// и сопоставляет ее учетной записи. Без сессии запрос завершается ответом 401.
func NewSessionMiddleware(provider services.SessionProvider, accounts api.AccountUseCase, cookieName string) fiber.Handler {
	if cookieName == "" {
		cookieName = DefaultSessionCookie
	}

	return func(ctx fiber.Ctx) error {
		requestCtx := UserContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "session"))
		log.Debug(requestCtx, LogSessionMiddleware)

		creds := credentials(ctx, cookieName)
		if creds.BearerToken == "" && creds.SessionToken == "" {
			log.Debug(requestCtx, LogNoSession)
			return respond(ctx, fiber.StatusUnauthorized, ErrorUnauthorized)
		}

		identity, err := provider.Session(requestCtx, creds)
		if err != nil {
			log.Error(requestCtx, LogSessionFailed, zap.Error(err))
			return respond(ctx, fiber.StatusInternalServerError, ErrorInternalServer)
		}
		if identity == nil {
			log.Debug(requestCtx, LogNoSession)
			return respond(ctx, fiber.StatusUnauthorized, ErrorUnauthorized)
		}

		account, err := accounts.Resolve(requestCtx, identity)
		if err != nil {
			if errors.Is(err, entities.ErrUnauthenticated) {
				return respond(ctx, fiber.StatusUnauthorized, ErrorUnauthorized)
			}
			log.Error(requestCtx, LogResolveFailed, zap.Error(err))
			return respond(ctx, fiber.StatusInternalServerError, ErrorInternalServer)
		}

		ctx.Locals(LocalAccount, account)
		return ctx.Next()
	}
}

func credentials(ctx fiber.Ctx, cookieName string) services.Credentials {
	var creds services.Credentials

	if header := ctx.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, bearerPrefix) {
		creds.BearerToken = strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}

	creds.SessionToken = ctx.Cookies(cookieName)
	if creds.SessionToken == "" {
		creds.SessionToken = ctx.Get(HeaderSessionToken)
	}

	return creds
}

func respond(ctx fiber.Ctx, status int, message string) error {
	return ctx.Status(status).JSON(fiber.Map{"error": message})
}
