// Package services определяет интерфейсы внешних сервисов.
package services

import (
	"context"

	"notebook/internal/notebook/domain/entities"
)

// Credentials - данные сессии из входящего запроса.
type Credentials struct {
	BearerToken  string
	SessionToken string
}

// SessionProvider определяет границу с внешним сервисом аутентификации.
type SessionProvider interface {
	// Session возвращает nil, nil, если сессии нет или она недействительна.
	Session(ctx context.Context, creds Credentials) (*entities.Identity, error)
}
