// Package api определяет основные порты сервиса заметок.
package api

import (
	"context"

	"notebook/internal/notebook/domain/entities"
)

// AccountUseCase сопоставляет внешнюю identity внутренней учетной записи.
type AccountUseCase interface {
	Resolve(ctx context.Context, identity *entities.Identity) (*entities.Account, error)
}
