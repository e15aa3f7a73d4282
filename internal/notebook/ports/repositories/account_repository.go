// Package repositories определяет интерфейсы хранилищ сервиса заметок.
package repositories

import (
	"context"

	"notebook/internal/notebook/domain/entities"
)

// AccountRepository определяет операции над учетными записями.
type AccountRepository interface {
	// FindByExternalID возвращает entities.ErrAccountNotFound, если записи нет.
	FindByExternalID(ctx context.Context, externalID string) (*entities.Account, error)

	FindByEmail(ctx context.Context, email string) (*entities.Account, error)

	// Create возвращает entities.ErrAccountExists при нарушении уникальности email или external_id.
	Create(ctx context.Context, account *entities.Account) (*entities.Account, error)
}
