package repositories

import (
	"context"

	"notebook/internal/notebook/domain/entities"
)

// NoteFilter - необязательные условия выборки заметок. Пустое поле не ограничивает выборку.
type NoteFilter struct {
	Search string
	Tag    string
}

// NoteRepository определяет интерфейс для работы с репозиторием заметок.
// Все мутирующие операции выполняются одним запросом с условием на владельца.
type NoteRepository interface {
	// GetByID возвращает nil, nil, если заметки нет.
	GetByID(ctx context.Context, id int64) (*entities.Note, error)

	Create(ctx context.Context, ownerID int64, fields entities.NoteFields) (*entities.Note, error)

	// Update возвращает entities.ErrNotFoundOrForbidden, если заметки нет или владелец другой.
	Update(ctx context.Context, id, ownerID int64, fields entities.NoteFields) (*entities.Note, error)

	UpdateTags(ctx context.Context, id, ownerID int64, tags []string) error

	// Delete возвращает удаленную запись.
	Delete(ctx context.Context, id, ownerID int64) (*entities.Note, error)

	// List возвращает страницу заметок и общее количество подходящих под фильтр.
	List(ctx context.Context, ownerID int64, filter NoteFilter, limit, offset int) ([]*entities.Note, int, error)

	// TagLists возвращает сырые JSON-списки тегов всех заметок владельца.
	TagLists(ctx context.Context, ownerID int64) ([]string, error)
}
