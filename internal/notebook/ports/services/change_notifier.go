package services

import "context"

// ChangeEvent описывает изменение заметок пользователя.
type ChangeEvent struct {
	AccountID int64  `json:"accountId"`
	NoteID    int64  `json:"noteId"`
	Action    string `json:"action"`
}

// Действия в ChangeEvent.
const (
	ActionCreated    = "created"
	ActionUpdated    = "updated"
	ActionDeleted    = "deleted"
	ActionTagRemoved = "tag_removed"
)

// ChangeNotifier публикует сигнал об изменении списка заметок.
type ChangeNotifier interface {
	NotifyChanged(ctx context.Context, event ChangeEvent) error
}
