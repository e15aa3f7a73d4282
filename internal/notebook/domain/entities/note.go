package entities

import "time"

// Note представляет заметку пользователя.
// Title и Content хранятся уже очищенными от HTML вне разрешенного набора.
type Note struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Images    []string  `json:"images"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteFields - изменяемые поля заметки.
type NoteFields struct {
	Title   string
	Content string
	Images  []string
	Tags    []string
}

// OwnedBy сообщает, принадлежит ли заметка учетной записи.
func (n *Note) OwnedBy(accountID int64) bool {
	return n != nil && n.OwnerID == accountID
}

// RemovedImages возвращает изображения из before, которых нет в after, в исходном порядке.
func RemovedImages(before, after []string) []string {
	kept := make(map[string]struct{}, len(after))
	for _, url := range after {
		kept[url] = struct{}{}
	}

	removed := make([]string, 0)
	for _, url := range before {
		if _, ok := kept[url]; !ok {
			removed = append(removed, url)
		}
	}
	return removed
}
