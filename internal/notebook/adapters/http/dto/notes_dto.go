// Package dto содержит структуры запросов и ответов HTTP API.
package dto

import (
	"bytes"
	"encoding/json"
	"strconv"

	"notebook/internal/notebook/domain/entities"
	"notebook/internal/notebook/ports/api"
)

// NoteRequest - тело запроса создания и изменения заметки.
// Images и Tags принимаются как JSON-массив или как строка с JSON-массивом.
type NoteRequest struct {
	Title   string          `json:"title"`
	Content string          `json:"content"`
	Images  json.RawMessage `json:"images"`
	Tags    json.RawMessage `json:"tags"`
}

// Input преобразует запрос в входные данные use-case.
func (r *NoteRequest) Input() api.NoteInput {
	return api.NoteInput{
		Title:     r.Title,
		Content:   r.Content,
		ImagesRaw: RawList(r.Images),
		TagsRaw:   RawList(r.Tags),
	}
}

// RawList возвращает текст JSON-массива. Строковое значение разворачивается.
func RawList(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return ""
		}
		return text
	}
	return string(raw)
}

// RemoveTagRequest - тело запроса удаления тега.
type RemoveTagRequest struct {
	NoteID NoteID `json:"noteId"`
	Tag    string `json:"tag"`
}

// NoteID принимает идентификатор как число или как строку с числом.
// Нечисловое значение превращается в 0.
type NoteID int64

// UnmarshalJSON реализует json.Unmarshaler.
func (id *NoteID) UnmarshalJSON(data []byte) error {
	text := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		*id = 0
		return nil
	}
	*id = NoteID(value)
	return nil
}

// RemoveTagResponse - результат удаления тега.
type RemoveTagResponse struct {
	OK   bool     `json:"ok"`
	Tags []string `json:"tags"`
}

// NoteResponse содержит заметку.
type NoteResponse struct {
	Note *entities.Note `json:"note"`
}

// TagsResponse содержит счетчики тегов.
type TagsResponse struct {
	Tags []entities.TagCount `json:"tags"`
}

// AccountResponse содержит текущую учетную запись.
type AccountResponse struct {
	Account *entities.Account `json:"account"`
}

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse - тело ответа с ошибками по полям.
type ValidationErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}
