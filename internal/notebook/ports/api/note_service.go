package api

import (
	"context"

	"notebook/internal/notebook/domain/entities"
)

// NoteInput - сырые поля формы заметки.
// Images и Tags - JSON-массивы в том виде, в каком их прислал клиент.
type NoteInput struct {
	Title     string
	Content   string
	ImagesRaw string
	TagsRaw   string
}

// NoteUseCase определяет операции изменения заметок.
type NoteUseCase interface {
	CreateNote(ctx context.Context, accountID int64, input NoteInput) (*entities.Note, error)

	GetNote(ctx context.Context, id, accountID int64) (*entities.Note, error)

	UpdateNote(ctx context.Context, id, accountID int64, input NoteInput) (*entities.Note, error)

	DeleteNote(ctx context.Context, id, accountID int64) error

	RemoveTag(ctx context.Context, noteID int64, tag string, accountID int64) ([]string, error)
}

// ListingUseCase определяет чтение списка заметок.
type ListingUseCase interface {
	List(ctx context.Context, accountID int64, query entities.ListQuery) (*entities.ListResult, error)

	TagCounts(ctx context.Context, accountID int64) ([]entities.TagCount, error)

	Overview(ctx context.Context, accountID int64, query entities.ListQuery) (*entities.Overview, error)
}

// ImageFile - загружаемый файл изображения.
type ImageFile struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// UploadedImage - результат загрузки.
type UploadedImage struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}

// ImageUseCase определяет загрузку изображений.
type ImageUseCase interface {
	UploadImage(ctx context.Context, accountID int64, file *ImageFile) (*UploadedImage, error)
}
