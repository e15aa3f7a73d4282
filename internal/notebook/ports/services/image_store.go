package services

import "context"

// BlobStore - клиент объектного хранилища.
type BlobStore interface {
	// Put сохраняет объект и возвращает его публичный URL.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ImageStore определяет операции с изображениями заметок.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, key, contentType string) (string, error)

	// Delete удаляет объект; вызывающий код не должен прерываться из-за ошибки.
	Delete(ctx context.Context, key string) error

	DeriveName(original string) string

	KeyFromURL(url string) string

	Validate(contentType string, size int64) error
}
