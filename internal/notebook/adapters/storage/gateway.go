// Package storage реализует шлюз хранилища изображений заметок.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"notebook/internal/notebook/domain/entities"
	"notebook/internal/notebook/ports/services"
	"notebook/internal/notebook/resilience"
	"notebook/pkg/logger"
)

// Ограничения загрузки.
const (
	DefaultPrefix    = "notes-images"
	DefaultExtension = "jpg"
	MaxImageSize     = 5 * 1024 * 1024

	randomSuffixLength = 6
	base36             = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Причины отказа в загрузке.
const (
	ReasonNoFile   = "No file provided"
	ReasonNotImage = "File must be an image"
	ReasonTooLarge = "File size must be less than 5MB"
)

// Gateway реализует services.ImageStore поверх services.BlobStore.
// Обращения к хранилищу идут через resilience.Executor.
type Gateway struct {
	store    services.BlobStore
	executor *resilience.Executor
	prefix   string
	now      func() time.Time
}

// NewGateway создает шлюз. Отсутствие хранилища или префикса - ошибка конфигурации.
func NewGateway(store services.BlobStore, executor *resilience.Executor, prefix string) (*Gateway, error) {
	if store == nil || executor == nil {
		return nil, fmt.Errorf("%w: blob store is not configured", entities.ErrStorageConfig)
	}
	prefix = strings.Trim(strings.TrimSpace(prefix), "/ ")
	if prefix == "" {
		return nil, fmt.Errorf("%w: key prefix is empty", entities.ErrStorageConfig)
	}

	return &Gateway{
		store:    store,
		executor: executor,
		prefix:   prefix,
		now:      time.Now,
	}, nil
}

// Upload сохраняет изображение под ключом key и возвращает публичный URL.
func (g *Gateway) Upload(ctx context.Context, data []byte, key, contentType string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "Gateway.Upload"), zap.String("key", key))

	var publicURL string
	err := g.executor.Execute(ctx, func(ctx context.Context) error {
		var err error
		publicURL, err = g.store.Put(ctx, key, data, contentType)
		return err
	})
	if err != nil {
		log.Error(ctx, "failed to upload image", zap.Error(err))
		if errors.Is(err, entities.ErrStorageConfig) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", entities.ErrStorageWrite, err)
	}

	log.Debug(ctx, "image uploaded", zap.Int("size", len(data)))
	return publicURL, nil
}

// Delete удаляет изображение по ключу.
func (g *Gateway) Delete(ctx context.Context, key string) error {
	err := g.executor.Execute(ctx, func(ctx context.Context) error {
		return g.store.Delete(ctx, key)
	})
	if err != nil {
		return fmt.Errorf("failed to delete image %q: %w", key, err)
	}

	logger.Log(ctx).Debug(ctx, "image deleted", zap.String("key", key))
	return nil
}

// DeriveName строит ключ вида <prefix>/<unix-millis>-<6 символов base36>.<ext>.
func (g *Gateway) DeriveName(original string) string {
	suffix := make([]byte, randomSuffixLength)
	for i := range suffix {
		suffix[i] = base36[rand.IntN(len(base36))]
	}

	return fmt.Sprintf("%s/%s-%s.%s",
		g.prefix, strconv.FormatInt(g.now().UnixMilli(), 10), suffix, extension(original))
}

// KeyFromURL возвращает ключ объекта: два последних сегмента пути URL.
func (g *Gateway) KeyFromURL(rawURL string) string {
	p := rawURL
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Path != "" {
		p = parsed.Path
	}

	segments := strings.Split(strings.Trim(p, "/"), "/")
	if len(segments) < 2 || segments[len(segments)-1] == "" {
		return ""
	}
	return segments[len(segments)-2] + "/" + segments[len(segments)-1]
}

// Validate проверяет тип и размер файла. Отказ - *entities.RejectionError.
func (g *Gateway) Validate(contentType string, size int64) error {
	switch {
	case size <= 0:
		return &entities.RejectionError{Reason: ReasonNoFile}
	case !strings.HasPrefix(contentType, "image/"):
		return &entities.RejectionError{Reason: ReasonNotImage}
	case size > MaxImageSize:
		return &entities.RejectionError{Reason: ReasonTooLarge}
	}
	return nil
}

func extension(original string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(original), "."))
	if ext == "" {
		return DefaultExtension
	}
	for _, r := range ext {
		if !strings.ContainsRune(base36, r) {
			return DefaultExtension
		}
	}
	return ext
}
