package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"notebook/internal/notebook/domain/entities"
	"notebook/internal/notebook/resilience"
)

// CloudinaryConfig - настройки Cloudinary.
type CloudinaryConfig struct {
	CloudName string `yaml:"cloud_name" env:"CLOUD_NAME"`
	APIKey    string `yaml:"api_key" env:"API_KEY"`
	APISecret string `yaml:"api_secret" env:"API_SECRET"`
}

// Validate проверяет обязательные поля.
func (c CloudinaryConfig) Validate() error {
	if c.CloudName == "" || c.APIKey == "" || c.APISecret == "" {
		return fmt.Errorf("%w: cloudinary cloud name, api key and api secret are required", entities.ErrStorageConfig)
	}
	return nil
}

// ErrCloudinaryResponse возвращается, когда Cloudinary ответил ошибкой в теле ответа.
// Такой ответ не повторяется.
var ErrCloudinaryResponse = errors.New("cloudinary returned an error")

type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryStore реализует services.BlobStore поверх Cloudinary.
// Public ID объекта - ключ без расширения, поэтому KeyFromURL подходит и для его URL.
type CloudinaryStore struct {
	api cloudinaryAPI
}

// NewCloudinaryStore создает клиент Cloudinary.
func NewCloudinaryStore(cfg CloudinaryConfig) (*CloudinaryStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrStorageConfig, err)
	}

	return &CloudinaryStore{api: &cld.Upload}, nil
}

// Put загружает изображение и возвращает его https URL.
func (s *CloudinaryStore) Put(ctx context.Context, key string, data []byte, _ string) (string, error) {
	result, err := s.api.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     publicID(key),
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return "", resilience.Permanent(fmt.Errorf("%w: %s", ErrCloudinaryResponse, result.Error.Message))
	}

	return result.SecureURL, nil
}

// Delete удаляет изображение. Отсутствующий объект не считается ошибкой.
func (s *CloudinaryStore) Delete(ctx context.Context, key string) error {
	result, err := s.api.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID(key),
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to destroy cloudinary asset: %w", err)
	}
	if result.Error.Message != "" {
		return resilience.Permanent(fmt.Errorf("%w: %s", ErrCloudinaryResponse, result.Error.Message))
	}
	return nil
}

func publicID(key string) string {
	return strings.TrimSuffix(key, path.Ext(key))
}
