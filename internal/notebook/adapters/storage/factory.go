package storage

import (
	"fmt"

	"notebook/internal/notebook/domain/entities"
	"notebook/internal/notebook/ports/services"
	"notebook/internal/notebook/resilience"
)

// Поддерживаемые хранилища.
const (
	BackendS3         = "s3"
	BackendCloudinary = "cloudinary"
)

// Config - настройки хранилища изображений.
type Config struct {
	Backend    string            `yaml:"backend" env:"BACKEND" env-default:"s3"`
	Prefix     string            `yaml:"prefix" env:"PREFIX" env-default:"notes-images"`
	S3         S3Config          `yaml:"s3" env-prefix:"S3_"`
	Cloudinary CloudinaryConfig  `yaml:"cloudinary" env-prefix:"CLOUDINARY_"`
	Resilience resilience.Config `yaml:"resilience" env-prefix:"RESILIENCE_"`
}

// NewBlobStore создает клиент выбранного хранилища.
func NewBlobStore(cfg Config) (services.BlobStore, error) {
	switch cfg.Backend {
	case BackendS3, "r2", "":
		return NewS3Store(cfg.S3)
	case BackendCloudinary:
		return NewCloudinaryStore(cfg.Cloudinary)
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", entities.ErrStorageConfig, cfg.Backend)
	}
}

// New собирает шлюз изображений по конфигурации.
func New(cfg Config) (*Gateway, error) {
	store, err := NewBlobStore(cfg)
	if err != nil {
		return nil, err
	}
	return NewGateway(store, resilience.NewExecutor("blob-store:"+cfg.Backend, cfg.Resilience), cfg.Prefix)
}
