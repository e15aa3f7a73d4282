package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"notebook/internal/notebook/ports/api"
	"notebook/internal/notebook/ports/services"
	"notebook/pkg/logger"
)

const (
	methodUploadImage = "ImageUseCase.UploadImage"

	msgImageRejected  = "image rejected"
	msgImageUploaded  = "image uploaded"
	msgErrUploadImage = "failed to upload image"
)

// ImageUseCaseImpl реализует интерфейс ImageUseCase.
type ImageUseCaseImpl struct {
	imageStore services.ImageStore
}

// NewImageUseCase создает новый экземпляр ImageUseCaseImpl.
func NewImageUseCase(imageStore services.ImageStore) api.ImageUseCase {
	return &ImageUseCaseImpl{imageStore: imageStore}
}

// UploadImage проверяет файл, выбирает ключ и загружает файл в хранилище.
func (uc *ImageUseCaseImpl) UploadImage(ctx context.Context, accountID int64, file *api.ImageFile) (*api.UploadedImage, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUploadImage), zap.Int64("accountID", accountID))

	if file == nil {
		file = &api.ImageFile{}
	}
	if err := uc.imageStore.Validate(file.ContentType, file.Size); err != nil {
		log.Debug(ctx, msgImageRejected, zap.Error(err))
		return nil, err
	}

	key := uc.imageStore.DeriveName(file.Filename)
	url, err := uc.imageStore.Upload(ctx, file.Data, key, file.ContentType)
	if err != nil {
		log.Error(ctx, msgErrUploadImage, zap.Error(err))
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	log.Info(ctx, msgImageUploaded, zap.String("key", key), zap.Int64("size", file.Size))
	return &api.UploadedImage{URL: url, FileName: key}, nil
}
