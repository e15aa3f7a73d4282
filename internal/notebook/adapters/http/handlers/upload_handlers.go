package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notebook/internal/notebook/adapters/http/middleware"
	"notebook/internal/notebook/ports/api"
	"notebook/pkg/logger"
)

// LogHandlerUploadImage - сообщение логирования загрузки.
const LogHandlerUploadImage = "handling upload image request"

// UploadHandler обрабатывает загрузку изображений.
type UploadHandler struct {
	images api.ImageUseCase
}

// NewUploadHandler создает новый экземпляр обработчика загрузки.
func NewUploadHandler(images api.ImageUseCase) *UploadHandler {
	return &UploadHandler{images: images}
}

// UploadImage принимает multipart-поле file и возвращает URL изображения.
func (h *UploadHandler) UploadImage(ctx fiber.Ctx) error {
	userCtx := middleware.UserContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "UploadHandler.UploadImage"))
	log.Debug(userCtx, LogHandlerUploadImage)

	account, ok := middleware.Account(ctx)
	if !ok {
		return sendError(ctx, fiber.StatusUnauthorized, ErrMsgUnauthorized)
	}

	var file *api.ImageFile
	if header, err := ctx.FormFile("file"); err == nil {
		file, err = readImageFile(header)
		if err != nil {
			log.Error(userCtx, "failed to read uploaded file", zap.Error(err))
			return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
		}
	}

	uploaded, err := h.images.UploadImage(userCtx, account.ID, file)
	if err != nil {
		log.Warn(userCtx, "image upload failed", zap.Error(err))
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, uploaded)
}

func readImageFile(header *multipart.FileHeader) (*api.ImageFile, error) {
	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return &api.ImageFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Size:        header.Size,
		Data:        data,
	}, nil
}
