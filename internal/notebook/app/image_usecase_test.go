package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notebook/internal/notebook/app"
	"notebook/internal/notebook/domain/entities"
	"notebook/internal/notebook/ports/api"
)

func TestImageUseCase_UploadImage(t *testing.T) {
	ctx := context.Background()
	file := &api.ImageFile{Filename: "cat.png", ContentType: "image/png", Size: 3, Data: []byte{1, 2, 3}}

	t.Run("uploads under derived key", func(t *testing.T) {
		store := new(mockImageStore)
		store.On("Validate", "image/png", int64(3)).Return(nil)
		store.On("DeriveName", "cat.png").Return("notes-images/1-abcdef.png")
		store.On("Upload", mock.Anything, file.Data, "notes-images/1-abcdef.png", "image/png").
			Return("https://cdn.example.com/notes-images/1-abcdef.png", nil)
		uc := app.NewImageUseCase(store)

		uploaded, err := uc.UploadImage(ctx, ownerID, file)

		require.NoError(t, err)
		assert.Equal(t, &api.UploadedImage{
			URL:      "https://cdn.example.com/notes-images/1-abcdef.png",
			FileName: "notes-images/1-abcdef.png",
		}, uploaded)
	})

	t.Run("rejected file", func(t *testing.T) {
		store := new(mockImageStore)
		store.On("Validate", "text/plain", int64(3)).Return(&entities.RejectionError{Reason: "File must be an image"})
		uc := app.NewImageUseCase(store)

		_, err := uc.UploadImage(ctx, ownerID, &api.ImageFile{Filename: "a.txt", ContentType: "text/plain", Size: 3})

		require.ErrorIs(t, err, entities.ErrImageRejected)
		store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing file", func(t *testing.T) {
		store := new(mockImageStore)
		store.On("Validate", "", int64(0)).Return(&entities.RejectionError{Reason: "No file provided"})
		uc := app.NewImageUseCase(store)

		_, err := uc.UploadImage(ctx, ownerID, nil)

		require.ErrorIs(t, err, entities.ErrImageRejected)
	})

	t.Run("storage failure", func(t *testing.T) {
		store := new(mockImageStore)
		store.On("Validate", mock.Anything, mock.Anything).Return(nil)
		store.On("DeriveName", mock.Anything).Return("notes-images/k.png")
		store.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", entities.ErrStorageWrite)
		uc := app.NewImageUseCase(store)

		_, err := uc.UploadImage(ctx, ownerID, file)

		require.ErrorIs(t, err, entities.ErrStorageWrite)
	})
}
