package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"notebook/internal/notebook/domain/entities"
	"notebook/internal/notebook/domain/sanitize"
	"notebook/internal/notebook/domain/tags"
	"notebook/internal/notebook/domain/validation"
	"notebook/internal/notebook/ports/api"
	"notebook/internal/notebook/ports/repositories"
	"notebook/internal/notebook/ports/services"
	"notebook/pkg/logger"
)

const (
	methodCreateNote = "NoteUseCase.CreateNote"
	methodGetNote    = "NoteUseCase.GetNote"
	methodUpdateNote = "NoteUseCase.UpdateNote"
	methodDeleteNote = "NoteUseCase.DeleteNote"
	methodRemoveTag  = "NoteUseCase.RemoveTag"

	msgNoteCreated      = "note created"
	msgNoteUpdated      = "note updated"
	msgNoteDeleted      = "note deleted"
	msgTagRemoved       = "tag removed from note"
	msgValidationFailed = "note validation failed"
	msgNoteRejected     = "note not found or owned by another account"
	msgNotifyFailed     = "failed to publish change event"

	msgErrCreatingNote = "failed to create note"
	msgErrUpdatingNote = "failed to update note"
	msgErrDeletingNote = "failed to delete note"
	msgErrGettingNote  = "failed to get note"
)

// NoteUseCaseImpl реализует интерфейс NoteUseCase.
type NoteUseCaseImpl struct {
	noteRepo   repositories.NoteRepository
	imageStore services.ImageStore
	notifier   services.ChangeNotifier
}

// NewNoteUseCase создает новый экземпляр NoteUseCaseImpl. notifier может быть nil.
func NewNoteUseCase(
	noteRepo repositories.NoteRepository,
	imageStore services.ImageStore,
	notifier services.ChangeNotifier,
) api.NoteUseCase {
	return &NoteUseCaseImpl{
		noteRepo:   noteRepo,
		imageStore: imageStore,
		notifier:   notifier,
	}
}

// CreateNote проверяет, очищает и сохраняет новую заметку владельца accountID.
func (uc *NoteUseCaseImpl) CreateNote(ctx context.Context, accountID int64, input api.NoteInput) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateNote), zap.Int64("accountID", accountID))

	fields, err := prepareFields(input)
	if err != nil {
		log.Debug(ctx, msgValidationFailed, zap.Error(err))
		return nil, err
	}

	note, err := uc.noteRepo.Create(ctx, accountID, fields)
	if err != nil {
		log.Error(ctx, msgErrCreatingNote, zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Info(ctx, msgNoteCreated, zap.Int64("noteID", note.ID))
	uc.notify(ctx, accountID, note.ID, services.ActionCreated)
	return note, nil
}

// GetNote возвращает заметку владельца для редактирования.
func (uc *NoteUseCaseImpl) GetNote(ctx context.Context, id, accountID int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetNote), zap.Int64("noteID", id))

	note, err := uc.noteRepo.GetByID(ctx, id)
	if err != nil {
		log.Error(ctx, msgErrGettingNote, zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if !note.OwnedBy(accountID) {
		log.Debug(ctx, msgNoteRejected)
		return nil, entities.ErrNotFoundOrForbidden
	}
	return note, nil
}

// UpdateNote заменяет поля заметки и удаляет изображения, которые из нее исчезли.
func (uc *NoteUseCaseImpl) UpdateNote(ctx context.Context, id, accountID int64, input api.NoteInput) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateNote), zap.Int64("noteID", id))

	fields, err := prepareFields(input)
	if err != nil {
		log.Debug(ctx, msgValidationFailed, zap.Error(err))
		return nil, err
	}

	previous, err := uc.noteRepo.GetByID(ctx, id)
	if err != nil {
		log.Error(ctx, msgErrGettingNote, zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if !previous.OwnedBy(accountID) {
		log.Debug(ctx, msgNoteRejected)
		return nil, entities.ErrNotFoundOrForbidden
	}

	note, err := uc.noteRepo.Update(ctx, id, accountID, fields)
	if err != nil {
		if errors.Is(err, entities.ErrNotFoundOrForbidden) {
			log.Debug(ctx, msgNoteRejected)
			return nil, err
		}
		log.Error(ctx, msgErrUpdatingNote, zap.Error(err))
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	log.Info(ctx, msgNoteUpdated)
	runCleanup(ctx, imageDeletions(uc.imageStore, entities.RemovedImages(previous.Images, note.Images)))
	uc.notify(ctx, accountID, id, services.ActionUpdated)
	return note, nil
}

// DeleteNote удаляет заметку и затем все ее изображения.
func (uc *NoteUseCaseImpl) DeleteNote(ctx context.Context, id, accountID int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteNote), zap.Int64("noteID", id))

	deleted, err := uc.noteRepo.Delete(ctx, id, accountID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFoundOrForbidden) {
			log.Debug(ctx, msgNoteRejected)
			return err
		}
		log.Error(ctx, msgErrDeletingNote, zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	log.Info(ctx, msgNoteDeleted, zap.Int("images", len(deleted.Images)))
	runCleanup(ctx, imageDeletions(uc.imageStore, deleted.Images))
	uc.notify(ctx, accountID, id, services.ActionDeleted)
	return nil
}

// RemoveTag удаляет тег из заметки и возвращает оставшиеся теги.
func (uc *NoteUseCaseImpl) RemoveTag(ctx context.Context, noteID int64, tag string, accountID int64) ([]string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRemoveTag), zap.Int64("noteID", noteID))

	tag = strings.TrimSpace(tag)
	if noteID == 0 || tag == "" {
		return nil, entities.ErrInvalidPayload
	}

	note, err := uc.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		log.Error(ctx, msgErrGettingNote, zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if !note.OwnedBy(accountID) {
		log.Debug(ctx, msgNoteRejected)
		return nil, entities.ErrNotFoundOrForbidden
	}

	remaining := tags.Without(note.Tags, tag)
	if err := uc.noteRepo.UpdateTags(ctx, noteID, accountID, remaining); err != nil {
		if errors.Is(err, entities.ErrNotFoundOrForbidden) {
			return nil, err
		}
		log.Error(ctx, msgErrUpdatingNote, zap.Error(err))
		return nil, fmt.Errorf("failed to update tags: %w", err)
	}

	log.Info(ctx, msgTagRemoved, zap.String("tag", tag))
	uc.notify(ctx, accountID, noteID, services.ActionTagRemoved)
	return remaining, nil
}

func (uc *NoteUseCaseImpl) notify(ctx context.Context, accountID, noteID int64, action string) {
	if uc.notifier == nil {
		return
	}
	event := services.ChangeEvent{AccountID: accountID, NoteID: noteID, Action: action}
	if err := uc.notifier.NotifyChanged(ctx, event); err != nil {
		logger.Log(ctx).Warn(ctx, msgNotifyFailed, zap.String("action", action), zap.Error(err))
	}
}

// prepareFields декодирует теги и изображения, проверяет поля и очищает HTML.
func prepareFields(input api.NoteInput) (entities.NoteFields, error) {
	noteTags := tags.Decode(input.TagsRaw)

	if err := validation.ValidateNote(validation.NoteInput{
		Title:   input.Title,
		Content: input.Content,
		Tags:    noteTags,
	}); err != nil {
		return entities.NoteFields{}, err
	}

	return entities.NoteFields{
		Title:   sanitize.Content(input.Title),
		Content: sanitize.Content(input.Content),
		Images:  tags.DecodeImages(input.ImagesRaw),
		Tags:    noteTags,
	}, nil
}
