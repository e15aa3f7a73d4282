package app_test

import (
	"context"
	"errors"
	"path"

	"github.com/stretchr/testify/mock"

	"notebook/internal/notebook/domain/entities"
	"notebook/internal/notebook/ports/repositories"
	"notebook/internal/notebook/ports/services"
)

var (
	ErrDatabaseOperation = errors.New("database error")
	ErrBlobStore         = errors.New("blob store unavailable")
)

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) FindByExternalID(ctx context.Context, externalID string) (*entities.Account, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *mockAccountRepository) FindByEmail(ctx context.Context, email string) (*entities.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *mockAccountRepository) Create(ctx context.Context, account *entities.Account) (*entities.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) GetByID(ctx context.Context, id int64) (*entities.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Create(ctx context.Context, ownerID int64, fields entities.NoteFields) (*entities.Note, error) {
	args := m.Called(ctx, ownerID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Update(ctx context.Context, id, ownerID int64, fields entities.NoteFields) (*entities.Note, error) {
	args := m.Called(ctx, id, ownerID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) UpdateTags(ctx context.Context, id, ownerID int64, tags []string) error {
	return m.Called(ctx, id, ownerID, tags).Error(0)
}

func (m *mockNoteRepository) Delete(ctx context.Context, id, ownerID int64) (*entities.Note, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) List(
	ctx context.Context, ownerID int64, filter repositories.NoteFilter, limit, offset int,
) ([]*entities.Note, int, error) {
	args := m.Called(ctx, ownerID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Note), args.Int(1), args.Error(2)
}

func (m *mockNoteRepository) TagLists(ctx context.Context, ownerID int64) ([]string, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Upload(ctx context.Context, data []byte, key, contentType string) (string, error) {
	args := m.Called(ctx, data, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockImageStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockImageStore) DeriveName(original string) string {
	return m.Called(original).String(0)
}

// KeyFromURL повторяет раскладку ключей хранилища: два последних сегмента пути.
func (m *mockImageStore) KeyFromURL(url string) string {
	return "notes-images/" + path.Base(url)
}

func (m *mockImageStore) Validate(contentType string, size int64) error {
	return m.Called(contentType, size).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyChanged(ctx context.Context, event services.ChangeEvent) error {
	return m.Called(ctx, event).Error(0)
}
