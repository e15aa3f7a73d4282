package postgres

import (
	"notebook/internal/notebook/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	accountRepo repositories.AccountRepository
	noteRepo    repositories.NoteRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		accountRepo: NewAccountRepository(pool),
		noteRepo:    NewNoteRepository(pool),
	}
}

// AccountRepository возвращает репозиторий учетных записей.
func (f *RepositoryFactory) AccountRepository() repositories.AccountRepository {
	return f.accountRepo
}

// NoteRepository возвращает репозиторий заметок.
func (f *RepositoryFactory) NoteRepository() repositories.NoteRepository {
	return f.noteRepo
}
