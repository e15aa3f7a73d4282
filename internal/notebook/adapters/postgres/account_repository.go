package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"notebook/internal/notebook/domain/entities"
	"notebook/internal/notebook/ports/repositories"
	"notebook/pkg/logger"
)

const accountColumns = `id, email, name, external_id, created_at`

// AccountRepository реализует интерфейс repositories.AccountRepository для работы с Postgres.
type AccountRepository struct {
	pool PgxPoolInterface
}

// NewAccountRepository создает новый экземпляр репозитория учетных записей.
func NewAccountRepository(pool PgxPoolInterface) repositories.AccountRepository {
	return &AccountRepository{pool: pool}
}

// FindByExternalID находит учетную запись по id пользователя у провайдера.
func (r *AccountRepository) FindByExternalID(ctx context.Context, externalID string) (*entities.Account, error) {
	return r.findOne(ctx, "FindByExternalID",
		`SELECT `+accountColumns+` FROM accounts WHERE external_id = $1`, externalID)
}

// FindByEmail находит учетную запись по email.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entities.Account, error) {
	return r.findOne(ctx, "FindByEmail",
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
}

// Create создает учетную запись.
func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("repository", "account"), zap.String("method", "Create"))

	query := `
        INSERT INTO accounts (email, name, external_id)
        VALUES ($1, $2, $3)
        RETURNING ` + accountColumns

	var created entities.Account
	err := r.pool.QueryRow(ctx, query, account.Email, account.Name, account.ExternalID).Scan(
		&created.ID,
		&created.Email,
		&created.Name,
		&created.ExternalID,
		&created.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			log.Debug(ctx, "account already exists", zap.String("constraint", pgErr.ConstraintName))
			return nil, entities.ErrAccountExists
		}
		log.Error(ctx, "error creating account", zap.Error(err))
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return &created, nil
}

func (r *AccountRepository) findOne(ctx context.Context, method, query string, arg string) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("repository", "account"), zap.String("method", method))

	var account entities.Account
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Email,
		&account.Name,
		&account.ExternalID,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "account not found")
			return nil, entities.ErrAccountNotFound
		}
		log.Error(ctx, "error finding account", zap.Error(err))
		return nil, fmt.Errorf("error querying account: %w", err)
	}

	return &account, nil
}
