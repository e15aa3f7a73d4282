// Package app implements application business logic for the notebook service.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"notebook/internal/notebook/domain/entities"
	"notebook/internal/notebook/ports/api"
	"notebook/internal/notebook/ports/repositories"
	"notebook/pkg/logger"
)

const (
	methodResolve = "AccountUseCase.Resolve"

	msgResolvingAccount    = "resolving account for identity"
	msgAccountFound        = "account found by external id"
	msgAccountFoundByEmail = "account found by email"
	msgAccountCreated      = "account created"
	msgAccountCreateRace   = "account created concurrently, refetching"

	msgErrFindingAccount  = "failed to find account"
	msgErrCreatingAccount = "failed to create account"
)

// AccountUseCaseImpl реализует интерфейс AccountUseCase.
type AccountUseCaseImpl struct {
	accountRepo repositories.AccountRepository
}

// NewAccountUseCase создает новый экземпляр AccountUseCaseImpl.
func NewAccountUseCase(accountRepo repositories.AccountRepository) api.AccountUseCase {
	return &AccountUseCaseImpl{accountRepo: accountRepo}
}

// Resolve находит учетную запись по external id, затем по email, иначе создает новую.
// Конфликт уникальности при создании означает, что запись создал параллельный запрос.
func (uc *AccountUseCaseImpl) Resolve(ctx context.Context, identity *entities.Identity) (*entities.Account, error) {
	if identity == nil || identity.ExternalID == "" {
		return nil, entities.ErrUnauthenticated
	}

	log := logger.Log(ctx).With(zap.String("method", methodResolve), zap.String("externalID", identity.ExternalID))
	log.Debug(ctx, msgResolvingAccount)

	account, err := uc.lookup(ctx, identity)
	if err != nil {
		log.Error(ctx, msgErrFindingAccount, zap.Error(err))
		return nil, err
	}
	if account != nil {
		return account, nil
	}

	account, err = uc.accountRepo.Create(ctx, entities.NewAccount(identity))
	switch {
	case err == nil:
		log.Info(ctx, msgAccountCreated, zap.Int64("accountID", account.ID))
		return account, nil
	case errors.Is(err, entities.ErrAccountExists):
		log.Debug(ctx, msgAccountCreateRace)
	default:
		log.Error(ctx, msgErrCreatingAccount, zap.Error(err))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	account, err = uc.lookup(ctx, identity)
	if err != nil {
		log.Error(ctx, msgErrFindingAccount, zap.Error(err))
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("failed to refetch account: %w", entities.ErrAccountNotFound)
	}
	return account, nil
}

func (uc *AccountUseCaseImpl) lookup(ctx context.Context, identity *entities.Identity) (*entities.Account, error) {
	log := logger.Log(ctx).With(zap.String("method", methodResolve))

	account, err := uc.accountRepo.FindByExternalID(ctx, identity.ExternalID)
	if err == nil {
		log.Debug(ctx, msgAccountFound, zap.Int64("accountID", account.ID))
		return account, nil
	}
	if !errors.Is(err, entities.ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to find account by external id: %w", err)
	}

	if identity.Email == "" {
		return nil, nil
	}

	account, err = uc.accountRepo.FindByEmail(ctx, identity.Email)
	if err == nil {
		log.Debug(ctx, msgAccountFoundByEmail, zap.Int64("accountID", account.ID))
		return account, nil
	}
	if !errors.Is(err, entities.ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to find account by email: %w", err)
	}
	return nil, nil
}
