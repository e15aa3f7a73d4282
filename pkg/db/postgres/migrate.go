package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // драйвер postgres для migrate
	_ "github.com/golang-migrate/migrate/v4/source/file"       // источник миграций из файлов
	"go.uber.org/zap"

	"notebook/pkg/logger"
)

// Сообщения об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrRollbackMigrations      = "failed to roll back migrations"
)

// MigrateDSN применяет все миграции из migrationsPath.
func MigrateDSN(ctx context.Context, dsn, migrationsPath string) error {
	return run(ctx, dsn, migrationsPath, func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
		}
		logger.Log(ctx).Info(ctx, LogMigrationsApplied)
		return nil
	})
}

// RollbackDSN откатывает steps последних миграций.
func RollbackDSN(ctx context.Context, dsn, migrationsPath string, steps int) error {
	return run(ctx, dsn, migrationsPath, func(m *migrate.Migrate) error {
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("%s: %w", ErrRollbackMigrations, err)
		}
		logger.Log(ctx).Info(ctx, LogMigrationsRolled, zap.Int("steps", steps))
		return nil
	})
}

func run(ctx context.Context, dsn, migrationsPath string, fn func(*migrate.Migrate) error) error {
	log := logger.Log(ctx)

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err), zap.String("path", migrationsPath))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn(ctx, "failed to close migration instance", zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
		}
	}()

	if err := fn(m); err != nil {
		log.Error(ctx, err.Error())
		return err
	}
	return nil
}
