// Package db подключает сервис заметок к базе данных и управляет миграциями.
package db

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"notebook/internal/notebook/config"
	"notebook/pkg/db/postgres"
	"notebook/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogDBInitializing    = "initializing notebook database"
	LogDBInitialized     = "notebook database initialized successfully"
	LogMigrationStarting = "starting database migrations for notebook service"
	LogRollbackStarting  = "rolling back notebook database migrations"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations      = "failed to apply notebook database migrations"
	ErrDBRollback        = "failed to roll back notebook database migrations"
	ErrDBConnection      = "failed to connect to notebook database"
	ErrGetPath           = "failed to get path"
	ErrDBCheckConnection = "error checking the database connection"
)

const filePrefix = "file://"

// DB представляет соединение с базой данных сервиса заметок.
type DB struct {
	database *postgres.Database
}

// New применяет миграции и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	logger.Log(ctx).Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	if err := Migrate(ctx, cfg); err != nil {
		return nil, err
	}

	return Connect(ctx, cfg)
}

// Connect открывает пул соединений без применения миграций.
func Connect(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	database, err := postgres.New(ctx, cfg.GetDSN(), cfg.PoolOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	logger.Log(ctx).Info(ctx, LogDBInitialized)
	return &DB{database: database}, nil
}

// Migrate применяет все миграции.
func Migrate(ctx context.Context, cfg *config.PostgresConfig) error {
	migrationsPath, err := sourceURL(cfg.MigrationsPath)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	logger.Log(ctx).Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath); err != nil {
		return fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}
	return nil
}

// Rollback откатывает steps последних миграций.
func Rollback(ctx context.Context, cfg *config.PostgresConfig, steps int) error {
	migrationsPath, err := sourceURL(cfg.MigrationsPath)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrDBRollback, err)
	}

	logger.Log(ctx).Info(ctx, LogRollbackStarting,
		zap.String("migrations_path", migrationsPath),
		zap.Int("steps", steps))
	if err := postgres.RollbackDSN(ctx, cfg.GetConnectionURL(), migrationsPath, steps); err != nil {
		return fmt.Errorf("%s: %w", ErrDBRollback, err)
	}
	return nil
}

// sourceURL превращает путь к каталогу миграций в URL источника migrate.
func sourceURL(dir string) (string, error) {
	if strings.Contains(dir, "://") {
		return dir, nil
	}
	if !filepath.IsAbs(dir) {
		absPath, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("%s: %w", ErrGetPath, err)
		}
		dir = absPath
	}
	return filePrefix + dir, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.database.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrDBCheckConnection, err)
	}
	return nil
}
