// Package postgres содержит общий код подключения к Postgres и применения миграций.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"notebook/pkg/logger"
)

// Сообщения логгера.
const (
	LogConnecting        = "connecting to Postgres database"
	LogConnected         = "successfully connected to Postgres"
	LogClosing           = "closing Postgres connection pool"
	LogMigrationsApplied = "database migrations successfully applied"
	LogMigrationsRolled  = "database migrations successfully rolled back"
)

// Сообщения об ошибках.
const (
	ErrParseConfig  = "failed to parse connection config"
	ErrCreatePool   = "failed to create connection pool"
	ErrPingDatabase = "failed to ping database"
)

// PoolOptions - параметры пула соединений. Нулевые значения оставляют настройки pgxpool.
type PoolOptions struct {
	MinConns          int
	MaxConns          int
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

func (o PoolOptions) apply(cfg *pgxpool.Config) {
	if o.MinConns > 0 {
		cfg.MinConns = int32(o.MinConns) //nolint:gosec
	}
	if o.MaxConns > 0 {
		cfg.MaxConns = int32(o.MaxConns) //nolint:gosec
	}
	if o.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = o.MaxConnLifetime
	}
	if o.MaxConnIdleTime > 0 {
		cfg.MaxConnIdleTime = o.MaxConnIdleTime
	}
	if o.HealthCheckPeriod > 0 {
		cfg.HealthCheckPeriod = o.HealthCheckPeriod
	}
}

// Database хранит пул соединений Postgres.
type Database struct {
	pool *pgxpool.Pool
}

// New открывает пул соединений и проверяет его ping-запросом.
func New(ctx context.Context, dsn string, opts PoolOptions) (*Database, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogConnecting)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error(ctx, ErrParseConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrParseConfig, err)
	}

	opts.apply(poolCfg)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error(ctx, ErrCreatePool, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Error(ctx, ErrPingDatabase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}

	log.Info(ctx, LogConnected,
		zap.Int32("min_conns", poolCfg.MinConns),
		zap.Int32("max_conns", poolCfg.MaxConns))
	return &Database{pool: pool}, nil
}

// Pool возвращает пул соединений.
func (db *Database) Pool() *pgxpool.Pool {
	return db.pool
}

// Close закрывает пул.
func (db *Database) Close(ctx context.Context) {
	logger.Log(ctx).Info(ctx, LogClosing)
	db.pool.Close()
}

// Ping проверяет доступность базы.
func (db *Database) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}
