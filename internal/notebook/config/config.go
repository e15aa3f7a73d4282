// Package config содержит конфигурацию сервиса заметок.
package config

import (
	"context"
	"os"

	"go.uber.org/zap"

	"notebook/internal/notebook/adapters/storage"
	"notebook/pkg/config"
	"notebook/pkg/logger"
)

// Имя сервиса и переменная с путем к файлу конфигурации.
const (
	ServiceName   = "notebook"
	EnvConfigFile = "NOTEBOOK_CONFIG_FILE"
)

// Config представляет полную конфигурацию сервиса заметок.
type Config struct {
	Postgres PostgresConfig `yaml:"postgres"`
	HTTP     HTTPConfig     `yaml:"http"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	Storage  storage.Config `yaml:"storage" env-prefix:"NOTEBOOK_STORAGE_"`
	Events   EventsConfig   `yaml:"events"`
}

// EventsConfig - настройки публикации событий изменения списка.
type EventsConfig struct {
	Enabled bool   `yaml:"enabled" env:"NOTEBOOK_EVENTS_ENABLED" env-default:"true"`
	Channel string `yaml:"channel" env:"NOTEBOOK_EVENTS_CHANNEL" env-default:"notebook:changes"`
}

// Load загружает конфигурацию из окружения и, если задан NOTEBOOK_CONFIG_FILE, из файла.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := config.Load[Config](ctx, ServiceName, os.Getenv(EnvConfigFile))
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Info(ctx, "notebook configuration",
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.String("redis_address", cfg.Redis.Options().Addr()),
		zap.String("session_provider", cfg.Session.Provider),
		zap.String("storage_backend", cfg.Storage.Backend),
		zap.String("log_level", cfg.Logging.Level))

	return cfg, nil
}
