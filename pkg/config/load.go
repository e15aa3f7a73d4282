// Package config загружает конфигурацию сервисов через cleanenv.
package config

import (
	"context"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"notebook/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load читает конфигурацию типа T. Если path не пуст, сначала читается файл
// (yaml, json, toml или .env), затем значения переопределяются окружением.
func Load[T any](ctx context.Context, serviceName, path string) (*T, error) {
	log := logger.Log(ctx)
	log.Info(ctx, msgLoadingConfiguration,
		zap.String(attrService, serviceName),
		zap.String(attrPath, path))

	var cfg T
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration,
			zap.String(attrService, serviceName),
			zap.Error(err))
		return nil, fmt.Errorf("%s: %w", msgFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded, zap.String(attrService, serviceName))
	return &cfg, nil
}
