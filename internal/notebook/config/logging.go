package config

import "notebook/pkg/logger"

// LoggingConfig представляет конфигурацию логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"NOTEBOOK_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"NOTEBOOK_LOGGER_MODE" env-default:"production"`
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == "development" {
		return logger.Development
	}
	return logger.Production
}
