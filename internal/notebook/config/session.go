package config

import (
	"errors"
	"fmt"
)

// Провайдеры сессий.
const (
	SessionProviderRedis = "redis"
	SessionProviderJWT   = "jwt"
)

// ErrInvalidSession - некорректная конфигурация сессий.
var ErrInvalidSession = errors.New("invalid session configuration")

// SessionConfig описывает, как проверяются сессии внешнего сервиса аутентификации.
type SessionConfig struct {
	Provider  string `yaml:"provider" env:"NOTEBOOK_SESSION_PROVIDER" env-default:"redis"`
	KeyPrefix string `yaml:"key_prefix" env:"NOTEBOOK_SESSION_KEY_PREFIX" env-default:"session:"`
	Secret    string `yaml:"secret" env:"NOTEBOOK_SESSION_JWT_SECRET"`
	Issuer    string `yaml:"issuer" env:"NOTEBOOK_SESSION_JWT_ISSUER"`
}

// Validate проверяет обязательные поля выбранного провайдера.
func (c *SessionConfig) Validate() error {
	switch c.Provider {
	case SessionProviderRedis:
		return nil
	case SessionProviderJWT:
		if c.Secret == "" {
			return fmt.Errorf("%w: jwt secret is required", ErrInvalidSession)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidSession, c.Provider)
	}
}
