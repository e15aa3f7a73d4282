// Package session реализует границу с внешним сервисом аутентификации.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"notebook/internal/notebook/domain/entities"
	"notebook/internal/notebook/ports/services"
	"notebook/pkg/db/redis"
	"notebook/pkg/logger"
)

// DefaultKeyPrefix - префикс ключей сессий, которые пишет сервис аутентификации.
const DefaultKeyPrefix = "session:"

type keyReader interface {
	Get(ctx context.Context, key string) (string, error)
}

// sessionRecord - формат записи сессии в Redis.
type sessionRecord struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// RedisStore читает сессии, которые внешний сервис аутентификации хранит в Redis.
type RedisStore struct {
	client    keyReader
	keyPrefix string
	now       func() time.Time
}

// NewRedisStore создает провайдер сессий поверх Redis.
func NewRedisStore(client *redis.Client, keyPrefix string) services.SessionProvider {
	return newRedisStore(client, keyPrefix)
}

func newRedisStore(client keyReader, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix, now: time.Now}
}

// Session возвращает identity по токену сессии. Неизвестная, истекшая
// или поврежденная сессия дает nil, nil.
func (s *RedisStore) Session(ctx context.Context, creds services.Credentials) (*entities.Identity, error) {
	log := logger.Log(ctx).With(zap.String("method", "RedisStore.Session"))

	token := creds.SessionToken
	if token == "" {
		return nil, nil
	}

	raw, err := s.client.Get(ctx, s.keyPrefix+token)
	if err != nil {
		if errors.Is(err, redis.ErrKeyNotFound) {
			log.Debug(ctx, "session not found")
			return nil, nil
		}
		log.Error(ctx, "failed to read session", zap.Error(err))
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var record sessionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		log.Warn(ctx, "malformed session record", zap.Error(err))
		return nil, nil
	}
	if record.User.ID == "" {
		log.Warn(ctx, "session record without user id")
		return nil, nil
	}
	if record.ExpiresAt != nil && !record.ExpiresAt.After(s.now()) {
		log.Debug(ctx, "session expired")
		return nil, nil
	}

	return &entities.Identity{
		ExternalID: record.User.ID,
		Email:      record.User.Email,
		Name:       record.User.Name,
	}, nil
}
