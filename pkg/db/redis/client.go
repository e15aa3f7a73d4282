package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrKeyNotFound возвращается Get, если ключ отсутствует.
var ErrKeyNotFound = errors.New("redis key not found")

// Client оборачивает клиент go-redis.
type Client struct {
	client *redis.Client
}

// NewClient подключается к Redis и проверяет соединение.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{client: rdb}, nil
}

// Get возвращает значение по ключу или ErrKeyNotFound.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get key: %w", err)
	}
	return value, nil
}

// Set записывает значение с TTL.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key: %w", err)
	}
	return nil
}

// Delete удаляет ключи.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	return nil
}

// Publish отправляет сообщение в канал.
func (c *Client) Publish(ctx context.Context, channel string, message any) error {
	if err := c.client.Publish(ctx, channel, message).Err(); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Ping проверяет соединение.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close закрывает соединение.
func (c *Client) Close() error {
	return c.client.Close()
}

// RawClient возвращает клиент go-redis для нестандартных операций.
func (c *Client) RawClient() *redis.Client {
	return c.client
}
