// Package events публикует сигналы об изменении заметок.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"notebook/internal/notebook/ports/services"
	"notebook/pkg/logger"
)

// DefaultChannel - канал Redis для сигналов об изменении списка заметок.
const DefaultChannel = "notebook:changes"

type publisher interface {
	Publish(ctx context.Context, channel string, message any) error
}

// RedisNotifier публикует services.ChangeEvent в канал Redis.
// Подписчики (слой представления) по нему обновляют список заметок.
type RedisNotifier struct {
	client  publisher
	channel string
}

// NewRedisNotifier создает издателя событий. client - *redis.Client из pkg/db/redis.
func NewRedisNotifier(client publisher, channel string) services.ChangeNotifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisNotifier{client: client, channel: channel}
}

// NotifyChanged публикует событие в формате JSON.
func (n *RedisNotifier) NotifyChanged(ctx context.Context, event services.ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode change event: %w", err)
	}

	if err := n.client.Publish(ctx, n.channel, payload); err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}

	logger.Log(ctx).Debug(ctx, "change event published",
		zap.String("channel", n.channel),
		zap.String("action", event.Action),
		zap.Int64("noteID", event.NoteID))
	return nil
}
