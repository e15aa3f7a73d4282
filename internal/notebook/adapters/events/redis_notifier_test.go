package events_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebook/internal/notebook/adapters/events"
	"notebook/internal/notebook/ports/services"
	"notebook/pkg/db/redis"
)

func TestRedisNotifier_NotifyChanged(t *testing.T) {
	ctx := context.Background()
	s := miniredis.RunT(t)
	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := redis.DefaultConfig()
	cfg.Host, cfg.Port = host, port
	client, err := redis.NewClient(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sub := client.RawClient().Subscribe(ctx, events.DefaultChannel)
	t.Cleanup(func() { _ = sub.Close() })
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	notifier := events.NewRedisNotifier(client, "")
	err = notifier.NotifyChanged(ctx, services.ChangeEvent{AccountID: 1, NoteID: 10, Action: services.ActionDeleted})
	require.NoError(t, err)

	select {
	case msg := <-sub.Channel():
		assert.Equal(t, events.DefaultChannel, msg.Channel)
		assert.JSONEq(t, `{"accountId":1,"noteId":10,"action":"deleted"}`, msg.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("change event was not delivered")
	}
}

func TestRedisNotifier_ClosedConnection(t *testing.T) {
	ctx := context.Background()
	s := miniredis.RunT(t)
	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := redis.DefaultConfig()
	cfg.Host, cfg.Port = host, port
	client, err := redis.NewClient(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, client.Close())

	err = events.NewRedisNotifier(client, "custom").NotifyChanged(ctx, services.ChangeEvent{AccountID: 1})

	require.Error(t, err)
}
