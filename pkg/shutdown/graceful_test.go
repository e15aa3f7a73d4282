package shutdown_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"notebook/pkg/shutdown"
)

func TestRunExecutesAllHooks(t *testing.T) {
	var calls atomic.Int32

	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}
	failing := func(context.Context) error {
		calls.Add(1)
		return errors.New("close failed")
	}

	shutdown.Run(context.Background(), time.Second, hook, failing, hook)

	assert.Equal(t, int32(3), calls.Load())
}

func TestRunRespectsTimeout(t *testing.T) {
	slow := func(ctx context.Context) error {
		select {
		case <-time.After(2 * time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	start := time.Now()
	shutdown.Run(context.Background(), 100*time.Millisecond, slow)

	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitReturnsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	called := make(chan struct{})

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	shutdown.Wait(ctx, time.Second, func(context.Context) error {
		close(called)
		return nil
	})

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("hook was not called")
	}
}
