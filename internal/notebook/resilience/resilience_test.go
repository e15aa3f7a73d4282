package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notebook/internal/notebook/resilience"
)

var errUnavailable = errors.New("unavailable")

func fastRetry(attempts int) resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.MaxAttempts = attempts
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 2 * time.Millisecond
	return cfg
}

func TestRetry_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds after transient errors", func(t *testing.T) {
		calls := 0
		err := resilience.NewRetry("test", fastRetry(3)).Execute(ctx, func() error {
			calls++
			if calls < 3 {
				return errUnavailable
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := resilience.NewRetry("test", fastRetry(2)).Execute(ctx, func() error {
			calls++
			return errUnavailable
		})

		require.ErrorIs(t, err, errUnavailable)
		assert.Equal(t, 2, calls)
	})

	t.Run("permanent errors are not retried", func(t *testing.T) {
		calls := 0
		err := resilience.NewRetry("test", fastRetry(5)).Execute(ctx, func() error {
			calls++
			return resilience.Permanent(errUnavailable)
		})

		require.ErrorIs(t, err, errUnavailable)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context stops waiting", func(t *testing.T) {
		cfg := fastRetry(3)
		cfg.InitialBackoff = time.Hour
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		err := resilience.NewRetry("test", cfg).Execute(cctx, func() error { return errUnavailable })

		require.ErrorIs(t, err, resilience.ErrContextCanceled)
	})
}

func TestCircuitBreaker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cb := resilience.NewCircuitBreaker("test", resilience.CircuitBreakerConfig{
		ErrorThreshold: 2, Timeout: time.Minute, SuccessThreshold: 1,
	})
	cb.SetClock(func() time.Time { return now })

	fail := func() error { return errUnavailable }
	ok := func() error { return nil }

	require.ErrorIs(t, cb.Execute(ctx, fail), errUnavailable)
	assert.Equal(t, resilience.StateClosed, cb.State())
	require.ErrorIs(t, cb.Execute(ctx, fail), errUnavailable)
	assert.Equal(t, resilience.StateOpen, cb.State())

	called := false
	err := cb.Execute(ctx, func() error { called = true; return nil })
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.False(t, called)

	now = now.Add(2 * time.Minute)
	require.NoError(t, cb.Execute(ctx, ok))
	assert.Equal(t, resilience.StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cb := resilience.NewCircuitBreaker("test", resilience.CircuitBreakerConfig{
		ErrorThreshold: 1, Timeout: time.Second, SuccessThreshold: 2,
	})
	cb.SetClock(func() time.Time { return now })

	_ = cb.Execute(ctx, func() error { return errUnavailable })
	now = now.Add(2 * time.Second)
	_ = cb.Execute(ctx, func() error { return errUnavailable })

	assert.Equal(t, resilience.StateOpen, cb.State())
	assert.Equal(t, "open", cb.State().String())
}

func TestExecutor(t *testing.T) {
	ctx := context.Background()
	exec := resilience.NewExecutor("blob", resilience.Config{
		MaxAttempts: 2, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond,
		ErrorThreshold: 1, OpenTimeout: time.Hour, SuccessThreshold: 1,
	})

	calls := 0
	err := exec.Execute(ctx, func(context.Context) error {
		calls++
		return errUnavailable
	})
	require.ErrorIs(t, err, errUnavailable)
	assert.Equal(t, 2, calls, "retries happen inside one breaker call")
	assert.Equal(t, resilience.StateOpen, exec.State())

	err = exec.Execute(ctx, func(context.Context) error { return nil })
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
}
