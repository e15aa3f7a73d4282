package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"notebook/pkg/logger"
)

// RetryConfig содержит настройки повторов.
type RetryConfig struct {
	// MaxAttempts - максимальное количество попыток, включая первую.
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64
	// ShouldRetry решает, стоит ли повторять запрос после ошибки.
	ShouldRetry func(error) bool
}

// DefaultRetryConfig возвращает конфигурацию повторов по умолчанию.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		BackoffFactor:  2.0,
		ShouldRetry:    defaultShouldRetry,
	}
}

// ErrContextCanceled возвращается, когда контекст отменен во время ожидания перед повтором.
var ErrContextCanceled = errors.New("context was canceled during retry")

// Permanent помечает ошибку как не подлежащую повтору.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func defaultShouldRetry(err error) bool {
	var permanent *permanentError
	return !errors.As(err, &permanent) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

// Константы для логирования.
const (
	LogRetryAttempt     = "retry attempt"
	LogRetrySuccess     = "retry succeeded"
	LogRetryMaxAttempts = "retry max attempts reached"
)

// Retry выполняет функцию с повторными попытками и экспоненциальной задержкой.
type Retry struct {
	name   string
	config RetryConfig
}

// NewRetry создает новый экземпляр Retry.
func NewRetry(name string, config RetryConfig) *Retry {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	if config.ShouldRetry == nil {
		config.ShouldRetry = defaultShouldRetry
	}
	return &Retry{name: name, config: config}
}

// Execute выполняет операцию, повторяя ее при временных ошибках.
func (r *Retry) Execute(ctx context.Context, operation func() error) error {
	log := logger.Log(ctx).With(zap.String("retry", r.name))

	backoff := r.config.InitialBackoff
	for attempt := 1; ; attempt++ {
		err := operation()
		if err == nil {
			if attempt > 1 {
				log.Info(ctx, LogRetrySuccess, zap.Int("attempts", attempt))
			}
			return nil
		}
		if !r.config.ShouldRetry(err) {
			return err
		}
		if attempt >= r.config.MaxAttempts {
			log.Warn(ctx, LogRetryMaxAttempts, zap.Int("attempts", attempt), zap.Error(err))
			return err
		}

		log.Debug(ctx, LogRetryAttempt,
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %w", ErrContextCanceled, ctx.Err())
		}

		backoff = min(time.Duration(float64(backoff)*r.config.BackoffFactor), r.config.MaxBackoff)
	}
}
