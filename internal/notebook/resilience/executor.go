package resilience

import (
	"context"
	"time"
)

// Config объединяет настройки повторов и Circuit Breaker.
type Config struct {
	MaxAttempts      int           `yaml:"max_attempts" env:"MAX_ATTEMPTS" env-default:"3"`
	InitialBackoff   time.Duration `yaml:"initial_backoff" env:"INITIAL_BACKOFF" env-default:"100ms"`
	MaxBackoff       time.Duration `yaml:"max_backoff" env:"MAX_BACKOFF" env-default:"1s"`
	ErrorThreshold   int           `yaml:"error_threshold" env:"ERROR_THRESHOLD" env-default:"5"`
	OpenTimeout      time.Duration `yaml:"open_timeout" env:"OPEN_TIMEOUT" env-default:"10s"`
	SuccessThreshold int           `yaml:"success_threshold" env:"SUCCESS_THRESHOLD" env-default:"2"`
}

// Executor выполняет вызовы внешнего сервиса через Circuit Breaker и повторы.
// Серия неудачных повторов считается одной ошибкой для Circuit Breaker.
type Executor struct {
	breaker *CircuitBreaker
	retry   *Retry
}

// NewExecutor создает Executor для сервиса name.
func NewExecutor(name string, cfg Config) *Executor {
	retryCfg := DefaultRetryConfig()
	retryCfg.MaxAttempts = cfg.MaxAttempts
	retryCfg.InitialBackoff = cfg.InitialBackoff
	retryCfg.MaxBackoff = cfg.MaxBackoff

	return &Executor{
		breaker: NewCircuitBreaker(name, CircuitBreakerConfig{
			ErrorThreshold:   cfg.ErrorThreshold,
			Timeout:          cfg.OpenTimeout,
			SuccessThreshold: cfg.SuccessThreshold,
		}),
		retry: NewRetry(name, retryCfg),
	}
}

// Execute выполняет операцию.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	return e.breaker.Execute(ctx, func() error {
		return e.retry.Execute(ctx, func() error {
			return operation(ctx)
		})
	})
}

// State возвращает состояние Circuit Breaker.
func (e *Executor) State() CircuitState {
	return e.breaker.State()
}
