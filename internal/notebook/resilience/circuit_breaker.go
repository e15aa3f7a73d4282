// Package resilience защищает вызовы внешних хранилищ повторами и Circuit Breaker.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"notebook/pkg/logger"
)

// CircuitState представляет состояние Circuit Breaker.
type CircuitState int

// Состояния Circuit Breaker.
const (
	StateClosed CircuitState = iota
	StateOpen
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Константы для логирования.
const (
	LogCircuitStateChange = "circuit breaker state changed"
	LogCircuitReject      = "circuit breaker rejected request"
)

// ErrCircuitOpen возвращается, когда Circuit Breaker находится в открытом состоянии.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig содержит настройки Circuit Breaker.
type CircuitBreakerConfig struct {
	// ErrorThreshold - количество ошибок подряд до перехода в открытое состояние.
	ErrorThreshold int
	// Timeout - время в открытом состоянии до пробного запроса.
	Timeout time.Duration
	// SuccessThreshold - количество успешных пробных запросов до закрытия.
	SuccessThreshold int
}

// DefaultCircuitBreakerConfig возвращает конфигурацию Circuit Breaker по умолчанию.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		ErrorThreshold:   5,
		Timeout:          10 * time.Second,
		SuccessThreshold: 2,
	}
}

// CircuitBreaker реализует паттерн Circuit Breaker.
type CircuitBreaker struct {
	name   string
	config CircuitBreakerConfig
	now    func() time.Time

	mu              sync.Mutex
	state           CircuitState
	failures        int
	successes       int
	lastStateChange time.Time
}

// NewCircuitBreaker создает новый экземпляр Circuit Breaker.
func NewCircuitBreaker(name string, config CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		name:            name,
		config:          config,
		now:             time.Now,
		state:           StateClosed,
		lastStateChange: time.Now(),
	}
}

// Execute выполняет функцию с защитой Circuit Breaker.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if !cb.allow(ctx) {
		return ErrCircuitOpen
	}

	err := fn()
	cb.record(ctx, err)
	return err
}

// State возвращает текущее состояние.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) allow(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if cb.now().Sub(cb.lastStateChange) < cb.config.Timeout {
			logger.Log(ctx).Debug(ctx, LogCircuitReject, zap.String("circuit_breaker", cb.name))
			return false
		}
		cb.setState(ctx, StateHalfOpen)
		return true
	default:
		return true
	}
}

func (cb *CircuitBreaker) record(ctx context.Context, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		switch cb.state {
		case StateClosed:
			cb.failures++
			if cb.failures >= cb.config.ErrorThreshold {
				cb.setState(ctx, StateOpen)
			}
		case StateHalfOpen:
			cb.setState(ctx, StateOpen)
		}
		return
	}

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.setState(ctx, StateClosed)
		}
	}
}

// setState вызывается под cb.mu.
func (cb *CircuitBreaker) setState(ctx context.Context, state CircuitState) {
	logger.Log(ctx).Info(ctx, LogCircuitStateChange,
		zap.String("circuit_breaker", cb.name),
		zap.Stringer("from", cb.state),
		zap.Stringer("to", state),
		zap.Int("failures", cb.failures))

	cb.state = state
	cb.lastStateChange = cb.now()
	cb.failures = 0
	cb.successes = 0
}
