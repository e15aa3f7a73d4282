package resilience

import "time"

// SetClock подменяет часы Circuit Breaker в тестах.
func (cb *CircuitBreaker) SetClock(now func() time.Time) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.now = now
}
