// Package shutdown ожидает SIGINT/SIGTERM и выполняет хуки завершения.
package shutdown

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"notebook/pkg/logger"
)

// Hook - действие, выполняемое при завершении приложения.
type Hook func(ctx context.Context) error

const (
	logSignalReceived = "shutdown signal received"
	logHookFailed     = "shutdown hook failed"
	logTimeoutReached = "shutdown timeout reached"
)

// Wait блокируется до получения сигнала или отмены ctx,
// затем параллельно выполняет хуки в пределах timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	log := logger.Log(ctx)
	log.Info(ctx, logSignalReceived)

	Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run выполняет хуки параллельно и возвращается, когда все завершились или истек timeout.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	log := logger.Log(ctx)

	hookCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(hookCtx); err != nil {
				log.Warn(hookCtx, logHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(ctx, logTimeoutReached, zap.Duration("timeout", timeout))
	}
}
