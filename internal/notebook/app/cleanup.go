package app

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"notebook/internal/notebook/ports/services"
	"notebook/pkg/logger"
)

const (
	methodRunCleanup = "runCleanup"

	maxParallelCleanup = 4

	msgCleanupFailed   = "cleanup action failed"
	msgCleanupFinished = "cleanup finished"
)

// cleanupAction - побочное действие, выполняемое после фиксации изменения заметки.
type cleanupAction struct {
	name string
	run  func(ctx context.Context) error
}

// runCleanup выполняет действия параллельно. Ошибки только логируются,
// поэтому результат основной операции от них не зависит. Возвращает число неудач.
func runCleanup(ctx context.Context, actions []cleanupAction) int {
	if len(actions) == 0 {
		return 0
	}

	log := logger.Log(ctx).With(zap.String("method", methodRunCleanup))
	ctx = context.WithoutCancel(ctx)

	failures := make([]bool, len(actions))
	var g errgroup.Group
	g.SetLimit(maxParallelCleanup)
	for i, action := range actions {
		g.Go(func() error {
			if err := action.run(ctx); err != nil {
				failures[i] = true
				log.Warn(ctx, msgCleanupFailed, zap.String("action", action.name), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, f := range failures {
		if f {
			failed++
		}
	}
	log.Debug(ctx, msgCleanupFinished, zap.Int("actions", len(actions)), zap.Int("failed", failed))
	return failed
}

// imageDeletions строит действия удаления изображений по их URL.
func imageDeletions(store services.ImageStore, urls []string) []cleanupAction {
	actions := make([]cleanupAction, 0, len(urls))
	for _, url := range urls {
		key := store.KeyFromURL(url)
		if key == "" {
			continue
		}
		actions = append(actions, cleanupAction{
			name: "delete image " + key,
			run: func(ctx context.Context) error {
				return store.Delete(ctx, key)
			},
		})
	}
	return actions
}
