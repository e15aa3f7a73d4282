// Package main реализует точку входа сервиса заметок.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"notebook/pkg/logger"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTEBOOK_LOGGER_MODE"
	EnvLoggerLevel = "NOTEBOOK_LOGGER_LEVEL"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

const (
	ErrInitLogger = "failed to initialize logger"
	ErrSyncLogger = "failed to sync logger"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	exitCode := run(ctx)

	if err := logger.Log(ctx).Sync(); err != nil {
		errMsg := err.Error()
		if !strings.Contains(errMsg, ErrSyncStderr) && !strings.Contains(errMsg, ErrSyncStdout) {
			_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err)
		}
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func run(ctx context.Context) int {
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
