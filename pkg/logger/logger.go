// Package logger предоставляет обертку над zap с поддержкой контекста и request_id.
package logger

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment определяет режим работы логгера.
type Environment string

// Поддерживаемые режимы логгера.
const (
	Development Environment = "development"
	Production  Environment = "production"
)

// RequestID - имя поля с идентификатором запроса.
const RequestID = "request_id"

// Logger оборачивает zap.Logger и добавляет request_id из контекста.
type Logger struct {
	l *zap.Logger
}

// NewLogger создает логгер для указанного окружения и уровня.
// Неизвестный или пустой уровень трактуется как info.
func NewLogger(env Environment, level string) (*Logger, error) {
	var cfg zap.Config
	if env == Production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}
	return &Logger{l: zl}, nil
}

// NewFromZap оборачивает готовый zap.Logger, например zaptest или zap.NewNop.
func NewFromZap(zl *zap.Logger) *Logger {
	return &Logger{l: zl}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// With возвращает новый логгер с дополнительными полями.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{l: l.l.With(fields...)}
}

// Debug пишет сообщение уровня debug.
func (l *Logger) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Debug(msg, addRequestID(ctx, fields)...)
}

// Info пишет сообщение уровня info.
func (l *Logger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Info(msg, addRequestID(ctx, fields)...)
}

// Warn пишет сообщение уровня warn.
func (l *Logger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Warn(msg, addRequestID(ctx, fields)...)
}

// Error пишет сообщение уровня error.
func (l *Logger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Error(msg, addRequestID(ctx, fields)...)
}

// Fatal пишет сообщение и завершает процесс.
func (l *Logger) Fatal(ctx context.Context, msg string, fields ...zap.Field) {
	l.l.Fatal(msg, addRequestID(ctx, fields)...)
}

// Sync сбрасывает буферы.
func (l *Logger) Sync() error {
	return l.l.Sync()
}

func addRequestID(ctx context.Context, fields []zap.Field) []zap.Field {
	if ctx == nil {
		return fields
	}
	if id, ok := GetRequestID(ctx); ok {
		return append(fields, zap.String(RequestID, id))
	}
	return fields
}
