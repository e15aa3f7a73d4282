package logger

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxRequestIDLength ограничивает длину идентификатора, принятого от клиента.
const MaxRequestIDLength = 128

type requestIDCtxKey struct{}

// NormalizeRequestID возвращает пригодный для логов идентификатор запроса.
// Значение от клиента обрезается по краям и принимается, только если оно не длиннее
// MaxRequestIDLength и состоит из букв, цифр и символов "-_.:". Иначе генерируется новый.
func NormalizeRequestID(raw string) string {
	id := strings.TrimSpace(raw)
	if id == "" || len(id) > MaxRequestIDLength || strings.IndexFunc(id, invalidRequestIDRune) >= 0 {
		return GenerateRequestID()
	}
	return id
}

func invalidRequestIDRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case r == '-', r == '_', r == '.', r == ':':
		return false
	}
	return true
}

// NewRequestIDContext кладет в контекст нормализованный идентификатор запроса.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey{}, NormalizeRequestID(requestID))
}

// GetRequestID возвращает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDCtxKey{}).(string)
	return id, ok
}

// GenerateRequestID генерирует новый UUID v4.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID добавляет к логгеру поле request_id из контекста.
func (l *Logger) WithRequestID(ctx context.Context) *Logger {
	id, ok := GetRequestID(ctx)
	if !ok {
		return l
	}
	return l.With(zap.String(RequestID, id))
}
