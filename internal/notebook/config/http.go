package config

import (
	"net"
	"strconv"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
// BodyLimit должен превышать максимальный размер изображения.
type HTTPConfig struct {
	Host          string        `yaml:"host" env:"NOTEBOOK_HTTP_HOST" env-default:"0.0.0.0"`
	Port          int           `yaml:"port" env:"NOTEBOOK_HTTP_PORT" env-default:"8080"`
	ReadTimeout   time.Duration `yaml:"read_timeout" env:"NOTEBOOK_HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout  time.Duration `yaml:"write_timeout" env:"NOTEBOOK_HTTP_WRITE_TIMEOUT" env-default:"30s"`
	BodyLimit     int           `yaml:"body_limit" env:"NOTEBOOK_HTTP_BODY_LIMIT" env-default:"6291456"`
	SessionCookie string        `yaml:"session_cookie" env:"NOTEBOOK_HTTP_SESSION_COOKIE" env-default:"session_token"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
