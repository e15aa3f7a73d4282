package config

import (
	"time"

	"notebook/pkg/db/redis"
)

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host     string        `yaml:"host" env:"NOTEBOOK_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"NOTEBOOK_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"NOTEBOOK_REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"NOTEBOOK_REDIS_DB" env-default:"0"`
	PoolSize int           `yaml:"pool_size" env:"NOTEBOOK_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `yaml:"timeout" env:"NOTEBOOK_REDIS_TIMEOUT" env-default:"3s"`
}

// Options преобразует конфигурацию в настройки общего клиента Redis.
func (c *RedisConfig) Options() *redis.Config {
	return &redis.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}
