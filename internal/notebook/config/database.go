package config

import (
	"fmt"
	"time"

	"notebook/pkg/db/postgres"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host           string `yaml:"host" env:"NOTEBOOK_POSTGRES_HOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"NOTEBOOK_POSTGRES_PORT" env-default:"5432"`
	User           string `yaml:"user" env:"NOTEBOOK_POSTGRES_USER" env-default:"postgres"`
	Password       string `yaml:"password" env:"NOTEBOOK_POSTGRES_PASSWORD" env-default:"postgres"`
	Database       string `yaml:"database" env:"NOTEBOOK_POSTGRES_DB" env-default:"notebook"`
	SSLMode        string `yaml:"ssl_mode" env:"NOTEBOOK_POSTGRES_SSL_MODE" env-default:"disable"`
	MinConn        int    `yaml:"min_conn" env:"NOTEBOOK_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn        int    `yaml:"max_conn" env:"NOTEBOOK_POSTGRES_MAX_CONN" env-default:"10"`
	MigrationsPath string `yaml:"migrations_path" env:"NOTEBOOK_MIGRATIONS_PATH" env-default:"migrations/notebook"`

	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"NOTEBOOK_POSTGRES_MAX_CONN_LIFETIME" env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"NOTEBOOK_POSTGRES_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// GetDSN возвращает строку подключения к Postgres.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}

// PoolOptions возвращает параметры пула соединений.
func (p *PostgresConfig) PoolOptions() postgres.PoolOptions {
	return postgres.PoolOptions{
		MinConns:        p.MinConn,
		MaxConns:        p.MaxConn,
		MaxConnLifetime: p.MaxConnLifetime,
		MaxConnIdleTime: p.MaxConnIdleTime,
	}
}
