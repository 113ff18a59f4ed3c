// Package config reads the service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageModePostgres = "postgres"
	StorageModeDisabled = "disabled"
)

var (
	ErrUnknownStorageMode = errors.New("unknown storage mode")
	ErrMissingDatabase    = errors.New("postgres storage requires DATABASE_URL or POSTGRES_HOST")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
)

type Config struct {
	HTTPAddr       string
	StorageMode    string
	DatabaseURL    string
	Postgres       PostgresConfig
	Auth           AuthConfig
	AllowedOrigins []string
	Redis          RedisConfig
	RateLimit      RateLimitConfig
	RabbitMQ       RabbitMQConfig
	Log            LogConfig
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
}

type AuthConfig struct {
	JWTSecret      string
	GoogleClientID string
	OwnerOpenID    string
	OwnerEmail     string
	RedirectURL    string
	CookieDomain   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

// Enabled reports whether vote casting is throttled at all.
func (c RateLimitConfig) Enabled() bool {
	return c.Limit > 0 && c.Window > 0
}

type RabbitMQConfig struct {
	URL   string
	Queue string
}

type LogConfig struct {
	Level  string
	Format string
}

var keys = []string{
	"HTTP_ADDR", "STORAGE_MODE", "DATABASE_URL",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"JWT_SECRET", "GOOGLE_CLIENT_ID", "OWNER_OPEN_ID", "OWNER_EMAIL",
	"ALLOWED_ORIGINS", "AUTH_REDIRECT_URL", "COOKIE_DOMAIN",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"VOTE_RATE_LIMIT", "VOTE_RATE_WINDOW",
	"RABBITMQ_URL", "NOTIFY_QUEUE",
	"LOG_LEVEL", "LOG_FORMAT",
}

// Load reads the configuration from environment variables. The .env file, if
// any, must already be loaded into the process environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	v.SetDefault("HTTP_ADDR", "0.0.0.0:8080")
	v.SetDefault("STORAGE_MODE", StorageModePostgres)
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("AUTH_REDIRECT_URL", "http://localhost:3000")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("VOTE_RATE_LIMIT", 10)
	v.SetDefault("VOTE_RATE_WINDOW", time.Minute)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	cfg := &Config{
		HTTPAddr:    v.GetString("HTTP_ADDR"),
		StorageMode: strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_MODE"))),
		DatabaseURL: v.GetString("DATABASE_URL"),
		Postgres: PostgresConfig{
			Host:     v.GetString("POSTGRES_HOST"),
			Port:     v.GetString("POSTGRES_PORT"),
			User:     v.GetString("POSTGRES_USER"),
			Password: v.GetString("POSTGRES_PASSWORD"),
			DB:       v.GetString("POSTGRES_DB"),
		},
		Auth: AuthConfig{
			JWTSecret:      v.GetString("JWT_SECRET"),
			GoogleClientID: v.GetString("GOOGLE_CLIENT_ID"),
			OwnerOpenID:    v.GetString("OWNER_OPEN_ID"),
			OwnerEmail:     v.GetString("OWNER_EMAIL"),
			RedirectURL:    v.GetString("AUTH_REDIRECT_URL"),
			CookieDomain:   v.GetString("COOKIE_DOMAIN"),
		},
		AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Limit:  v.GetInt("VOTE_RATE_LIMIT"),
			Window: v.GetDuration("VOTE_RATE_WINDOW"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:   v.GetString("RABBITMQ_URL"),
			Queue: v.GetString("NOTIFY_QUEUE"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageMode {
	case StorageModeDisabled:
		return nil
	case StorageModePostgres:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageMode, c.StorageMode)
	}

	if c.DSN() == "" {
		return ErrMissingDatabase
	}
	if c.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

// DSN returns DATABASE_URL when set, otherwise a URL assembled from the
// POSTGRES_* settings. It is empty when neither is configured.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.Postgres.DSN()
}

func (p PostgresConfig) DSN() string {
	if p.Host == "" {
		return ""
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     p.Host + ":" + p.Port,
		Path:     "/" + p.DB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func (c LogConfig) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.level()}
	if strings.EqualFold(c.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func (c LogConfig) level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
