package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Strategy names accepted in SESSION_STRATEGY.
const (
	StrategyToken   = "token"
	StrategySession = "session"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionStrategy selects how identity is carried between requests:
	// "token" issues stateless signed bearer tokens, "session" keeps
	// server-side session records in Redis behind a cookie.
	SessionStrategy string        `env:"SESSION_STRATEGY, default=token"`
	JWTSecret       string        `env:"JWT_SECRET"`
	TokenTTL        time.Duration `env:"TOKEN_TTL,   default=168h"`
	SessionTTL      time.Duration `env:"SESSION_TTL, default=24h"`

	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Catalog CatalogConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=book_tracker"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type CatalogConfig struct {
	URL    string `env:"GOOGLE_BOOKS_URL"`
	APIKey string `env:"GOOGLE_BOOKS_API_KEY"`
}

// Load reads configuration from environment variables using go-envconfig
// and rejects combinations the server cannot run with.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch cfg.SessionStrategy {
	case StrategyToken:
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("config: JWT_SECRET is required with SESSION_STRATEGY=token")
		}
	case StrategySession:
		// Session records live in Redis; the signing secret is unused.
	default:
		return nil, fmt.Errorf("config: unknown SESSION_STRATEGY %q", cfg.SessionStrategy)
	}

	return &cfg, nil
}

// IsDevelopment reports whether the server runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
