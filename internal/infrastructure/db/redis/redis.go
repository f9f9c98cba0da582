// Package redis provides the Redis handle backing the server-side session
// store and the readiness probe. Session records are small and hot, so the
// connection is validated once at startup and shared for the process lifetime.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// Config selects the Redis instance holding session records.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Connect initialises the client and verifies connectivity with a ping, so a
// misconfigured session store fails the boot instead of the first login.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
