package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/3mfound/admin-gateway/src/config"
)

// Redis wraps the shared client used by the session and pending-signup stores.
type Redis struct {
	client *redis.Client
}

func NewRedis(cfg *config.RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Redis{client: client}, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// Client returns the underlying Redis client for direct access
func (r *Redis) Client() *redis.Client {
	return r.client
}
