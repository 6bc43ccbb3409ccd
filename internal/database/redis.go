package database

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"community-api/internal/config"
)

// NewRedis creates a redis client from the configuration and verifies the
// connection. The client backs the auth token blacklist.
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	var client *redis.Client

	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, err
		}
		client = redis.NewClient(opts)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Addr(),
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
