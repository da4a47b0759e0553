package redis

import (
	"context"
	"time"

	goRedis "github.com/redis/go-redis/v9"

	"github.com/tasksync/backend/internal/config"
)

// NewClient creates a Redis client and performs a health check.
func NewClient(cfg config.StoreConfig) (*goRedis.Client, error) {
	opts, err := goRedis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	if cfg.RedisPass != "" {
		opts.Password = cfg.RedisPass
	}
	if cfg.RedisDB != 0 {
		opts.DB = cfg.RedisDB
	}

	client := goRedis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}
