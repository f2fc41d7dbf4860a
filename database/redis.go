package database

import (
	"context"
	"fmt"
	"time"

	"github.com/BrianNzangi/workit-ecommerce-sub007/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis creates a Redis client for the live-cart mirror and verifies
// connectivity with a ping.
func ConnectRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
