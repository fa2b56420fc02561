package database

import (
	"context"
	"fmt"
	"time"

	"syndl/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to the remote synchronized store. Callers treat a failure
// here as "remote unavailable" and fall back to local-only operation.
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return client, nil
}
