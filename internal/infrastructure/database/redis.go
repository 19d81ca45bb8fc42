package database

import (
	"context"
	"fmt"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the trend cache. Callers only invoke it when cfg.Enabled().
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetAddr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis %s: %w", cfg.GetAddr(), err)
	}

	return client, nil
}
