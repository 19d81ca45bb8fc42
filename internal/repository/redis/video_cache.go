package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"
)

const videoKeyPrefix = "trends:videos:"

type videoCache struct {
	client *goredis.Client
}

// NewVideoCache stores search results as JSON strings keyed by lowercased topic.
func NewVideoCache(client *goredis.Client) repository.VideoCache {
	return &videoCache{client: client}
}

func videoKey(topic string) string {
	return videoKeyPrefix + strings.ToLower(strings.TrimSpace(topic))
}

func (c *videoCache) Get(ctx context.Context, topic string) ([]domain.Video, bool, error) {
	data, err := c.client.Get(ctx, videoKey(topic)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var videos []domain.Video
	if err := json.Unmarshal(data, &videos); err != nil {
		return nil, false, fmt.Errorf("decode cached videos: %w", err)
	}
	return videos, true, nil
}

func (c *videoCache) Set(ctx context.Context, topic string, videos []domain.Video, ttl time.Duration) error {
	data, err := json.Marshal(videos)
	if err != nil {
		return fmt.Errorf("encode videos: %w", err)
	}
	if err := c.client.Set(ctx, videoKey(topic), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
