package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
)

type cacheEntry struct {
	videos    []domain.Video
	expiresAt time.Time
}

// videoCache is the fallback when Redis is not configured.
type videoCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewVideoCache() repository.VideoCache {
	return &videoCache{entries: make(map[string]cacheEntry), now: time.Now}
}

func (c *videoCache) Get(ctx context.Context, topic string) ([]domain.Video, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(topic))
	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return append([]domain.Video(nil), e.videos...), true, nil
}

func (c *videoCache) Set(ctx context.Context, topic string, videos []domain.Video, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(topic))
	c.entries[key] = cacheEntry{
		videos:    append([]domain.Video(nil), videos...),
		expiresAt: c.now().Add(ttl),
	}
	return nil
}
