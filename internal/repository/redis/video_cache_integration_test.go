//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *goredis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(context.Background()) }) //nolint:errcheck

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := goredis.NewClient(&goredis.Options{Addr: host + ":" + port.Port()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestVideoCache(t *testing.T) {
	cache := NewVideoCache(startRedis(t))
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "golang")
	require.NoError(t, err)
	assert.False(t, ok)

	videos := []domain.Video{{ID: "v1", Title: "Go in 100s", Views: 1000, Likes: 50}}
	require.NoError(t, cache.Set(ctx, "GoLang ", videos, time.Minute))

	got, ok, err := cache.Get(ctx, "golang")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, videos, got)
}
