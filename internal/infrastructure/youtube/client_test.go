package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/youtube/v3/search":
			assert.Equal(t, "golang", r.URL.Query().Get("q"))
			assert.Equal(t, "viewCount", r.URL.Query().Get("order"))
			w.Write([]byte(`{"items":[{"id":{"kind":"youtube#video","videoId":"a1"}},{"id":{"kind":"youtube#video","videoId":"b2"}}]}`))
		case "/youtube/v3/videos":
			w.Write([]byte(`{"items":[
				{"id":"a1","snippet":{"title":"Go tour","channelTitle":"Gopher","publishedAt":"2026-01-02T03:04:05Z"},
				 "statistics":{"viewCount":"1500","likeCount":"90","commentCount":"12"}},
				{"id":"b2","snippet":{"title":"Other"}}
			]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), "key", 5,
		option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	videos, err := c.Search(context.Background(), "golang")
	require.NoError(t, err)
	require.Len(t, videos, 2)

	assert.Equal(t, "a1", videos[0].ID)
	assert.Equal(t, "Gopher", videos[0].ChannelTitle)
	assert.Equal(t, int64(1500), videos[0].Views)
	assert.Equal(t, int64(90), videos[0].Likes)
	assert.Equal(t, int64(12), videos[0].Comments)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), videos[0].PublishedAt)

	assert.Zero(t, videos[1].Views)
	assert.True(t, videos[1].PublishedAt.IsZero())
}

func TestSearchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"quota"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), "key", 5,
		option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = c.Search(context.Background(), "golang")
	assert.Error(t, err)
}
