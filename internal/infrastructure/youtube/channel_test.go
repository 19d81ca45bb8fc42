package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(context.Background(), "key", 5,
		option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func TestChannelResolvesHandle(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/youtube/v3/search":
			assert.Equal(t, "gopher", r.URL.Query().Get("q"))
			assert.Equal(t, "channel", r.URL.Query().Get("type"))
			w.Write([]byte(`{"items":[{"snippet":{"channelId":"UC42"}}]}`))
		case "/youtube/v3/channels":
			assert.Equal(t, "UC42", r.URL.Query().Get("id"))
			w.Write([]byte(`{"items":[{"id":"UC42",
				"snippet":{"title":"Gopher TV","thumbnails":{"high":{"url":"https://img/42.jpg"}}},
				"statistics":{"subscriberCount":"1200","videoCount":"80","viewCount":"99000"},
				"contentDetails":{"relatedPlaylists":{"uploads":"UU42"}}}]}`))
		default:
			http.NotFound(w, r)
		}
	})

	ch, err := c.Channel(context.Background(), domain.ChannelRef{Handle: "gopher"})
	require.NoError(t, err)
	assert.Equal(t, &domain.Channel{
		ID:              "UC42",
		Title:           "Gopher TV",
		Thumbnail:       "https://img/42.jpg",
		SubscriberCount: 1200,
		VideoCount:      80,
		TotalViews:      99000,
		UploadsPlaylist: "UU42",
	}, ch)
}

func TestChannelNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[]}`))
	})

	_, err := c.Channel(context.Background(), domain.ChannelRef{ID: "UCmissing"})
	assert.ErrorIs(t, err, domain.ErrChannelNotFound)
	_, err = c.Channel(context.Background(), domain.ChannelRef{Handle: "nobody"})
	assert.ErrorIs(t, err, domain.ErrChannelNotFound)
}

func TestUploadVideos(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/youtube/v3/playlistItems":
			assert.Equal(t, "UU42", r.URL.Query().Get("playlistId"))
			assert.Equal(t, "20", r.URL.Query().Get("maxResults"))
			w.Write([]byte(`{"items":[{"contentDetails":{"videoId":"v1"}},{"contentDetails":{"videoId":"v2"}}]}`))
		case "/youtube/v3/videos":
			w.Write([]byte(`{"items":[
				{"id":"v1","snippet":{"title":"First","publishedAt":"2026-03-01T00:00:00Z"},"statistics":{"viewCount":"300"}},
				{"id":"v2","snippet":{"title":"Second"}}
			]}`))
		default:
			http.NotFound(w, r)
		}
	})

	videos, err := c.UploadVideos(context.Background(), "UU42", 20)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "v1", videos[0].ID)
	assert.Equal(t, int64(300), videos[0].Views)
	assert.Equal(t, "Second", videos[1].Title)
}
