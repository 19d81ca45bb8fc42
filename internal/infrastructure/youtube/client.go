package youtube

import (
	"context"
	"fmt"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/infrastructure/breaker"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// Client searches YouTube for the most viewed videos on a topic.
type Client struct {
	svc        *yt.Service
	maxResults int64
	breaker    *breaker.Breaker
}

func NewClient(ctx context.Context, apiKey string, maxResults int64, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	return &Client{
		svc:        svc,
		maxResults: maxResults,
		breaker:    breaker.New("youtube", breaker.DefaultSettings()),
	}, nil
}

// Search returns up to maxResults videos ordered by view count, with statistics.
func (c *Client) Search(ctx context.Context, topic string) ([]domain.Video, error) {
	return breaker.Execute(c.breaker, func() ([]domain.Video, error) {
		return c.search(ctx, topic)
	})
}

func (c *Client) search(ctx context.Context, topic string) ([]domain.Video, error) {
	found, err := c.svc.Search.List([]string{"id"}).
		Q(topic).
		Type("video").
		Order("viewCount").
		MaxResults(c.maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}

	ids := make([]string, 0, len(found.Items))
	for _, item := range found.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}
	if len(ids) == 0 {
		return []domain.Video{}, nil
	}

	details, err := c.svc.Videos.List([]string{"snippet", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube videos: %w", err)
	}

	videos := make([]domain.Video, 0, len(details.Items))
	for _, item := range details.Items {
		videos = append(videos, toVideo(item))
	}
	return videos, nil
}

func toVideo(item *yt.Video) domain.Video {
	v := domain.Video{ID: item.Id}
	if s := item.Snippet; s != nil {
		v.Title = s.Title
		v.ChannelTitle = s.ChannelTitle
		if t, err := time.Parse(time.RFC3339, s.PublishedAt); err == nil {
			v.PublishedAt = t
		}
	}
	if st := item.Statistics; st != nil {
		v.Views = int64(st.ViewCount)
		v.Likes = int64(st.LikeCount)
		v.Comments = int64(st.CommentCount)
	}
	return v
}
