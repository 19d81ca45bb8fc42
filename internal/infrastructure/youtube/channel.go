package youtube

import (
	"context"
	"fmt"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/infrastructure/breaker"
)

// Channel resolves ref and returns the channel's statistics and uploads playlist.
// Unknown channels give domain.ErrChannelNotFound.
func (c *Client) Channel(ctx context.Context, ref domain.ChannelRef) (*domain.Channel, error) {
	ch, err := breaker.Execute(c.breaker, func() (*domain.Channel, error) {
		return c.channel(ctx, ref)
	})
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, domain.ErrChannelNotFound
	}
	return ch, nil
}

func (c *Client) channel(ctx context.Context, ref domain.ChannelRef) (*domain.Channel, error) {
	id := ref.ID
	if id == "" {
		found, err := c.svc.Search.List([]string{"snippet"}).
			Q(ref.Handle).
			Type("channel").
			MaxResults(1).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("youtube channel search: %w", err)
		}
		if len(found.Items) == 0 || found.Items[0].Snippet == nil {
			return nil, nil
		}
		id = found.Items[0].Snippet.ChannelId
	}

	resp, err := c.svc.Channels.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(id).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube channels: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}

	item := resp.Items[0]
	ch := &domain.Channel{ID: item.Id}
	if s := item.Snippet; s != nil {
		ch.Title = s.Title
		if s.Thumbnails != nil && s.Thumbnails.High != nil {
			ch.Thumbnail = s.Thumbnails.High.Url
		}
	}
	if st := item.Statistics; st != nil {
		ch.SubscriberCount = int64(st.SubscriberCount)
		ch.VideoCount = int64(st.VideoCount)
		ch.TotalViews = int64(st.ViewCount)
	}
	if cd := item.ContentDetails; cd != nil && cd.RelatedPlaylists != nil {
		ch.UploadsPlaylist = cd.RelatedPlaylists.Uploads
	}
	return ch, nil
}

// UploadVideos returns up to limit of the latest uploads in playlistID, with statistics.
func (c *Client) UploadVideos(ctx context.Context, playlistID string, limit int64) ([]domain.Video, error) {
	return breaker.Execute(c.breaker, func() ([]domain.Video, error) {
		return c.uploadVideos(ctx, playlistID, limit)
	})
}

func (c *Client) uploadVideos(ctx context.Context, playlistID string, limit int64) ([]domain.Video, error) {
	items, err := c.svc.PlaylistItems.List([]string{"contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(limit).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube playlist items: %w", err)
	}

	ids := make([]string, 0, len(items.Items))
	for _, item := range items.Items {
		if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
			ids = append(ids, item.ContentDetails.VideoId)
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
