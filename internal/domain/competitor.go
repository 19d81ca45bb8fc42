package domain

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"
)

const DefaultViralThreshold = 70

// Competitor is a channel a user follows for benchmarking.
type Competitor struct {
	ID              int        `json:"id" db:"id"`
	UserID          int        `json:"user_id" db:"user_id"`
	ChannelID       string     `json:"channel_id" db:"channel_id"`
	ChannelName     string     `json:"channel_name" db:"channel_name"`
	ChannelURL      string     `json:"channel_url" db:"channel_url"`
	Thumbnail       *string    `json:"thumbnail" db:"thumbnail"`
	SubscriberCount int64      `json:"subscriber_count" db:"subscriber_count"`
	VideoCount      int64      `json:"video_count" db:"video_count"`
	TotalViews      int64      `json:"total_views" db:"total_views"`
	AverageViews    int64      `json:"average_views" db:"average_views"`
	UploadFrequency *string    `json:"upload_frequency" db:"upload_frequency"`
	UploadsPlaylist string     `json:"-" db:"uploads_playlist"`
	IsActive        bool       `json:"is_active" db:"is_active"`
	LastSyncedAt    *time.Time `json:"last_synced_at" db:"last_synced_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

type CompetitorVideo struct {
	ID             int       `json:"id" db:"id"`
	CompetitorID   int       `json:"competitor_id" db:"competitor_id"`
	VideoID        string    `json:"video_id" db:"video_id"`
	Title          string    `json:"title" db:"title"`
	PublishedAt    time.Time `json:"published_at" db:"published_at"`
	Views          int64     `json:"views" db:"views"`
	Likes          int64     `json:"likes" db:"likes"`
	Comments       int64     `json:"comments" db:"comments"`
	EngagementRate float64   `json:"engagement_rate" db:"engagement_rate"`
	ViralScore     int       `json:"viral_score" db:"viral_score"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Channel is a video platform channel with its public statistics.
type Channel struct {
	ID              string
	Title           string
	Thumbnail       string
	SubscriberCount int64
	VideoCount      int64
	TotalViews      int64
	UploadsPlaylist string
}

// ChannelRef identifies a channel either by id or by a handle or custom name
// that still has to be resolved.
type ChannelRef struct {
	ID     string
	Handle string
}

// ParseChannelURL extracts a channel reference from the usual channel URL forms:
// /channel/<id>, /@handle, /c/<name> and /user/<name>.
func ParseChannelURL(raw string) (ChannelRef, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ChannelRef{}, ErrInvalidChannelURL
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host = strings.TrimPrefix(host, "m.")
	if host != "youtube.com" {
		return ChannelRef{}, ErrInvalidChannelURL
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch {
	case len(parts) >= 2 && parts[0] == "channel" && parts[1] != "":
		return ChannelRef{ID: parts[1]}, nil
	case len(parts) >= 1 && strings.HasPrefix(parts[0], "@") && len(parts[0]) > 1:
		return ChannelRef{Handle: parts[0][1:]}, nil
	case len(parts) >= 2 && (parts[0] == "c" || parts[0] == "user") && parts[1] != "":
		return ChannelRef{Handle: parts[1]}, nil
	}
	return ChannelRef{}, ErrInvalidChannelURL
}

// EngagementRate is likes plus comments as a percentage of views, rounded to two places.
func EngagementRate(views, likes, comments int64) float64 {
	if views <= 0 {
		return 0
	}
	rate := float64(likes+comments) / float64(views) * 100
	return math.Round(rate*100) / 100
}

// UploadFrequency labels the mean gap between consecutive uploads.
// It returns nil with fewer than two dated uploads.
func UploadFrequency(published []time.Time) *string {
	var dated []time.Time
	for _, t := range published {
		if !t.IsZero() {
			dated = append(dated, t)
		}
	}
	if len(dated) < 2 {
		return nil
	}
	oldest, newest := dated[0], dated[0]
	for _, t := range dated[1:] {
		if t.Before(oldest) {
			oldest = t
		}
		if t.After(newest) {
			newest = t
		}
	}
	days := newest.Sub(oldest).Hours() / 24 / float64(len(dated)-1)

	var label string
	switch {
	case days <= 1:
		label = "Daily"
	case days <= 3:
		label = fmt.Sprintf("%d videos/week", int(7/days))
	case days <= 7:
		label = "Weekly"
	case days <= 14:
		label = "Bi-weekly"
	default:
		label = fmt.Sprintf("Every %d days", int(days))
	}
	return &label
}
