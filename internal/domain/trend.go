package domain

import "time"

// Video is one search result from the video platform.
type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ChannelTitle string    `json:"channel_title"`
	PublishedAt  time.Time `json:"published_at"`
	Views        int64     `json:"views"`
	Likes        int64     `json:"likes"`
	Comments     int64     `json:"comments"`
	Virality     int       `json:"virality"`
}

type TrendAnalysis struct {
	ID               int       `json:"id" db:"id"`
	UserID           int       `json:"user_id" db:"user_id"`
	Topic            string    `json:"topic" db:"topic"`
	Summary          string    `json:"summary" db:"summary"`
	SummaryAvailable bool      `json:"summary_available" db:"summary_available"`
	ViralityScore    int       `json:"virality_score" db:"virality_score"`
	VideoCount       int       `json:"video_count" db:"video_count"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
