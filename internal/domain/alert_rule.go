package domain

import (
	"strings"
	"time"
)

type AlertChannel string

const (
	ChannelEmail AlertChannel = "email"
	ChannelSMS   AlertChannel = "sms"
)

const DefaultAlertThreshold = 70

type AlertRule struct {
	ID              int        `json:"id" db:"id"`
	UserID          int        `json:"user_id" db:"user_id"`
	Topic           string     `json:"topic" db:"topic"`
	ThresholdScore  int        `json:"threshold_score" db:"threshold_score"`
	Channels        []string   `json:"channels" db:"channels"`
	IsActive        bool       `json:"is_active" db:"is_active"`
	LastTriggeredAt *time.Time `json:"last_triggered_at" db:"last_triggered_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// ShouldTrigger reports whether score crosses the threshold outside the throttle window.
func (r *AlertRule) ShouldTrigger(score int, now time.Time, throttle time.Duration) bool {
	if !r.IsActive || score < r.ThresholdScore {
		return false
	}
	if r.LastTriggeredAt != nil && now.Sub(*r.LastTriggeredAt) < throttle {
		return false
	}
	return true
}

// NormalizeChannels lowercases, dedupes and validates channel names.
// An empty list defaults to email.
func NormalizeChannels(channels []string) ([]string, error) {
	if len(channels) == 0 {
		return []string{string(ChannelEmail)}, nil
	}
	seen := make(map[string]bool, len(channels))
	out := make([]string, 0, len(channels))
	for _, ch := range channels {
		c := strings.ToLower(strings.TrimSpace(ch))
		if c != string(ChannelEmail) && c != string(ChannelSMS) {
			return nil, ErrInvalidChannel
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out, nil
}
