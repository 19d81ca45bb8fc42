package domain

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

type ContentStyle string

const (
	StyleEducational   ContentStyle = "educational"
	StyleEntertainment ContentStyle = "entertainment"
	StyleVlogs         ContentStyle = "vlogs"
	StyleTutorials     ContentStyle = "tutorials"
	StyleReviews       ContentStyle = "reviews"
	StyleComedy        ContentStyle = "comedy"
	StyleHowTo         ContentStyle = "howto"
	StyleUnknown       ContentStyle = "unknown"
)

// Normalize lowercases the style; empty input becomes StyleUnknown.
func (s ContentStyle) Normalize() ContentStyle {
	v := strings.ToLower(strings.TrimSpace(string(s)))
	if v == "" {
		return StyleUnknown
	}
	return ContentStyle(v)
}

func (s ContentStyle) IsSet() bool {
	return s.Normalize() != StyleUnknown
}

// Platforms maps a platform name to its follower count. Stored as JSONB.
type Platforms map[string]int64

func (p Platforms) Total() int64 {
	var total int64
	for _, n := range p {
		total += n
	}
	return total
}

func (p Platforms) Value() (driver.Value, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p)
}

func (p *Platforms) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*p = Platforms{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("platforms: unsupported type %T", src)
	}
	out := Platforms{}
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("platforms: %w", err)
	}
	*p = out
	return nil
}

type CreatorProfile struct {
	ID                   int          `json:"id" db:"id"`
	UserID               int          `json:"user_id" db:"user_id"`
	DisplayName          string       `json:"display_name" db:"display_name"`
	Bio                  *string      `json:"bio" db:"bio"`
	ProfileImageURL      *string      `json:"profile_image_url" db:"profile_image_url"`
	Niche                string       `json:"niche" db:"niche"`
	SubNiches            []string     `json:"sub_niches" db:"sub_niches"`
	ContentStyle         ContentStyle `json:"content_style" db:"content_style"`
	AudienceSize         int64        `json:"audience_size" db:"audience_size"`
	Platforms            Platforms    `json:"platforms" db:"platforms"`
	OpenToCollabs        bool         `json:"open_to_collabs" db:"open_to_collabs"`
	CollabInterests      []string     `json:"collab_interests" db:"collab_interests"`
	PreferredMinAudience int64        `json:"preferred_min_audience" db:"preferred_min_audience"`
	PreferredMaxAudience *int64       `json:"preferred_max_audience" db:"preferred_max_audience"`
	CreatedAt            time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at" db:"updated_at"`
}

// SetPlatforms replaces the platform map and recomputes AudienceSize.
// Keys are lowercased so that platform overlap is case-insensitive.
func (p *CreatorProfile) SetPlatforms(platforms map[string]int64) error {
	normalized := make(Platforms, len(platforms))
	var total int64
	for name, followers := range platforms {
		if followers < 0 {
			return ErrNegativeFollowers
		}
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if followers > math.MaxInt64-total {
			return ErrAudienceTooLarge
		}
		total += followers
		normalized[key] += followers
	}
	p.Platforms = normalized
	p.AudienceSize = total
	return nil
}

// NicheSet returns the lowercased union of niche and sub-niches.
func (p *CreatorProfile) NicheSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.SubNiches)+1)
	add := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			set[s] = struct{}{}
		}
	}
	add(p.Niche)
	for _, s := range p.SubNiches {
		add(s)
	}
	return set
}
