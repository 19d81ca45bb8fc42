package collab

import (
	"math"
	"strings"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
)

// Weights are percentages of the total score and must sum to 100.
type Weights struct {
	Niche    float64
	Audience float64
	Style    float64
	Platform float64
	Activity float64
}

// Config is shared by the scorer, the matchmaking query and the request lifecycle.
type Config struct {
	Weights Weights
	// CompatibleStyles lists styles that pair well. Lookups are symmetric.
	CompatibleStyles  map[domain.ContentStyle][]domain.ContentStyle
	RequestTTL        time.Duration
	DefaultMatchLimit int
	MaxMatchLimit     int
}

func DefaultConfig() Config {
	return Config{
		Weights: Weights{Niche: 30, Audience: 25, Style: 20, Platform: 15, Activity: 10},
		CompatibleStyles: map[domain.ContentStyle][]domain.ContentStyle{
			domain.StyleEducational:   {domain.StyleTutorials, "explainers", domain.StyleHowTo},
			domain.StyleEntertainment: {domain.StyleComedy, domain.StyleVlogs, "challenges"},
			domain.StyleReviews:       {domain.StyleTutorials, domain.StyleHowTo, domain.StyleEducational},
		},
		RequestTTL:        14 * 24 * time.Hour,
		DefaultMatchLimit: 20,
		MaxMatchLimit:     100,
	}
}

type Level string

const (
	LevelExcellent Level = "Excellent Match"
	LevelGood      Level = "Good Match"
	LevelModerate  Level = "Moderate Match"
	LevelLow       Level = "Low Match"
)

func LevelFor(total float64) Level {
	switch {
	case total >= 80:
		return LevelExcellent
	case total >= 60:
		return LevelGood
	case total >= 40:
		return LevelModerate
	default:
		return LevelLow
	}
}

type Breakdown struct {
	Niche    float64 `json:"niche"`
	Audience float64 `json:"audience"`
	Style    float64 `json:"style"`
	Platform float64 `json:"platform"`
	Activity float64 `json:"activity"`
}

type MatchScore struct {
	Total     float64   `json:"total"`
	Breakdown Breakdown `json:"breakdown"`
	Level     Level     `json:"level"`
}

// Scorer computes match scores. It holds no state beyond its configuration.
type Scorer struct {
	cfg Config
}

func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score rates how well a fits b. b is the receiving side: its audience
// preferences and its recency are what count.
func (s *Scorer) Score(a, b *domain.CreatorProfile, now time.Time) MatchScore {
	bd := Breakdown{
		Niche:    nicheScore(a, b),
		Audience: audienceScore(a, b),
		Style:    s.styleScore(a.ContentStyle, b.ContentStyle),
		Platform: platformScore(a.Platforms, b.Platforms),
		Activity: activityScore(b.UpdatedAt, now),
	}

	w := s.cfg.Weights
	raw := (bd.Niche*w.Niche + bd.Audience*w.Audience + bd.Style*w.Style +
		bd.Platform*w.Platform + bd.Activity*w.Activity) / 100

	// The level comes from the unrounded total: 79.96 is shown as 80.0 but stays a Good Match.
	return MatchScore{Total: math.Round(raw*10) / 10, Breakdown: bd, Level: LevelFor(raw)}
}

func nicheScore(a, b *domain.CreatorProfile) float64 {
	if an, bn := strings.TrimSpace(a.Niche), strings.TrimSpace(b.Niche); an != "" && strings.EqualFold(an, bn) {
		return 100
	}
	bSet := b.NicheSet()
	shared := 0
	for n := range a.NicheSet() {
		if _, ok := bSet[n]; ok {
			shared++
		}
	}
	return math.Min(float64(shared)*40, 80)
}

func audienceScore(a, b *domain.CreatorProfile) float64 {
	if a.AudienceSize <= 0 || b.AudienceSize <= 0 {
		return 0
	}

	small, large := a.AudienceSize, b.AudienceSize
	if small > large {
		small, large = large, small
	}
	ratio := float64(small) / float64(large)

	var score float64
	switch {
	case ratio >= 0.5:
		score = 100
	case ratio >= 0.2:
		score = 70
	case ratio >= 0.1:
		score = 40
	default:
		score = 20
	}

	if b.PreferredMinAudience > 0 && a.AudienceSize < b.PreferredMinAudience {
		score = math.Max(0, score-30)
	}
	if b.PreferredMaxAudience != nil && *b.PreferredMaxAudience > 0 && a.AudienceSize > *b.PreferredMaxAudience {
		score = math.Max(0, score-20)
	}
	return score
}

func (s *Scorer) styleScore(a, b domain.ContentStyle) float64 {
	a, b = a.Normalize(), b.Normalize()
	if !a.IsSet() || !b.IsSet() {
		return 50
	}
	if a == b {
		return 100
	}
	if s.compatible(a, b) || s.compatible(b, a) {
		return 70
	}
	return 30
}

func (s *Scorer) compatible(from, to domain.ContentStyle) bool {
	for _, c := range s.cfg.CompatibleStyles[from] {
		if c == to {
			return true
		}
	}
	return false
}

// platformScore is the Jaccard similarity of the two platform sets, scaled to 100.
func platformScore(a, b domain.Platforms) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	common := 0
	for name := range a {
		if _, ok := b[name]; ok {
			common++
		}
	}
	union := len(a) + len(b) - common
	return float64(common) / float64(union) * 100
}

func activityScore(updatedAt, now time.Time) float64 {
	if updatedAt.IsZero() {
		return 100
	}
	days := int(now.Sub(updatedAt).Hours() / 24)
	switch {
	case days <= 7:
		return 100
	case days <= 30:
		return 80
	case days <= 90:
		return 60
	default:
		return 30
	}
}
