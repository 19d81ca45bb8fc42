package collab

import (
	"testing"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newProfile(t *testing.T, id int, niche string, platforms map[string]int64) *domain.CreatorProfile {
	t.Helper()
	p := &domain.CreatorProfile{
		ID:            id,
		UserID:        id * 10,
		DisplayName:   niche,
		Niche:         niche,
		OpenToCollabs: true,
		UpdatedAt:     testNow,
		CreatedAt:     testNow,
	}
	require.NoError(t, p.SetPlatforms(platforms))
	return p
}

func TestScoreSameNicheSimilarAudience(t *testing.T) {
	s := NewScorer(DefaultConfig())
	a := newProfile(t, 1, "Tech", map[string]int64{"youtube": 100000})
	b := newProfile(t, 2, "tech", map[string]int64{"youtube": 80000, "tiktok": 40000})

	got := s.Score(a, b, testNow)

	assert.Equal(t, 100.0, got.Breakdown.Niche)
	assert.Equal(t, 100.0, got.Breakdown.Audience)
	assert.Equal(t, 50.0, got.Breakdown.Style)
	assert.Equal(t, 50.0, got.Breakdown.Platform)
	assert.Equal(t, 100.0, got.Breakdown.Activity)
	assert.Equal(t, 82.5, got.Total)
	assert.Equal(t, LevelExcellent, got.Level)
}

func TestNicheScore(t *testing.T) {
	a := &domain.CreatorProfile{Niche: "gaming", SubNiches: []string{"esports", "retro"}}
	b := &domain.CreatorProfile{Niche: "tech", SubNiches: []string{"Retro", "esports"}}
	assert.Equal(t, 80.0, nicheScore(a, b))

	b.SubNiches = []string{"retro"}
	assert.Equal(t, 40.0, nicheScore(a, b))

	b.SubNiches = nil
	assert.Equal(t, 0.0, nicheScore(a, b))

	b.Niche = "GAMING"
	assert.Equal(t, 100.0, nicheScore(a, b))
}

func TestAudienceScoreBands(t *testing.T) {
	cases := []struct {
		a, b int64
		want float64
	}{
		{1000, 2000, 100},
		{1000, 4000, 70},
		{1000, 9000, 40},
		{1000, 20000, 20},
		{0, 1000, 0},
	}
	for _, tc := range cases {
		a := &domain.CreatorProfile{AudienceSize: tc.a}
		b := &domain.CreatorProfile{AudienceSize: tc.b}
		assert.Equal(t, tc.want, audienceScore(a, b), "a=%d b=%d", tc.a, tc.b)
	}
}

func TestAudiencePenaltiesUseReceiverPreferences(t *testing.T) {
	maxAud := int64(1500)
	a := &domain.CreatorProfile{AudienceSize: 1000}
	b := &domain.CreatorProfile{AudienceSize: 1000, PreferredMinAudience: 5000}

	assert.Equal(t, 70.0, audienceScore(a, b))
	assert.Equal(t, 100.0, audienceScore(b, a), "a has no preferences")

	a.AudienceSize = 2000
	b = &domain.CreatorProfile{AudienceSize: 1500, PreferredMaxAudience: &maxAud}
	assert.Equal(t, 80.0, audienceScore(a, b))

	a.AudienceSize = 1
	b = &domain.CreatorProfile{AudienceSize: 100000, PreferredMinAudience: 5000}
	assert.Equal(t, 0.0, audienceScore(a, b), "penalty never drops below zero")
}

func TestStyleScore(t *testing.T) {
	s := NewScorer(DefaultConfig())
	assert.Equal(t, 100.0, s.styleScore("comedy", "Comedy"))
	assert.Equal(t, 70.0, s.styleScore(domain.StyleEducational, domain.StyleTutorials))
	assert.Equal(t, 70.0, s.styleScore(domain.StyleTutorials, domain.StyleEducational))
	assert.Equal(t, 70.0, s.styleScore(domain.StyleReviews, domain.StyleEducational))
	assert.Equal(t, 30.0, s.styleScore(domain.StyleComedy, domain.StyleTutorials))
	assert.Equal(t, 50.0, s.styleScore("", domain.StyleTutorials))
	assert.Equal(t, 50.0, s.styleScore(domain.StyleUnknown, domain.StyleComedy))
}

func TestPlatformScore(t *testing.T) {
	assert.Equal(t, 0.0, platformScore(nil, domain.Platforms{"youtube": 1}))
	assert.Equal(t, 100.0, platformScore(domain.Platforms{"youtube": 1}, domain.Platforms{"youtube": 9}))
	assert.InDelta(t, 33.33, platformScore(
		domain.Platforms{"youtube": 1, "tiktok": 1},
		domain.Platforms{"youtube": 1, "instagram": 1},
	), 0.01)
}

func TestActivityScore(t *testing.T) {
	day := 24 * time.Hour
	assert.Equal(t, 100.0, activityScore(testNow.Add(-7*day), testNow))
	assert.Equal(t, 80.0, activityScore(testNow.Add(-8*day), testNow))
	assert.Equal(t, 80.0, activityScore(testNow.Add(-30*day), testNow))
	assert.Equal(t, 60.0, activityScore(testNow.Add(-90*day), testNow))
	assert.Equal(t, 30.0, activityScore(testNow.Add(-91*day), testNow))
	assert.Equal(t, 100.0, activityScore(time.Time{}, testNow))
}

func TestScoreBoundsAndRounding(t *testing.T) {
	s := NewScorer(DefaultConfig())
	profiles := []*domain.CreatorProfile{
		newProfile(t, 1, "tech", map[string]int64{"youtube": 1}),
		newProfile(t, 2, "cooking", nil),
		newProfile(t, 3, "tech", map[string]int64{"youtube": 900, "tiktok": 77, "x": 3}),
	}
	profiles[1].UpdatedAt = testNow.Add(-400 * 24 * time.Hour)
	profiles[2].ContentStyle = domain.StyleComedy

	for _, a := range profiles {
		for _, b := range profiles {
			got := s.Score(a, b, testNow)
			assert.GreaterOrEqual(t, got.Total, 0.0)
			assert.LessOrEqual(t, got.Total, 100.0)
			assert.Equal(t, got.Total, float64(int(got.Total*10+0.5))/10)
		}
	}
}

func TestScoreIsDirectional(t *testing.T) {
	s := NewScorer(DefaultConfig())
	a := newProfile(t, 1, "tech", map[string]int64{"youtube": 1000})
	b := newProfile(t, 2, "tech", map[string]int64{"youtube": 1000})
	b.PreferredMinAudience = 50000
	a.UpdatedAt = testNow.Add(-200 * 24 * time.Hour)

	ab := s.Score(a, b, testNow)
	ba := s.Score(b, a, testNow)
	assert.NotEqual(t, ab.Total, ba.Total)
	assert.Equal(t, 70.0, ab.Breakdown.Audience)
	assert.Equal(t, 30.0, ba.Breakdown.Activity)
}

func TestLevelUsesUnroundedTotal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights = Weights{Niche: 99.95}
	s := NewScorer(cfg)
	a := &domain.CreatorProfile{Niche: "gaming", SubNiches: []string{"esports", "retro"}}
	b := &domain.CreatorProfile{Niche: "tech", SubNiches: []string{"esports", "retro"}}

	got := s.Score(a, b, testNow)
	assert.Equal(t, 80.0, got.Breakdown.Niche)
	assert.Equal(t, 80.0, got.Total)
	assert.Equal(t, LevelGood, got.Level)
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, LevelExcellent, LevelFor(80))
	assert.Equal(t, LevelGood, LevelFor(79.9))
	assert.Equal(t, LevelModerate, LevelFor(40))
	assert.Equal(t, LevelLow, LevelFor(39.9))
}
