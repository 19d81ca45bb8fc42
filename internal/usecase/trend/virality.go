package trend

import (
	"math"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
)

// VideoScore rates a single video. ok is false for videos without views,
// which are left out of the aggregate.
func VideoScore(v domain.Video, now time.Time) (score float64, ok bool) {
	if v.Views <= 0 {
		return 0, false
	}
	views := float64(v.Views)

	engagement := math.Min(20, (float64(v.Likes)+2*float64(v.Comments))/views*200)

	hours := math.Max(1, now.Sub(v.PublishedAt).Hours())
	velocity := math.Min(80, math.Log1p(views/hours)*8)

	return engagement + velocity, true
}

// ViralityScore is the mean score of the eligible videos, truncated and clamped to 0..100.
func ViralityScore(videos []domain.Video, now time.Time) int {
	var sum float64
	n := 0
	for _, v := range videos {
		if s, ok := VideoScore(v, now); ok {
			sum += s
			n++
		}
	}
	if n == 0 {
		return 0
	}
	score := int(sum / float64(n))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
