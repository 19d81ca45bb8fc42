package collab

import (
	"context"
	"sort"
	"strings"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/metrics"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
)

// MatchQuery filters are combined with AND and applied before scoring.
type MatchQuery struct {
	Niche       string `form:"niche" binding:"omitempty,max=100"`
	Style       string `form:"style" binding:"omitempty,max=50"`
	MinAudience *int64 `form:"min_audience" binding:"omitempty,min=0"`
	MaxAudience *int64 `form:"max_audience" binding:"omitempty,min=0"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type MatchResult struct {
	Profile *domain.CreatorProfile `json:"profile"`
	Match   MatchScore             `json:"match"`
}

// FindMatches ranks open creators for the requester, best first.
// Equal scores are ordered by profile id so repeated calls agree.
func (uc *CollabUseCase) FindMatches(ctx context.Context, userID int, q MatchQuery) ([]MatchResult, error) {
	me, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.profileRepo.SearchCandidates(ctx, me.ID, repository.ProfileFilter{
		NicheContains: strings.TrimSpace(q.Niche),
		StyleContains: strings.TrimSpace(q.Style),
		MinAudience:   q.MinAudience,
		MaxAudience:   q.MaxAudience,
	})
	if err != nil {
		return nil, err
	}

	now := uc.now()
	results := make([]MatchResult, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == me.ID || !c.OpenToCollabs {
			continue
		}
		score := uc.scorer.Score(me, c, now)
		metrics.MatchScore.Observe(score.Total)
		results = append(results, MatchResult{Profile: c, Match: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Match.Total != results[j].Match.Total {
			return results[i].Match.Total > results[j].Match.Total
		}
		return results[i].Profile.ID < results[j].Profile.ID
	})

	if limit := uc.clampLimit(q.Limit); len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
