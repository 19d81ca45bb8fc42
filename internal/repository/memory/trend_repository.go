package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
)

type trendRepository struct {
	mu       sync.RWMutex
	nextID   int
	analyses []*domain.TrendAnalysis
}

func NewTrendRepository() repository.TrendRepository {
	return &trendRepository{}
}

func (r *trendRepository) Create(ctx context.Context, analysis *domain.TrendAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	analysis.ID = r.nextID
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now().UTC()
	}
	c := *analysis
	r.analyses = append(r.analyses, &c)
	return nil
}

func (r *trendRepository) ListByUser(ctx context.Context, userID int, limit int) ([]*domain.TrendAnalysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.TrendAnalysis
	for _, a := range r.analyses {
		if a.UserID == userID {
			c := *a
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
