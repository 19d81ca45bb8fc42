package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
)

type competitorRepository struct {
	mu          sync.RWMutex
	nextID      int
	nextVideoID int
	competitors map[int]*domain.Competitor
	videos      map[int]map[string]*domain.CompetitorVideo
}

func NewCompetitorRepository() repository.CompetitorRepository {
	return &competitorRepository{
		competitors: make(map[int]*domain.Competitor),
		videos:      make(map[int]map[string]*domain.CompetitorVideo),
	}
}

func copyCompetitor(c *domain.Competitor) *domain.Competitor {
	out := *c
	return &out
}

func copyVideo(v *domain.CompetitorVideo) *domain.CompetitorVideo {
	out := *v
	return &out
}

func (r *competitorRepository) Create(ctx context.Context, c *domain.Competitor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.competitors {
		if existing.UserID == c.UserID && existing.ChannelID == c.ChannelID {
			return domain.ErrCompetitorExists
		}
	}
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now().UTC()
	r.competitors[c.ID] = copyCompetitor(c)
	return nil
}

func (r *competitorRepository) GetByID(ctx context.Context, id int) (*domain.Competitor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.competitors[id]
	if !ok {
		return nil, domain.ErrCompetitorNotFound
	}
	return copyCompetitor(c), nil
}

func (r *competitorRepository) ListByUser(ctx context.Context, userID int) ([]*domain.Competitor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.Competitor{}
	for _, c := range r.competitors {
		if c.UserID == userID && c.IsActive {
			out = append(out, copyCompetitor(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *competitorRepository) Update(ctx context.Context, c *domain.Competitor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.competitors[c.ID]; !ok {
		return domain.ErrCompetitorNotFound
	}
	r.competitors[c.ID] = copyCompetitor(c)
	return nil
}

func (r *competitorRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.competitors[id]; !ok {
		return domain.ErrCompetitorNotFound
	}
	delete(r.competitors, id)
	delete(r.videos, id)
	return nil
}

func (r *competitorRepository) UpsertVideos(ctx context.Context, competitorID int, videos []*domain.CompetitorVideo) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.competitors[competitorID]; !ok {
		return 0, domain.ErrCompetitorNotFound
	}
	stored := r.videos[competitorID]
	if stored == nil {
		stored = make(map[string]*domain.CompetitorVideo)
		r.videos[competitorID] = stored
	}

	added := 0
	now := time.Now().UTC()
	for _, v := range videos {
		v.CompetitorID = competitorID
		v.UpdatedAt = now
		if existing, ok := stored[v.VideoID]; ok {
			v.ID = existing.ID
		} else {
			r.nextVideoID++
			v.ID = r.nextVideoID
			added++
		}
		stored[v.VideoID] = copyVideo(v)
	}
	return added, nil
}

func (r *competitorRepository) ListVideos(ctx context.Context, competitorID int) ([]*domain.CompetitorVideo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.CompetitorVideo{}
	for _, v := range r.videos[competitorID] {
		out = append(out, copyVideo(v))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *competitorRepository) TopVideos(ctx context.Context, competitorIDs []int, minScore int, orderBy repository.VideoOrder, limit int) ([]*domain.CompetitorVideo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.CompetitorVideo{}
	for _, id := range competitorIDs {
		for _, v := range r.videos[id] {
			if v.ViralScore >= minScore {
				out = append(out, copyVideo(v))
			}
		}
	}
	key := func(v *domain.CompetitorVideo) int64 {
		if orderBy == repository.OrderByViews {
			return v.Views
		}
		return int64(v.ViralScore)
	}
	sort.Slice(out, func(i, j int) bool {
		if ki, kj := key(out[i]), key(out[j]); ki != kj {
			return ki > kj
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
