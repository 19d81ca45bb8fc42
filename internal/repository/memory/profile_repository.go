package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
)

type profileRepository struct {
	mu       sync.RWMutex
	nextID   int
	profiles map[int]*domain.CreatorProfile
}

func NewProfileRepository() repository.ProfileRepository {
	return &profileRepository{profiles: make(map[int]*domain.CreatorProfile)}
}

func copyProfile(p *domain.CreatorProfile) *domain.CreatorProfile {
	c := *p
	c.SubNiches = append([]string(nil), p.SubNiches...)
	c.CollabInterests = append([]string(nil), p.CollabInterests...)
	c.Platforms = make(domain.Platforms, len(p.Platforms))
	for k, v := range p.Platforms {
		c.Platforms[k] = v
	}
	return &c
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.CreatorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.profiles {
		if p.UserID == profile.UserID {
			return domain.NewError(domain.KindConflict, "profile already exists")
		}
	}
	r.nextID++
	now := time.Now().UTC()
	profile.ID = r.nextID
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = now
	}
	r.profiles[profile.ID] = copyProfile(profile)
	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.CreatorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[profile.ID]; !ok {
		return domain.ErrProfileNotFound
	}
	profile.UpdatedAt = time.Now().UTC()
	r.profiles[profile.ID] = copyProfile(profile)
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id int) (*domain.CreatorProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return copyProfile(p), nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int) (*domain.CreatorProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.profiles {
		if p.UserID == userID {
			return copyProfile(p), nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (r *profileRepository) SearchCandidates(ctx context.Context, excludeID int, f repository.ProfileFilter) ([]*domain.CreatorProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	niche := strings.ToLower(f.NicheContains)
	style := strings.ToLower(f.StyleContains)

	var out []*domain.CreatorProfile
	for _, p := range r.profiles {
		if p.ID == excludeID || !p.OpenToCollabs {
			continue
		}
		if niche != "" && !strings.Contains(strings.ToLower(p.Niche), niche) {
			continue
		}
		if style != "" && !strings.Contains(strings.ToLower(string(p.ContentStyle)), style) {
			continue
		}
		if f.MinAudience != nil && p.AudienceSize < *f.MinAudience {
			continue
		}
		if f.MaxAudience != nil && p.AudienceSize > *f.MaxAudience {
			continue
		}
		out = append(out, copyProfile(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
