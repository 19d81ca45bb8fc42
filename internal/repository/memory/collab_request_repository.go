package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
)

// collabRequestRepository keeps the one-pending-per-pair rule by checking
// and inserting under the same lock.
type collabRequestRepository struct {
	mu       sync.Mutex
	nextID   int
	requests map[int]*domain.CollabRequest
}

func NewCollabRequestRepository() repository.CollabRequestRepository {
	return &collabRequestRepository{requests: make(map[int]*domain.CollabRequest)}
}

func copyRequest(r *domain.CollabRequest) *domain.CollabRequest {
	c := *r
	return &c
}

func (r *collabRequestRepository) Create(ctx context.Context, req *domain.CollabRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.requests {
		if existing.Status == domain.CollabPending &&
			existing.SenderID == req.SenderID && existing.ReceiverID == req.ReceiverID {
			return domain.ErrDuplicatePending
		}
	}
	r.nextID++
	req.ID = r.nextID
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	r.requests[req.ID] = copyRequest(req)
	return nil
}

func (r *collabRequestRepository) GetByID(ctx context.Context, id int) (*domain.CollabRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrCollabRequestNotFound
	}
	return copyRequest(req), nil
}

func (r *collabRequestRepository) FindPending(ctx context.Context, senderID, receiverID int) (*domain.CollabRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, req := range r.requests {
		if req.Status == domain.CollabPending && req.SenderID == senderID && req.ReceiverID == receiverID {
			return copyRequest(req), nil
		}
	}
	return nil, domain.ErrCollabRequestNotFound
}

func (r *collabRequestRepository) Resolve(ctx context.Context, req *domain.CollabRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.requests[req.ID]
	if !ok {
		return domain.ErrCollabRequestNotFound
	}
	if stored.Status != domain.CollabPending {
		return domain.ErrRequestNotPending
	}
	stored.Status = req.Status
	stored.ResponseMessage = req.ResponseMessage
	stored.RespondedAt = req.RespondedAt
	return nil
}

func (r *collabRequestRepository) listPending(match func(*domain.CollabRequest) bool, now time.Time) []*domain.CollabRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.CollabRequest
	for _, req := range r.requests {
		if req.Status == domain.CollabPending && !req.IsExpiredAt(now) && match(req) {
			out = append(out, copyRequest(req))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *collabRequestRepository) ListIncomingPending(ctx context.Context, profileID int, now time.Time) ([]*domain.CollabRequest, error) {
	return r.listPending(func(req *domain.CollabRequest) bool { return req.ReceiverID == profileID }, now), nil
}

func (r *collabRequestRepository) ListOutgoingPending(ctx context.Context, profileID int, now time.Time) ([]*domain.CollabRequest, error) {
	return r.listPending(func(req *domain.CollabRequest) bool { return req.SenderID == profileID }, now), nil
}

func (r *collabRequestRepository) ListHistory(ctx context.Context, profileID int, limit int) ([]*domain.CollabRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.CollabRequest
	for _, req := range r.requests {
		if (req.Status == domain.CollabAccepted || req.Status == domain.CollabDeclined) && req.Involves(profileID) {
			out = append(out, copyRequest(req))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := respondedAt(out[i]), respondedAt(out[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func respondedAt(req *domain.CollabRequest) time.Time {
	if req.RespondedAt == nil {
		return time.Time{}
	}
	return *req.RespondedAt
}

func (r *collabRequestRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, req := range r.requests {
		if req.IsExpiredAt(now) {
			req.Status = domain.CollabExpired
			n++
		}
	}
	return n, nil
}
