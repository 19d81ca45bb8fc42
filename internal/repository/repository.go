package repository

import (
	"context"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
	UpdatePhone(ctx context.Context, id int, phone string) error
}

// ProfileFilter narrows matchmaking candidates. Zero values mean "no filter".
type ProfileFilter struct {
	NicheContains string
	StyleContains string
	MinAudience   *int64
	MaxAudience   *int64
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.CreatorProfile) error
	Update(ctx context.Context, profile *domain.CreatorProfile) error
	GetByID(ctx context.Context, id int) (*domain.CreatorProfile, error)
	GetByUserID(ctx context.Context, userID int) (*domain.CreatorProfile, error)
	// SearchCandidates returns open-to-collab profiles other than excludeID
	// that satisfy every filter, ordered by id.
	SearchCandidates(ctx context.Context, excludeID int, filter ProfileFilter) ([]*domain.CreatorProfile, error)
}

type CollabRequestRepository interface {
	// Create inserts a pending request. It fails with domain.ErrDuplicatePending
	// when the ordered pair already has one.
	Create(ctx context.Context, req *domain.CollabRequest) error
	GetByID(ctx context.Context, id int) (*domain.CollabRequest, error)
	FindPending(ctx context.Context, senderID, receiverID int) (*domain.CollabRequest, error)
	// Resolve moves a pending request to req.Status, writing the response fields.
	// It fails with domain.ErrRequestNotPending when the stored row is no longer pending.
	Resolve(ctx context.Context, req *domain.CollabRequest) error
	ListIncomingPending(ctx context.Context, profileID int, now time.Time) ([]*domain.CollabRequest, error)
	ListOutgoingPending(ctx context.Context, profileID int, now time.Time) ([]*domain.CollabRequest, error)
	ListHistory(ctx context.Context, profileID int, limit int) ([]*domain.CollabRequest, error)
	// ExpireStale marks every pending request past its deadline as expired.
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type TrendRepository interface {
	Create(ctx context.Context, analysis *domain.TrendAnalysis) error
	ListByUser(ctx context.Context, userID int, limit int) ([]*domain.TrendAnalysis, error)
}

type AlertRuleRepository interface {
	Create(ctx context.Context, rule *domain.AlertRule) error
	GetByID(ctx context.Context, id int) (*domain.AlertRule, error)
	ListByUser(ctx context.Context, userID int) ([]*domain.AlertRule, error)
	ListActive(ctx context.Context) ([]*domain.AlertRule, error)
	Update(ctx context.Context, rule *domain.AlertRule) error
	Delete(ctx context.Context, id int) error
	MarkTriggered(ctx context.Context, id int, at time.Time) error
}

// VideoOrder picks the descending sort key for competitor videos.
type VideoOrder string

const (
	OrderByViralScore VideoOrder = "viral_score"
	OrderByViews      VideoOrder = "views"
)

type CompetitorRepository interface {
	// Create fails with domain.ErrCompetitorExists when the user already tracks the channel.
	Create(ctx context.Context, c *domain.Competitor) error
	GetByID(ctx context.Context, id int) (*domain.Competitor, error)
	// ListByUser returns active competitors, newest first.
	ListByUser(ctx context.Context, userID int) ([]*domain.Competitor, error)
	Update(ctx context.Context, c *domain.Competitor) error
	// Delete removes the competitor and its videos.
	Delete(ctx context.Context, id int) error
	// UpsertVideos inserts or refreshes videos keyed by (competitor, video id)
	// and returns how many were new.
	UpsertVideos(ctx context.Context, competitorID int, videos []*domain.CompetitorVideo) (int, error)
	// ListVideos returns the competitor's videos, most recently published first.
	ListVideos(ctx context.Context, competitorID int) ([]*domain.CompetitorVideo, error)
	// TopVideos returns videos of the given competitors scoring at least minScore,
	// ordered by orderBy descending.
	TopVideos(ctx context.Context, competitorIDs []int, minScore int, orderBy VideoOrder, limit int) ([]*domain.CompetitorVideo, error)
}

// VideoCache stores video search results per topic.
type VideoCache interface {
	Get(ctx context.Context, topic string) ([]domain.Video, bool, error)
	Set(ctx context.Context, topic string, videos []domain.Video, ttl time.Duration) error
}
