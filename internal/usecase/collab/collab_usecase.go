package collab

import (
	"context"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/logging"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
)

// EventPublisher receives lifecycle events after the write has been stored.
type EventPublisher interface {
	PublishCollabEvent(ctx context.Context, event domain.CollabEvent) error
}

type CollabUseCase struct {
	profileRepo repository.ProfileRepository
	requestRepo repository.CollabRequestRepository
	scorer      *Scorer
	publisher   EventPublisher
	cfg         Config
	now         func() time.Time
}

func NewCollabUseCase(
	profileRepo repository.ProfileRepository,
	requestRepo repository.CollabRequestRepository,
	publisher EventPublisher,
	cfg Config,
) *CollabUseCase {
	return &CollabUseCase{
		profileRepo: profileRepo,
		requestRepo: requestRepo,
		scorer:      NewScorer(cfg),
		publisher:   publisher,
		cfg:         cfg,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (uc *CollabUseCase) publish(ctx context.Context, eventType string, req *domain.CollabRequest) {
	if uc.publisher == nil {
		return
	}
	event := domain.CollabEvent{
		Type:       eventType,
		RequestID:  req.ID,
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Status:     req.Status,
		MatchScore: req.MatchScore,
		OccurredAt: uc.now(),
	}
	if err := uc.publisher.PublishCollabEvent(ctx, event); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("event", eventType).Int("request_id", req.ID).Msg("[COLLAB] Failed to publish event")
	}
}

func (uc *CollabUseCase) clampLimit(limit int) int {
	if limit <= 0 {
		return uc.cfg.DefaultMatchLimit
	}
	if uc.cfg.MaxMatchLimit > 0 && limit > uc.cfg.MaxMatchLimit {
		return uc.cfg.MaxMatchLimit
	}
	return limit
}
