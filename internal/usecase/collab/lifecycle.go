package collab

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/logging"
	"github.com/gdugdh24/insightsphere-backend/internal/metrics"
)

type CreateRequestInput struct {
	ReceiverID       int     `json:"receiver_id" binding:"required,min=1"`
	CollabType       *string `json:"collab_type" binding:"omitempty,max=50"`
	Message          *string `json:"message" binding:"omitempty,max=2000"`
	AIGeneratedPitch bool    `json:"ai_generated_pitch"`
}

type RespondInput struct {
	Action          domain.ResponseAction `json:"action" binding:"required,oneof=accept decline"`
	ResponseMessage *string               `json:"response_message" binding:"omitempty,max=2000"`
}

type PendingRequests struct {
	Incoming []*domain.CollabRequest `json:"incoming"`
	Outgoing []*domain.CollabRequest `json:"outgoing"`
}

// CreateRequest sends a pitch from the caller's profile to the receiver.
func (uc *CollabUseCase) CreateRequest(ctx context.Context, userID int, in CreateRequestInput) (*domain.CollabRequest, error) {
	sender, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrProfileRequired
		}
		return nil, err
	}

	receiver, err := uc.profileRepo.GetByID(ctx, in.ReceiverID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrReceiverNotFound
		}
		return nil, err
	}

	if sender.ID == receiver.ID {
		return nil, domain.ErrSelfCollab
	}

	if !receiver.OpenToCollabs {
		return nil, domain.ErrReceiverClosed
	}

	now := uc.now()
	existing, err := uc.requestRepo.FindPending(ctx, sender.ID, receiver.ID)
	switch {
	case err == nil && existing.IsExpiredAt(now):
		// A stale pitch must not block a fresh one.
		existing.Status = domain.CollabExpired
		if err := uc.requestRepo.Resolve(ctx, existing); err != nil && !errors.Is(err, domain.ErrRequestNotPending) {
			return nil, fmt.Errorf("failed to expire stale request: %w", err)
		}
		metrics.CollabRequestsTotal.WithLabelValues("expired").Inc()
	case err == nil:
		metrics.CollabRequestsTotal.WithLabelValues("conflict").Inc()
		return nil, domain.ErrDuplicatePending
	case !errors.Is(err, domain.ErrCollabRequestNotFound):
		return nil, err
	}

	score := uc.scorer.Score(sender, receiver, now)
	req := &domain.CollabRequest{
		SenderID:         sender.ID,
		ReceiverID:       receiver.ID,
		Status:           domain.CollabPending,
		CollabType:       in.CollabType,
		Message:          in.Message,
		AIGeneratedPitch: in.AIGeneratedPitch,
		MatchScore:       score.Total,
		CreatedAt:        now,
		ExpiresAt:        now.Add(uc.cfg.RequestTTL),
	}
	if err := uc.requestRepo.Create(ctx, req); err != nil {
		if errors.Is(err, domain.ErrDuplicatePending) {
			metrics.CollabRequestsTotal.WithLabelValues("conflict").Inc()
		}
		return nil, err
	}

	metrics.CollabRequestsTotal.WithLabelValues("created").Inc()
	logging.Ctx(ctx).Info().Int("request_id", req.ID).Int("sender", sender.ID).Int("receiver", receiver.ID).
		Float64("score", req.MatchScore).Msg("[COLLAB] Request created")
	uc.publish(ctx, domain.EventCollabRequestCreated, req)
	return req, nil
}

// Respond accepts or declines a pending request addressed to the caller.
// A request past its deadline is moved to expired and ErrRequestExpired is returned.
func (uc *CollabUseCase) Respond(ctx context.Context, userID, requestID int, in RespondInput) (*domain.CollabRequest, error) {
	target, err := in.Action.Status()
	if err != nil {
		return nil, err
	}

	me, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrCollabRequestNotFound
		}
		return nil, err
	}

	req, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.ReceiverID != me.ID {
		return nil, domain.ErrCollabRequestNotFound
	}
	if req.Status != domain.CollabPending {
		return nil, notPending(req.Status)
	}

	now := uc.now()
	if req.IsExpiredAt(now) {
		req.Status = domain.CollabExpired
		if err := uc.requestRepo.Resolve(ctx, req); err != nil {
			return nil, uc.resolveConflict(ctx, requestID, err)
		}
		metrics.CollabRequestsTotal.WithLabelValues("expired").Inc()
		return nil, domain.ErrRequestExpired
	}

	req.Status = target
	req.ResponseMessage = in.ResponseMessage
	req.RespondedAt = &now
	if err := uc.requestRepo.Resolve(ctx, req); err != nil {
		return nil, uc.resolveConflict(ctx, requestID, err)
	}

	metrics.CollabRequestsTotal.WithLabelValues(string(target)).Inc()
	uc.publish(ctx, domain.EventCollabRequestResponded, req)
	return req, nil
}

// resolveConflict reports the status that won a concurrent transition.
func (uc *CollabUseCase) resolveConflict(ctx context.Context, requestID int, err error) error {
	if !errors.Is(err, domain.ErrRequestNotPending) {
		return err
	}
	current, getErr := uc.requestRepo.GetByID(ctx, requestID)
	if getErr != nil {
		return err
	}
	return notPending(current.Status)
}

func notPending(status domain.CollabStatus) error {
	return fmt.Errorf("%w: already %s", domain.ErrRequestNotPending, status)
}

// ListPending returns live pending requests. It never changes stored state.
func (uc *CollabUseCase) ListPending(ctx context.Context, userID int, direction domain.CollabDirection) (*PendingRequests, error) {
	me, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	out := &PendingRequests{}
	if direction == domain.DirectionIncoming || direction == domain.DirectionBoth {
		if out.Incoming, err = uc.requestRepo.ListIncomingPending(ctx, me.ID, now); err != nil {
			return nil, err
		}
		if out.Incoming == nil {
			out.Incoming = []*domain.CollabRequest{}
		}
	}
	if direction == domain.DirectionOutgoing || direction == domain.DirectionBoth {
		if out.Outgoing, err = uc.requestRepo.ListOutgoingPending(ctx, me.ID, now); err != nil {
			return nil, err
		}
		if out.Outgoing == nil {
			out.Outgoing = []*domain.CollabRequest{}
		}
	}
	return out, nil
}

// History lists accepted and declined requests involving the caller, newest response first.
func (uc *CollabUseCase) History(ctx context.Context, userID int, limit int) ([]*domain.CollabRequest, error) {
	me, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	history, err := uc.requestRepo.ListHistory(ctx, me.ID, uc.clampLimit(limit))
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []*domain.CollabRequest{}
	}
	return history, nil
}

// ExpireStale moves every overdue pending request to expired.
func (uc *CollabUseCase) ExpireStale(ctx context.Context) (int64, error) {
	n, err := uc.requestRepo.ExpireStale(ctx, uc.now())
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale requests: %w", err)
	}
	if n > 0 {
		metrics.CollabRequestsTotal.WithLabelValues("expired").Add(float64(n))
		logging.Info().Int64("count", n).Msg("[COLLAB] Expired stale requests")
	}
	return n, nil
}
