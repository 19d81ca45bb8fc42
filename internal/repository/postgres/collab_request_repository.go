package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

// collabRequestRepository relies on the partial unique index
// collab_requests_pending_pair_key for the one-pending-per-pair rule.
type collabRequestRepository struct {
	db *sqlx.DB
}

func NewCollabRequestRepository(db *sqlx.DB) repository.CollabRequestRepository {
	return &collabRequestRepository{db: db}
}

const requestColumns = `
	id, sender_id, receiver_id, status, collab_type, message, ai_generated_pitch, match_score,
	response_message, created_at, responded_at, expires_at`

func (r *collabRequestRepository) Create(ctx context.Context, req *domain.CollabRequest) error {
	query := `
		INSERT INTO collab_requests (
			sender_id, receiver_id, status, collab_type, message, ai_generated_pitch,
			match_score, created_at, expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, NOW()), $9)
		RETURNING id, created_at
	`
	var createdAt *time.Time
	if !req.CreatedAt.IsZero() {
		createdAt = &req.CreatedAt
	}
	err := r.db.QueryRowContext(ctx, query,
		req.SenderID, req.ReceiverID, domain.CollabPending, req.CollabType, req.Message,
		req.AIGeneratedPitch, req.MatchScore, createdAt, req.ExpiresAt,
	).Scan(&req.ID, &req.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicatePending
	}
	if err != nil {
		return err
	}
	req.Status = domain.CollabPending
	return nil
}

func (r *collabRequestRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.CollabRequest, error) {
	var req domain.CollabRequest
	if err := r.db.GetContext(ctx, &req, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCollabRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *collabRequestRepository) GetByID(ctx context.Context, id int) (*domain.CollabRequest, error) {
	return r.getOne(ctx, `SELECT `+requestColumns+` FROM collab_requests WHERE id = $1`, id)
}

func (r *collabRequestRepository) FindPending(ctx context.Context, senderID, receiverID int) (*domain.CollabRequest, error) {
	return r.getOne(ctx, `
		SELECT `+requestColumns+` FROM collab_requests
		WHERE sender_id = $1 AND receiver_id = $2 AND status = 'pending'`,
		senderID, receiverID)
}

// Resolve is a compare-and-set on status so that concurrent responders
// cannot both win.
func (r *collabRequestRepository) Resolve(ctx context.Context, req *domain.CollabRequest) error {
	query := `
		UPDATE collab_requests
		SET status = $1, response_message = $2, responded_at = $3
		WHERE id = $4 AND status = 'pending'
	`
	result, err := r.db.ExecContext(ctx, query, req.Status, req.ResponseMessage, req.RespondedAt, req.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		if _, err := r.GetByID(ctx, req.ID); err != nil {
			return err
		}
		return domain.ErrRequestNotPending
	}
	return nil
}

func (r *collabRequestRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.CollabRequest, error) {
	requests := []*domain.CollabRequest{}
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *collabRequestRepository) ListIncomingPending(ctx context.Context, profileID int, now time.Time) ([]*domain.CollabRequest, error) {
	return r.list(ctx, `
		SELECT `+requestColumns+` FROM collab_requests
		WHERE receiver_id = $1 AND status = 'pending' AND expires_at >= $2
		ORDER BY created_at DESC, id DESC`,
		profileID, now)
}

func (r *collabRequestRepository) ListOutgoingPending(ctx context.Context, profileID int, now time.Time) ([]*domain.CollabRequest, error) {
	return r.list(ctx, `
		SELECT `+requestColumns+` FROM collab_requests
		WHERE sender_id = $1 AND status = 'pending' AND expires_at >= $2
		ORDER BY created_at DESC, id DESC`,
		profileID, now)
}

func (r *collabRequestRepository) ListHistory(ctx context.Context, profileID int, limit int) ([]*domain.CollabRequest, error) {
	return r.list(ctx, `
		SELECT `+requestColumns+` FROM collab_requests
		WHERE (sender_id = $1 OR receiver_id = $1) AND status IN ('accepted', 'declined')
		ORDER BY responded_at DESC NULLS LAST, id DESC
		LIMIT $2`,
		profileID, limit)
}

func (r *collabRequestRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE collab_requests SET status = 'expired' WHERE status = 'pending' AND expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
