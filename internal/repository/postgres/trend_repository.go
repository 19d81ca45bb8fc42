package postgres

import (
	"context"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type trendRepository struct {
	db *sqlx.DB
}

func NewTrendRepository(db *sqlx.DB) repository.TrendRepository {
	return &trendRepository{db: db}
}

func (r *trendRepository) Create(ctx context.Context, a *domain.TrendAnalysis) error {
	query := `
		INSERT INTO trend_analyses (user_id, topic, summary, summary_available, virality_score, video_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		a.UserID, a.Topic, a.Summary, a.SummaryAvailable, a.ViralityScore, a.VideoCount,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *trendRepository) ListByUser(ctx context.Context, userID int, limit int) ([]*domain.TrendAnalysis, error) {
	analyses := []*domain.TrendAnalysis{}
	err := r.db.SelectContext(ctx, &analyses, `
		SELECT id, user_id, topic, summary, summary_available, virality_score, video_count, created_at
		FROM trend_analyses
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	return analyses, nil
}
