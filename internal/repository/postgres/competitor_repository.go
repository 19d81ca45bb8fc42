package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type competitorRepository struct {
	db *sqlx.DB
}

func NewCompetitorRepository(db *sqlx.DB) repository.CompetitorRepository {
	return &competitorRepository{db: db}
}

const competitorColumns = `id, user_id, channel_id, channel_name, channel_url, thumbnail,
	subscriber_count, video_count, total_views, average_views, upload_frequency,
	uploads_playlist, is_active, last_synced_at, created_at`

const competitorVideoColumns = `id, competitor_id, video_id, title, published_at, views, likes,
	comments, engagement_rate, viral_score, updated_at`

func (r *competitorRepository) Create(ctx context.Context, c *domain.Competitor) error {
	query := `
		INSERT INTO competitors (user_id, channel_id, channel_name, channel_url, thumbnail,
			subscriber_count, video_count, total_views, uploads_playlist, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		c.UserID, c.ChannelID, c.ChannelName, c.ChannelURL, c.Thumbnail,
		c.SubscriberCount, c.VideoCount, c.TotalViews, c.UploadsPlaylist, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrCompetitorExists
	}
	return err
}

func (r *competitorRepository) GetByID(ctx context.Context, id int) (*domain.Competitor, error) {
	var c domain.Competitor
	err := r.db.GetContext(ctx, &c, `SELECT `+competitorColumns+` FROM competitors WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCompetitorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *competitorRepository) ListByUser(ctx context.Context, userID int) ([]*domain.Competitor, error) {
	out := []*domain.Competitor{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+competitorColumns+` FROM competitors WHERE user_id = $1 AND is_active = TRUE ORDER BY created_at DESC, id DESC`,
		userID)
	return out, err
}

func (r *competitorRepository) Update(ctx context.Context, c *domain.Competitor) error {
	query := `
		UPDATE competitors
		SET channel_name = $1, thumbnail = $2, subscriber_count = $3, video_count = $4,
			total_views = $5, average_views = $6, upload_frequency = $7, uploads_playlist = $8,
			is_active = $9, last_synced_at = $10
		WHERE id = $11
	`
	result, err := r.db.ExecContext(ctx, query,
		c.ChannelName, c.Thumbnail, c.SubscriberCount, c.VideoCount,
		c.TotalViews, c.AverageViews, c.UploadFrequency, c.UploadsPlaylist,
		c.IsActive, c.LastSyncedAt, c.ID,
	)
	return notFoundIfNone(result, err)
}

func (r *competitorRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM competitors WHERE id = $1`, id)
	return notFoundIfNone(result, err)
}

func notFoundIfNone(result sql.Result, err error) error {
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCompetitorNotFound
	}
	return nil
}

func (r *competitorRepository) UpsertVideos(ctx context.Context, competitorID int, videos []*domain.CompetitorVideo) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// xmax is zero only for freshly inserted rows.
	query := `
		INSERT INTO competitor_videos (competitor_id, video_id, title, published_at, views, likes,
			comments, engagement_rate, viral_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (competitor_id, video_id) DO UPDATE
		SET title = EXCLUDED.title, views = EXCLUDED.views, likes = EXCLUDED.likes,
			comments = EXCLUDED.comments, engagement_rate = EXCLUDED.engagement_rate,
			viral_score = EXCLUDED.viral_score, updated_at = NOW()
		RETURNING id, updated_at, (xmax = 0)
	`
	added := 0
	for _, v := range videos {
		var inserted bool
		err := tx.QueryRowContext(ctx, query,
			competitorID, v.VideoID, v.Title, v.PublishedAt, v.Views, v.Likes,
			v.Comments, v.EngagementRate, v.ViralScore,
		).Scan(&v.ID, &v.UpdatedAt, &inserted)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
				return 0, domain.ErrCompetitorNotFound
			}
			return 0, err
		}
		v.CompetitorID = competitorID
		if inserted {
			added++
		}
	}
	return added, tx.Commit()
}

func (r *competitorRepository) ListVideos(ctx context.Context, competitorID int) ([]*domain.CompetitorVideo, error) {
	out := []*domain.CompetitorVideo{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+competitorVideoColumns+` FROM competitor_videos WHERE competitor_id = $1 ORDER BY published_at DESC, id`,
		competitorID)
	return out, err
}

func (r *competitorRepository) TopVideos(ctx context.Context, competitorIDs []int, minScore int, orderBy repository.VideoOrder, limit int) ([]*domain.CompetitorVideo, error) {
	order := "viral_score"
	if orderBy == repository.OrderByViews {
		order = "views"
	}
	out := []*domain.CompetitorVideo{}
	if len(competitorIDs) == 0 {
		return out, nil
	}
	ids := make([]int64, len(competitorIDs))
	for i, id := range competitorIDs {
		ids[i] = int64(id)
	}
	err := r.db.SelectContext(ctx, &out, `
		SELECT `+competitorVideoColumns+` FROM competitor_videos
		WHERE competitor_id = ANY($1) AND viral_score >= $2
		ORDER BY `+order+` DESC, id
		LIMIT $3`,
		pq.Array(ids), minScore, limit)
	return out, err
}
