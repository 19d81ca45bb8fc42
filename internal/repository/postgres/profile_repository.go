package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

var errProfileExists = domain.NewError(domain.KindConflict, "profile already exists")

const profileColumns = `
	id, user_id, display_name, bio, profile_image_url, niche, sub_niches,
	content_style, audience_size, platforms, open_to_collabs, collab_interests,
	preferred_min_audience, preferred_max_audience, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*domain.CreatorProfile, error) {
	var p domain.CreatorProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.DisplayName, &p.Bio, &p.ProfileImageURL, &p.Niche, pq.Array(&p.SubNiches),
		&p.ContentStyle, &p.AudienceSize, &p.Platforms, &p.OpenToCollabs, pq.Array(&p.CollabInterests),
		&p.PreferredMinAudience, &p.PreferredMaxAudience, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.CreatorProfile) error {
	query := `
		INSERT INTO creator_profiles (
			user_id, display_name, bio, profile_image_url, niche, sub_niches,
			content_style, audience_size, platforms, open_to_collabs, collab_interests,
			preferred_min_audience, preferred_max_audience
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.UserID, profile.DisplayName, profile.Bio, profile.ProfileImageURL,
		profile.Niche, pq.Array(profile.SubNiches), profile.ContentStyle, profile.AudienceSize,
		profile.Platforms, profile.OpenToCollabs, pq.Array(profile.CollabInterests),
		profile.PreferredMinAudience, profile.PreferredMaxAudience,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if isUniqueViolation(err) {
		return errProfileExists
	}
	return err
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.CreatorProfile) error {
	query := `
		UPDATE creator_profiles
		SET display_name = $1, bio = $2, profile_image_url = $3, niche = $4, sub_niches = $5,
		    content_style = $6, audience_size = $7, platforms = $8, open_to_collabs = $9,
		    collab_interests = $10, preferred_min_audience = $11, preferred_max_audience = $12,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $13
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.DisplayName, profile.Bio, profile.ProfileImageURL, profile.Niche,
		pq.Array(profile.SubNiches), profile.ContentStyle, profile.AudienceSize, profile.Platforms,
		profile.OpenToCollabs, pq.Array(profile.CollabInterests),
		profile.PreferredMinAudience, profile.PreferredMaxAudience,
		profile.ID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (r *profileRepository) getOne(ctx context.Context, where string, arg interface{}) (*domain.CreatorProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM creator_profiles WHERE `+where, arg)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) GetByID(ctx context.Context, id int) (*domain.CreatorProfile, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int) (*domain.CreatorProfile, error) {
	return r.getOne(ctx, `user_id = $1`, userID)
}

func (r *profileRepository) SearchCandidates(ctx context.Context, excludeID int, f repository.ProfileFilter) ([]*domain.CreatorProfile, error) {
	conditions := []string{"open_to_collabs = TRUE", "id <> $1"}
	args := []interface{}{excludeID}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}
	// strpos keeps user input out of LIKE pattern syntax.
	if f.NicheContains != "" {
		add("strpos(LOWER(niche), LOWER($%d)) > 0", f.NicheContains)
	}
	if f.StyleContains != "" {
		add("strpos(LOWER(content_style), LOWER($%d)) > 0", f.StyleContains)
	}
	if f.MinAudience != nil {
		add("audience_size >= $%d", *f.MinAudience)
	}
	if f.MaxAudience != nil {
		add("audience_size <= $%d", *f.MaxAudience)
	}

	query := `SELECT ` + profileColumns + ` FROM creator_profiles WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.CreatorProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
