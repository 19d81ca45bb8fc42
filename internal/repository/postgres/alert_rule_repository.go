package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type alertRuleRepository struct {
	db *sqlx.DB
}

func NewAlertRuleRepository(db *sqlx.DB) repository.AlertRuleRepository {
	return &alertRuleRepository{db: db}
}

const ruleColumns = `id, user_id, topic, threshold_score, channels, is_active, last_triggered_at, created_at, updated_at`

func scanRule(row rowScanner) (*domain.AlertRule, error) {
	var rule domain.AlertRule
	err := row.Scan(
		&rule.ID, &rule.UserID, &rule.Topic, &rule.ThresholdScore, pq.Array(&rule.Channels),
		&rule.IsActive, &rule.LastTriggeredAt, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *alertRuleRepository) Create(ctx context.Context, rule *domain.AlertRule) error {
	query := `
		INSERT INTO alert_rules (user_id, topic, threshold_score, channels, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		rule.UserID, rule.Topic, rule.ThresholdScore, pq.Array(rule.Channels), rule.IsActive,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
}

func (r *alertRuleRepository) GetByID(ctx context.Context, id int) (*domain.AlertRule, error) {
	rule, err := scanRule(r.db.QueryRowContext(ctx, `SELECT `+ruleColumns+` FROM alert_rules WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAlertRuleNotFound
		}
		return nil, err
	}
	return rule, nil
}

func (r *alertRuleRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.AlertRule, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := []*domain.AlertRule{}
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (r *alertRuleRepository) ListByUser(ctx context.Context, userID int) ([]*domain.AlertRule, error) {
	return r.list(ctx, `SELECT `+ruleColumns+` FROM alert_rules WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *alertRuleRepository) ListActive(ctx context.Context) ([]*domain.AlertRule, error) {
	return r.list(ctx, `SELECT `+ruleColumns+` FROM alert_rules WHERE is_active = TRUE ORDER BY id`)
}

func (r *alertRuleRepository) Update(ctx context.Context, rule *domain.AlertRule) error {
	query := `
		UPDATE alert_rules
		SET topic = $1, threshold_score = $2, channels = $3, is_active = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		rule.Topic, rule.ThresholdScore, pq.Array(rule.Channels), rule.IsActive, rule.ID,
	).Scan(&rule.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrAlertRuleNotFound
	}
	return err
}

func (r *alertRuleRepository) exec(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAlertRuleNotFound
	}
	return nil
}

func (r *alertRuleRepository) Delete(ctx context.Context, id int) error {
	return r.exec(ctx, `DELETE FROM alert_rules WHERE id = $1`, id)
}

func (r *alertRuleRepository) MarkTriggered(ctx context.Context, id int, at time.Time) error {
	return r.exec(ctx, `UPDATE alert_rules SET last_triggered_at = $1 WHERE id = $2`, at, id)
}
