package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
)

type alertRuleRepository struct {
	mu     sync.RWMutex
	nextID int
	rules  map[int]*domain.AlertRule
}

func NewAlertRuleRepository() repository.AlertRuleRepository {
	return &alertRuleRepository{rules: make(map[int]*domain.AlertRule)}
}

func copyRule(r *domain.AlertRule) *domain.AlertRule {
	c := *r
	c.Channels = append([]string(nil), r.Channels...)
	return &c
}

func (r *alertRuleRepository) Create(ctx context.Context, rule *domain.AlertRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()
	rule.ID = r.nextID
	rule.CreatedAt, rule.UpdatedAt = now, now
	r.rules[rule.ID] = copyRule(rule)
	return nil
}

func (r *alertRuleRepository) GetByID(ctx context.Context, id int) (*domain.AlertRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[id]
	if !ok {
		return nil, domain.ErrAlertRuleNotFound
	}
	return copyRule(rule), nil
}

func (r *alertRuleRepository) list(match func(*domain.AlertRule) bool) []*domain.AlertRule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.AlertRule
	for _, rule := range r.rules {
		if match(rule) {
			out = append(out, copyRule(rule))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *alertRuleRepository) ListByUser(ctx context.Context, userID int) ([]*domain.AlertRule, error) {
	return r.list(func(rule *domain.AlertRule) bool { return rule.UserID == userID }), nil
}

func (r *alertRuleRepository) ListActive(ctx context.Context) ([]*domain.AlertRule, error) {
	return r.list(func(rule *domain.AlertRule) bool { return rule.IsActive }), nil
}

func (r *alertRuleRepository) Update(ctx context.Context, rule *domain.AlertRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rules[rule.ID]; !ok {
		return domain.ErrAlertRuleNotFound
	}
	rule.UpdatedAt = time.Now().UTC()
	r.rules[rule.ID] = copyRule(rule)
	return nil
}

func (r *alertRuleRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rules[id]; !ok {
		return domain.ErrAlertRuleNotFound
	}
	delete(r.rules, id)
	return nil
}

func (r *alertRuleRepository) MarkTriggered(ctx context.Context, id int, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.rules[id]
	if !ok {
		return domain.ErrAlertRuleNotFound
	}
	rule.LastTriggeredAt = &at
	return nil
}
