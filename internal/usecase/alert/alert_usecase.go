package alert

import (
	"context"
	"strings"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
)

type AlertUseCase struct {
	ruleRepo         repository.AlertRuleRepository
	defaultThreshold int
}

func NewAlertUseCase(ruleRepo repository.AlertRuleRepository, defaultThreshold int) *AlertUseCase {
	if defaultThreshold <= 0 {
		defaultThreshold = domain.DefaultAlertThreshold
	}
	return &AlertUseCase{ruleRepo: ruleRepo, defaultThreshold: defaultThreshold}
}

type CreateRuleRequest struct {
	Topic          string   `json:"topic" binding:"required,min=1,max=200"`
	ThresholdScore *int     `json:"threshold_score" binding:"omitempty,min=0,max=100"`
	Channels       []string `json:"channels" binding:"omitempty,max=2"`
}

type UpdateRuleRequest struct {
	Topic          *string  `json:"topic" binding:"omitempty,min=1,max=200"`
	ThresholdScore *int     `json:"threshold_score" binding:"omitempty,min=0,max=100"`
	Channels       []string `json:"channels" binding:"omitempty,max=2"`
	IsActive       *bool    `json:"is_active"`
}

func (uc *AlertUseCase) Create(ctx context.Context, userID int, req *CreateRuleRequest) (*domain.AlertRule, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, domain.ErrEmptyTopic
	}
	channels, err := domain.NormalizeChannels(req.Channels)
	if err != nil {
		return nil, err
	}
	threshold := uc.defaultThreshold
	if req.ThresholdScore != nil {
		threshold = *req.ThresholdScore
	}

	rule := &domain.AlertRule{
		UserID:         userID,
		Topic:          topic,
		ThresholdScore: threshold,
		Channels:       channels,
		IsActive:       true,
	}
	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (uc *AlertUseCase) List(ctx context.Context, userID int) ([]*domain.AlertRule, error) {
	rules, err := uc.ruleRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rules == nil {
		rules = []*domain.AlertRule{}
	}
	return rules, nil
}

// owned loads a rule and hides rules belonging to other users.
func (uc *AlertUseCase) owned(ctx context.Context, userID, ruleID int) (*domain.AlertRule, error) {
	rule, err := uc.ruleRepo.GetByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if rule.UserID != userID {
		return nil, domain.ErrAlertRuleNotFound
	}
	return rule, nil
}

func (uc *AlertUseCase) Update(ctx context.Context, userID, ruleID int, req *UpdateRuleRequest) (*domain.AlertRule, error) {
	rule, err := uc.owned(ctx, userID, ruleID)
	if err != nil {
		return nil, err
	}

	if req.Topic != nil {
		topic := strings.TrimSpace(*req.Topic)
		if topic == "" {
			return nil, domain.ErrEmptyTopic
		}
		rule.Topic = topic
	}
	if req.ThresholdScore != nil {
		rule.ThresholdScore = *req.ThresholdScore
	}
	if req.Channels != nil {
		if rule.Channels, err = domain.NormalizeChannels(req.Channels); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if err := uc.ruleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (uc *AlertUseCase) Delete(ctx context.Context, userID, ruleID int) error {
	if _, err := uc.owned(ctx, userID, ruleID); err != nil {
		return err
	}
	return uc.ruleRepo.Delete(ctx, ruleID)
}
