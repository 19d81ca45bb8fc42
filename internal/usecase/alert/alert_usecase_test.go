package alert

import (
	"context"
	"testing"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRuleDefaults(t *testing.T) {
	uc := NewAlertUseCase(memory.NewAlertRuleRepository(), 70)

	rule, err := uc.Create(context.Background(), 1, &CreateRuleRequest{Topic: " AI agents "})
	require.NoError(t, err)
	assert.Equal(t, "AI agents", rule.Topic)
	assert.Equal(t, 70, rule.ThresholdScore)
	assert.Equal(t, []string{"email"}, rule.Channels)
	assert.True(t, rule.IsActive)
	assert.Nil(t, rule.LastTriggeredAt)

	_, err = uc.Create(context.Background(), 1, &CreateRuleRequest{Topic: "x", Channels: []string{"fax"}})
	assert.ErrorIs(t, err, domain.ErrInvalidChannel)
}

func TestRulesAreScopedToOwner(t *testing.T) {
	uc := NewAlertUseCase(memory.NewAlertRuleRepository(), 70)
	ctx := context.Background()

	rule, err := uc.Create(ctx, 1, &CreateRuleRequest{Topic: "ai"})
	require.NoError(t, err)

	active := false
	_, err = uc.Update(ctx, 2, rule.ID, &UpdateRuleRequest{IsActive: &active})
	assert.ErrorIs(t, err, domain.ErrAlertRuleNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, 2, rule.ID), domain.ErrAlertRuleNotFound)

	threshold := 85
	updated, err := uc.Update(ctx, 1, rule.ID, &UpdateRuleRequest{ThresholdScore: &threshold, Channels: []string{"sms"}, IsActive: &active})
	require.NoError(t, err)
	assert.Equal(t, 85, updated.ThresholdScore)
	assert.Equal(t, []string{"sms"}, updated.Channels)
	assert.False(t, updated.IsActive)

	others, err := uc.List(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, others)

	require.NoError(t, uc.Delete(ctx, 1, rule.ID))
	mine, err := uc.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
