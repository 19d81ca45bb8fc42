package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAlertRuleShouldTrigger(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rule := &AlertRule{ThresholdScore: 70, IsActive: true}

	assert.True(t, rule.ShouldTrigger(70, now, 12*time.Hour))
	assert.False(t, rule.ShouldTrigger(69, now, 12*time.Hour))

	last := now.Add(-11 * time.Hour)
	rule.LastTriggeredAt = &last
	assert.False(t, rule.ShouldTrigger(90, now, 12*time.Hour))

	last = now.Add(-12 * time.Hour)
	assert.True(t, rule.ShouldTrigger(90, now, 12*time.Hour))

	rule.IsActive = false
	assert.False(t, rule.ShouldTrigger(100, now, 12*time.Hour))
}

func TestNormalizeChannels(t *testing.T) {
	ch, err := NormalizeChannels(nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"email"}, ch)

	ch, err = NormalizeChannels([]string{"SMS", "email", "sms"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"sms", "email"}, ch)

	_, err = NormalizeChannels([]string{"pigeon"})
	assert.ErrorIs(t, err, ErrInvalidChannel)
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("respond: %w", ErrRequestExpired)
	assert.Equal(t, KindExpired, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(fmt.Errorf("boom")))
}
