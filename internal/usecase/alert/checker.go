package alert

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/domain"
	"github.com/gdugdh24/insightsphere-backend/internal/logging"
	"github.com/gdugdh24/insightsphere-backend/internal/metrics"
	"github.com/gdugdh24/insightsphere-backend/internal/repository"
)

type ViralityProvider interface {
	TopicVirality(ctx context.Context, topic string) (int, error)
}

// Sender delivers notifications. A false return means delivery failed and was logged.
type Sender interface {
	SendEmail(ctx context.Context, to, subject, html string) bool
	SendSMS(ctx context.Context, to, text string) bool
}

// Checker evaluates active alert rules against current topic virality.
type Checker struct {
	ruleRepo repository.AlertRuleRepository
	userRepo repository.UserRepository
	virality ViralityProvider
	sender   Sender
	throttle time.Duration
	interval time.Duration
	now      func() time.Time
}

func NewChecker(
	ruleRepo repository.AlertRuleRepository,
	userRepo repository.UserRepository,
	virality ViralityProvider,
	sender Sender,
	throttle, interval time.Duration,
) *Checker {
	return &Checker{
		ruleRepo: ruleRepo,
		userRepo: userRepo,
		virality: virality,
		sender:   sender,
		throttle: throttle,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type RunStats struct {
	Topics    int
	Triggered int
	Failed    int
}

// RunOnce checks every active rule. Topics are searched once and shared by
// all rules watching them. Errors on one topic do not stop the others.
func (c *Checker) RunOnce(ctx context.Context) (RunStats, error) {
	var stats RunStats

	rules, err := c.ruleRepo.ListActive(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to load alert rules: %w", err)
	}

	byTopic := make(map[string][]*domain.AlertRule)
	for _, r := range rules {
		key := strings.ToLower(strings.TrimSpace(r.Topic))
		byTopic[key] = append(byTopic[key], r)
	}
	topics := make([]string, 0, len(byTopic))
	for t := range byTopic {
		topics = append(topics, t)
	}
	sort.Strings(topics)

	for _, topic := range topics {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		stats.Topics++

		score, err := c.virality.TopicVirality(ctx, topic)
		if err != nil {
			stats.Failed++
			logging.Warn().Err(err).Str("topic", topic).Msg("[ALERTS] Topic check failed")
			continue
		}
		metrics.TopicVirality.Observe(float64(score))

		now := c.now()
		for _, rule := range byTopic[topic] {
			if !rule.ShouldTrigger(score, now, c.throttle) {
				continue
			}
			c.notify(ctx, rule, score)
			if err := c.ruleRepo.MarkTriggered(ctx, rule.ID, now); err != nil {
				logging.Error().Err(err).Int("rule_id", rule.ID).Msg("[ALERTS] Failed to record trigger")
				continue
			}
			stats.Triggered++
		}
	}

	logging.Info().Int("topics", stats.Topics).Int("triggered", stats.Triggered).Int("failed", stats.Failed).Msg("[ALERTS] Check complete")
	return stats, nil
}

func (c *Checker) notify(ctx context.Context, rule *domain.AlertRule, score int) {
	user, err := c.userRepo.GetByID(ctx, rule.UserID)
	if err != nil {
		logging.Warn().Err(err).Int("user_id", rule.UserID).Msg("[ALERTS] Rule owner not found")
		return
	}

	text := fmt.Sprintf("Trend alert: %q is trending with a virality score of %d (threshold %d).",
		rule.Topic, score, rule.ThresholdScore)

	for _, ch := range rule.Channels {
		var ok bool
		switch domain.AlertChannel(ch) {
		case domain.ChannelEmail:
			ok = c.sender.SendEmail(ctx, user.Email, "Trend alert: "+rule.Topic, "<p>"+html.EscapeString(text)+"</p>")
		case domain.ChannelSMS:
			if user.PhoneNumber == nil || *user.PhoneNumber == "" {
				logging.Debug().Int("user_id", user.ID).Msg("[ALERTS] No phone number, skipping SMS")
				continue
			}
			ok = c.sender.SendSMS(ctx, *user.PhoneNumber, text)
		default:
			continue
		}
		result := "sent"
		if !ok {
			result = "failed"
		}
		metrics.AlertNotifications.WithLabelValues(ch, result).Inc()
	}
}

// Serve runs RunOnce on every interval tick until ctx is canceled.
func (c *Checker) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := c.RunOnce(ctx); err != nil && ctx.Err() == nil {
				logging.Error().Err(err).Msg("[ALERTS] Check failed")
			}
		}
	}
}

func (c *Checker) String() string {
	return "trend-alert-checker"
}
