// Package notify delivers alert and collaboration notifications by e-mail
// (SMTP) and SMS (Twilio). Delivery failures are logged and reported as false,
// never returned to the caller.
package notify

import (
	"context"
	"net/http"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/logging"
)

type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string

	TwilioSID     string
	TwilioToken   string
	TwilioFrom    string
	TwilioBaseURL string
}

type Notifier struct {
	cfg         Config
	httpClient  *http.Client
	dialTimeout time.Duration
}

func NewNotifier(cfg Config) *Notifier {
	if cfg.TwilioBaseURL == "" {
		cfg.TwilioBaseURL = "https://api.twilio.com"
	}
	return &Notifier{
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		dialTimeout: 15 * time.Second,
	}
}

func (n *Notifier) emailEnabled() bool {
	return n.cfg.SMTPHost != "" && n.cfg.EmailFrom != ""
}

func (n *Notifier) smsEnabled() bool {
	return n.cfg.TwilioSID != "" && n.cfg.TwilioToken != "" && n.cfg.TwilioFrom != ""
}

func (n *Notifier) SendEmail(ctx context.Context, to, subject, html string) bool {
	if !n.emailEnabled() {
		logging.Ctx(ctx).Warn().Str("to", to).Msg("[NOTIFY] SMTP not configured, e-mail skipped")
		return false
	}
	if err := n.sendSMTP(ctx, to, buildMessage(n.cfg.EmailFrom, to, subject, html)); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("to", to).Msg("[NOTIFY] E-mail delivery failed")
		return false
	}
	logging.Ctx(ctx).Info().Str("to", to).Msg("[NOTIFY] E-mail sent")
	return true
}

func (n *Notifier) SendSMS(ctx context.Context, to, text string) bool {
	if !n.smsEnabled() {
		logging.Ctx(ctx).Warn().Str("to", to).Msg("[NOTIFY] Twilio not configured, SMS skipped")
		return false
	}
	if err := n.sendTwilio(ctx, to, text); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("to", to).Msg("[NOTIFY] SMS delivery failed")
		return false
	}
	logging.Ctx(ctx).Info().Str("to", to).Msg("[NOTIFY] SMS sent")
	return true
}
