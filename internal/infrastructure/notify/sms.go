package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

func (n *Notifier) sendTwilio(ctx context.Context, to, text string) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", strings.TrimRight(n.cfg.TwilioBaseURL, "/"), n.cfg.TwilioSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", n.cfg.TwilioFrom)
	form.Set("Body", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(n.cfg.TwilioSID, n.cfg.TwilioToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
