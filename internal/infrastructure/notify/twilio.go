// Package notify delivers admin notifications over Twilio's WhatsApp
// messaging API.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotConfigured is returned when any of the Twilio credentials is
// missing. The webhook maps it to a 500 for the caller.
var ErrNotConfigured = errors.New("whatsapp provider not configured")

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// TwilioWhatsApp sends WhatsApp messages through Twilio's Messages API.
type TwilioWhatsApp struct {
	accountSID string
	authToken  string
	from       string
	to         string
	apiBase    string
	http       *http.Client
}

// NewTwilioWhatsApp builds a sender. Credentials may be empty; Send then
// fails with ErrNotConfigured so misconfiguration surfaces per request
// instead of crashing startup.
func NewTwilioWhatsApp(accountSID, authToken, from, to string) *TwilioWhatsApp {
	return &TwilioWhatsApp{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		to:         to,
		apiBase:    twilioAPIBase,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Send forwards one message body to the configured admin WhatsApp number.
func (t *TwilioWhatsApp) Send(ctx context.Context, body string) error {
	if t.accountSID == "" || t.authToken == "" || t.from == "" || t.to == "" {
		return ErrNotConfigured
	}

	form := url.Values{}
	form.Set("From", t.from)
	form.Set("To", t.to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", t.apiBase, t.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("twilio: build request: %w", err)
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.http.Do(req)
	if err != nil {
		return fmt.Errorf("twilio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("twilio: delivery failed: %s (status %d)", apiErr.Message, resp.StatusCode)
	}
	return nil
}
