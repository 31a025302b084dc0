// Package mail delivers transactional email through the SendGrid v3 API.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bloodlink/donor-registry/internal/core/ports"
)

const defaultEndpoint = "https://api.sendgrid.com/v3/mail/send"

// SendGridMailer implements ports.Mailer. Endpoint and HTTPClient are
// overridable for tests.
type SendGridMailer struct {
	APIKey     string
	FromEmail  string
	FromName   string
	Endpoint   string
	HTTPClient *http.Client
}

func NewSendGridMailer(apiKey, fromEmail, fromName string) *SendGridMailer {
	return &SendGridMailer{
		APIKey:     apiKey,
		FromEmail:  fromEmail,
		FromName:   fromName,
		Endpoint:   defaultEndpoint,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgMessage struct {
	Personalizations []struct {
		To []sgAddress `json:"to"`
	} `json:"personalizations"`
	From    sgAddress `json:"from"`
	Subject string    `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func (m *SendGridMailer) SendPasswordReset(ctx context.Context, toEmail, resetLink string) error {
	body := fmt.Sprintf(
		"A password reset was requested for your donor account.\n\nReset your password: %s\n\nIf you did not request this, ignore this message.",
		resetLink,
	)
	return m.send(ctx, toEmail, "", "Reset your password", body)
}

func (m *SendGridMailer) SendDonorAlert(ctx context.Context, alert ports.DonorAlert) error {
	subject := fmt.Sprintf("%s blood needed near %s", alert.BloodGroupNeeded, alert.Location)
	body := fmt.Sprintf(
		"Hi %s,\n\nA donation request matching your blood group was just posted.\n\nBlood group: %s\nLocation: %s\nUrgency: %s\n\nOpen the registry to respond if you can help.",
		alert.DonorName, alert.BloodGroupNeeded, alert.Location, alert.Urgency,
	)
	return m.send(ctx, alert.Email, alert.DonorName, subject, body)
}

func (m *SendGridMailer) send(ctx context.Context, toEmail, toName, subject, body string) error {
	msg := sgMessage{
		From:    sgAddress{Email: m.FromEmail, Name: m.FromName},
		Subject: subject,
	}
	msg.Personalizations = []struct {
		To []sgAddress `json:"to"`
	}{{To: []sgAddress{{Email: toEmail, Name: toName}}}}
	msg.Content = []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{{Type: "text/plain", Value: body}}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("sendgrid marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("sendgrid send: unexpected status %d", resp.StatusCode)
	}
	return nil
}
