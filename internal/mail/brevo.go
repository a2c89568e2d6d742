package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// Mailer dispatches transactional mail.
type Mailer interface {
	SendPasswordReset(ctx context.Context, toEmail, resetLink string) error
}

// BrevoMailer sends transactional email through the Brevo v3 API.
type BrevoMailer struct {
	apiKey      string
	senderName  string
	senderEmail string
	client      *http.Client
}

// NewBrevoMailer creates a mailer with the given API key and sender identity.
func NewBrevoMailer(apiKey, senderName, senderEmail string) *BrevoMailer {
	return &BrevoMailer{
		apiKey:      apiKey,
		senderName:  senderName,
		senderEmail: senderEmail,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type brevoAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoMessage struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	TextContent string         `json:"textContent"`
	HTMLContent string         `json:"htmlContent"`
}

// SendPasswordReset emails a password recovery link.
func (m *BrevoMailer) SendPasswordReset(ctx context.Context, toEmail, resetLink string) error {
	msg := brevoMessage{
		Sender:      brevoAddress{Name: m.senderName, Email: m.senderEmail},
		To:          []brevoAddress{{Email: toEmail}},
		Subject:     "Password recovery",
		TextContent: fmt.Sprintf("To recover your password open this link -> %s", resetLink),
		HTMLContent: fmt.Sprintf(`<p>To recover your password, go to -> <a href=%q>Recover Password</a></p>`, resetLink),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal reset mail: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build reset mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("brevo returned %d: %s", resp.StatusCode, body)
	}
	return nil
}
