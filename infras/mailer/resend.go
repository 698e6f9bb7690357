package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"eduspace/config"
	"eduspace/shared/constant"
)

const resendRequestTimeout = 15 * time.Second

type resendMailer struct {
	config *config.Config
	client *http.Client
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html,omitempty"`
}

func newResendMailer(cfg *config.Config) Mailer {
	return &resendMailer{
		config: cfg,
		client: &http.Client{Timeout: resendRequestTimeout},
	}
}

func (m *resendMailer) Send(ctx context.Context, email Email) error {
	payload := resendRequest{
		From:    m.config.Email.From,
		To:      []string{email.To},
		Subject: email.Subject,
		Text:    email.Text,
		HTML:    email.HTML,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.Email.Resend.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+m.config.Email.Resend.APIKey)
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call email API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return fmt.Errorf("email API error: %d %s", resp.StatusCode, string(detail))
	}

	return nil
}
