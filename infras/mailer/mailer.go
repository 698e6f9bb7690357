package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"

	"eduspace/config"

	"github.com/rs/zerolog/log"
)

// Email represents an outbound email message.
type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends a single email. Delivery is always best-effort from the
// caller's point of view; business writes never roll back on a send failure.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// New selects the email sink from configuration: an HTTP email API when an
// API key is present (avoids outbound SMTP blocks some hosts enforce), an
// SMTP relay when a host is configured, and a log-only preview sink otherwise.
func New(cfg *config.Config) Mailer {
	if cfg.Email.Resend.APIKey != "" {
		log.Info().Msg("Email transport: Resend HTTP API")

		return newResendMailer(cfg)
	}

	if cfg.Email.SMTP.Host != "" {
		log.Info().Str("host", cfg.Email.SMTP.Host).Msg("Email transport: SMTP")

		return newSMTPMailer(cfg)
	}

	log.Warn().Msg("Email transport not configured, emails will only be logged")

	return newNoopMailer(cfg)
}
