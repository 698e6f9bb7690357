package mailer

import (
	"context"

	"eduspace/config"

	"github.com/rs/zerolog/log"
)

type noopMailer struct {
	config *config.Config
}

func newNoopMailer(cfg *config.Config) Mailer {
	return &noopMailer{config: cfg}
}

func (m *noopMailer) Send(_ context.Context, email Email) error {
	log.Info().
		Str("to", email.To).
		Str("subject", email.Subject).
		Str("preview", email.Text).
		Msg("Email transport disabled, logging message instead")

	return nil
}
