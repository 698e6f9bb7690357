package mailer

import (
	"context"
	"fmt"

	"eduspace/config"

	"gopkg.in/gomail.v2"
)

type smtpMailer struct {
	config *config.Config
	dialer *gomail.Dialer
}

func newSMTPMailer(cfg *config.Config) Mailer {
	dialer := gomail.NewDialer(
		cfg.Email.SMTP.Host,
		cfg.Email.SMTP.Port,
		cfg.Email.SMTP.Username,
		cfg.Email.SMTP.Password,
	)

	return &smtpMailer{
		config: cfg,
		dialer: dialer,
	}
}

func (m *smtpMailer) Send(_ context.Context, email Email) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.Email.From)
	msg.SetHeader("To", email.To)
	msg.SetHeader("Subject", email.Subject)

	if email.HTML != "" {
		msg.SetBody("text/html", email.HTML)

		if email.Text != "" {
			msg.AddAlternative("text/plain", email.Text)
		}
	} else {
		msg.SetBody("text/plain", email.Text)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}

	return nil
}
