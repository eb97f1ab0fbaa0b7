// Package mailer delivers account verification codes by email.
package mailer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"ielts_backend/internal/platform/config"
)

const verificationSubject = "Your IELTS Writing verification code"

// Mailer sends verification codes over SMTP.
type Mailer struct {
	from string
	send func(msg *gomail.Message) error
}

// NewMailer creates a Mailer dialing the configured SMTP server for every message.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &Mailer{
		from: cfg.From,
		send: func(msg *gomail.Message) error { return dialer.DialAndSend(msg) },
	}
}

// SendVerificationCode emails code to the given address.
func (m *Mailer) SendVerificationCode(_ context.Context, email, code string) error {
	if email == "" {
		return fmt.Errorf("no recipient specified")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", verificationSubject)
	msg.SetBody("text/plain", fmt.Sprintf("Your verification code is %s. It expires in 15 minutes.", code))

	if err := m.send(msg); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// NoopSender is used when SMTP is not configured. Codes are only logged at debug level.
type NoopSender struct{}

// SendVerificationCode logs the code instead of sending it.
func (NoopSender) SendVerificationCode(_ context.Context, email, code string) error {
	log.Debug().Str("email", email).Str("code", code).Msg("smtp disabled, verification code not sent")
	return nil
}
