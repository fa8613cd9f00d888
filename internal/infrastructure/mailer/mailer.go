package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

// SMTPMailer sends notification mail over plain SMTP with optional
// auth. It implements usecase.Notifier.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// Config holds SMTP settings.
type Config struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// NewSMTP creates an SMTP mailer. Auth is skipped when no user is
// configured.
func NewSMTP(cfg Config) *SMTPMailer {
	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	}

	return &SMTPMailer{
		addr: cfg.Host + ":" + cfg.Port,
		auth: auth,
		from: cfg.From,
	}
}

// Send sends one message to all recipients.
func (m *SMTPMailer) Send(ctx context.Context, to []string, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.from, strings.Join(to, ", "), subject, body)

	return smtp.SendMail(m.addr, m.auth, m.from, to, []byte(msg))
}

// LogMailer logs mail instead of sending it. Used when no SMTP host is
// configured, typically in development.
type LogMailer struct {
	logger zerolog.Logger
}

// NewLogMailer creates a LogMailer.
func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message.
func (m *LogMailer) Send(_ context.Context, to []string, subject, body string) error {
	m.logger.Info().
		Strs("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("mail notification")

	return nil
}
