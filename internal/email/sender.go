// Package email delivers quick report summaries over SMTP.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Mailer is implemented by anything that can deliver a quick report.
type Mailer interface {
	SendQuickReport(ctx context.Context, name, recipient, body string) error
}

// SMTPConfig holds the connection settings for the outgoing mail server.
type SMTPConfig struct {
	Host        string
	Port        string
	Username    string
	Password    string
	SenderEmail string
}

// Sender delivers emails through a plain-auth SMTP server.
type Sender struct {
	cfg SMTPConfig
}

func NewSender(cfg SMTPConfig) *Sender {
	return &Sender{cfg: cfg}
}

// SendQuickReport emails a rendered quick report to the recipient.
func (s *Sender) SendQuickReport(ctx context.Context, name, recipient, body string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{recipient}
	e.Subject = "Your Household Budget Quick Report"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := e.Send(addr, auth); err != nil {
		slog.ErrorContext(ctx, "Failed to send email", "recipient", recipient, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	slog.InfoContext(ctx, "Email sent", "recipient", recipient, "subject", e.Subject, "name", name)
	return nil
}
