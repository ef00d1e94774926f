package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Mailer sends a single email to a single recipient. Implementations must
// be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, toName, toAddr, subject, body string) error
}

// SMTPConfig holds the connection settings for the outbound mail server.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPMailer delivers mail over SMTP.
type SMTPMailer struct {
	client *mail.Client
	cfg    SMTPConfig
}

// NewSMTPMailer creates a mailer from the given SMTP settings.
func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTPMailer{client: client, cfg: cfg}, nil
}

// Send delivers one message to one recipient.
func (m *SMTPMailer) Send(ctx context.Context, toName, toAddr, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.AddToFormat(toName, toAddr); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send to %s: %w", toAddr, err)
	}
	return nil
}
