package channels

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPConfig describes an SMTP relay. Credentials are optional.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// SMTPEmailSender sends plain-text mail through an SMTP relay.
type SMTPEmailSender struct {
	client *mail.Client
	from   string
}

// NewSMTPEmailSender returns nil, nil when no host is configured so callers
// can treat email as disabled.
func NewSMTPEmailSender(cfg SMTPConfig) (*SMTPEmailSender, error) {
	if cfg.Host == "" {
		return nil, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	if cfg.Username != "" && cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("channels: failed to create SMTP client: %w", err)
	}
	return &SMTPEmailSender{client: client, from: cfg.From}, nil
}

func (s *SMTPEmailSender) SendEmail(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("invalid from address %q: %w", s.from, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}
