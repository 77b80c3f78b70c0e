package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/xypherlux/storefront-backend/pkg/config"
	"github.com/xypherlux/storefront-backend/pkg/logger"
)

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers transactional email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender delivers mail over authenticated SMTP.
type SMTPSender struct {
	cfg  config.MailConfig
	logg *logger.Logger
}

// NewSMTPSender builds an SMTP-backed sender.
func NewSMTPSender(cfg config.MailConfig, logg *logger.Logger) (*SMTPSender, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &SMTPSender{cfg: cfg, logg: logg}, nil
}

// Send writes the message to the configured SMTP relay.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("recipient is required")
	}

	var auth smtp.Auth
	if s.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	}

	payload := strings.Join([]string{
		fmt.Sprintf("From: %s", s.cfg.DefaultFrom),
		fmt.Sprintf("To: %s", msg.To),
		fmt.Sprintf("Subject: %s", msg.Subject),
		"",
		msg.Body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	if err := smtp.SendMail(addr, auth, s.cfg.DefaultFrom, []string{msg.To}, []byte(payload)); err != nil {
		return fmt.Errorf("sending mail to %s: %w", msg.To, err)
	}

	s.logg.Info(s.logg.WithField(ctx, "to", msg.To), "email delivered")
	return nil
}

// NoopSender satisfies Sender without delivering anything. Used when SMTP is
// not configured, typically in dev.
type NoopSender struct {
	logg *logger.Logger
}

// NewNoopSender builds a sender that only logs.
func NewNoopSender(logg *logger.Logger) *NoopSender {
	return &NoopSender{logg: logg}
}

// Send logs the message instead of delivering it.
func (s *NoopSender) Send(ctx context.Context, msg Message) error {
	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{"to": msg.To, "subject": msg.Subject}), "email suppressed (no smtp configured)")
	}
	return nil
}
