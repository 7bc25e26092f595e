// Package mailer sends transactional email over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// Config holds SMTP settings.
type Config struct {
	Host        string
	Port        int
	User        string
	Pass        string
	FromAddress string
	FromName    string
}

// Mailer sends HTML email. When no SMTP host is configured it logs and drops
// messages, so local development works without a mail server.
type Mailer struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a Mailer.
func New(cfg Config, logger *zap.Logger) *Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mailer{cfg: cfg, logger: logger}
}

// Send delivers one HTML email to the recipient.
func (m *Mailer) Send(recipient, subject, htmlBody string) error {
	if m.cfg.Host == "" {
		m.logger.Info("smtp not configured, dropping email",
			zap.String("recipient", recipient),
			zap.String("subject", subject),
		)
		return nil
	}

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		m.cfg.FromName, m.cfg.FromAddress, recipient, subject, htmlBody)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.FromAddress, []string{recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
