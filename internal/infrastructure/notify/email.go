// Package notify delivers notification messages over email and SMS.
package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

const defaultSMTPTimeout = 15 * time.Second

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
	UseTLS   bool
	Timeout  time.Duration
}

// Configured reports whether enough settings are present to send mail.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.From != ""
}

// EmailSender delivers email messages over SMTP.
type EmailSender struct {
	cfg SMTPConfig
	// transmit is replaced in tests.
	transmit func(ctx context.Context, to, msg string) error
}

var _ ports.MessageSender = (*EmailSender)(nil)

func NewEmailSender(cfg SMTPConfig) *EmailSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultSMTPTimeout
	}
	if cfg.FromName == "" {
		cfg.FromName = "Visitor Pass"
	}
	s := &EmailSender{cfg: cfg}
	s.transmit = s.sendSMTP
	return s
}

func (s *EmailSender) Send(ctx context.Context, msg domain.Message) error {
	if msg.Channel != domain.ChannelEmail {
		return fmt.Errorf("email sender cannot deliver %s messages", msg.Channel)
	}
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return errors.New("email recipient is required")
	}
	return s.transmit(ctx, to, s.buildMessage(to, msg))
}

func (s *EmailSender) buildMessage(to string, msg domain.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return b.String()
}

func (s *EmailSender) sendSMTP(ctx context.Context, to, msg string) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))

	dialer := &net.Dialer{Timeout: s.cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() { _ = conn.Close() }()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() { _ = client.Close() }()

	if s.cfg.UseTLS {
		tlsConfig := &tls.Config{
			ServerName: s.cfg.Host,
			MinVersion: tls.VersionTLS12,
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if s.cfg.User != "" && s.cfg.Password != "" {
		auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to start message: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close message: %w", err)
	}

	// The message is accepted once Data is closed.
	_ = client.Quit()
	return nil
}
