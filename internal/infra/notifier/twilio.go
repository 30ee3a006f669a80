package notifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"plannerx/internal/resilience/circuitbreaker"
	"plannerx/internal/resilience/retry"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// TwilioConfig holds the Twilio REST API credentials.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Configured reports whether SMS delivery can be attempted.
func (c TwilioConfig) Configured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

// LoadTwilioConfig reads credentials from TWILIO_ACCOUNT_SID,
// TWILIO_AUTH_TOKEN and TWILIO_FROM_NUMBER.
func LoadTwilioConfig() TwilioConfig {
	return TwilioConfig{
		AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		FromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

// TwilioSender sends SMS through the Twilio Messages REST endpoint.
type TwilioSender struct {
	config         TwilioConfig
	client         *http.Client
	apiBase        string
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	rateLimiter    *RateLimiter
}

// NewTwilioSender creates a sender over the given credentials.
func NewTwilioSender(config TwilioConfig, client *http.Client) *TwilioSender {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &TwilioSender{
		config:         config,
		client:         client,
		apiBase:        twilioAPIBase,
		circuitBreaker: circuitbreaker.New(circuitbreaker.MailConfig("twilio")),
		retryConfig:    retry.MailConfig(),
		rateLimiter:    NewRateLimiter(1.0, 3),
	}
}

// SendSMS delivers one message. Missing credentials are an error so the
// caller can log and skip the SMS side-channel.
func (t *TwilioSender) SendSMS(ctx context.Context, to, text string) error {
	if !t.config.Configured() {
		return fmt.Errorf("SendSMS: twilio not configured")
	}

	if err := t.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("SendSMS: rate limit: %w", err)
	}

	retryErr := retry.WithBackoff(ctx, t.retryConfig, func() error {
		_, err := t.circuitBreaker.Execute(func() (any, error) {
			return nil, t.doSend(ctx, to, text)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("twilio circuit breaker open, request rejected",
					slog.String("state", t.circuitBreaker.State().String()))
				return fmt.Errorf("twilio api unavailable: circuit breaker open")
			}
			return err
		}
		return nil
	})
	if retryErr != nil {
		return fmt.Errorf("SendSMS: %w", retryErr)
	}

	slog.Info("sms sent", slog.String("to", to))
	return nil
}

// doSend performs one Messages API call without retry or circuit breaker.
func (t *TwilioSender) doSend(ctx context.Context, to, text string) error {
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", t.apiBase, t.config.AccountSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.config.FromNumber)
	form.Set("Body", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("twilio request: %w", err)
	}
	req.SetBasicAuth(t.config.AccountSID, t.config.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &retry.HTTPError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("twilio api: %s", strings.TrimSpace(string(body))),
	}
}
