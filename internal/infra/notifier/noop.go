package notifier

import (
	"context"
	"log/slog"
)

// NoOp satisfies both Mailer and SMSSender without side effects. Used in
// development and when delivery channels are deliberately disabled.
type NoOp struct{}

// NewNoOp creates a new NoOp notifier.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// SendMail logs the would-be delivery and succeeds.
func (n *NoOp) SendMail(_ context.Context, to, subject, _, _ string) error {
	slog.Debug("noop mailer: skipping delivery",
		slog.String("to", to),
		slog.String("subject", subject))
	return nil
}

// SendSMS logs the would-be delivery and succeeds.
func (n *NoOp) SendSMS(_ context.Context, to, _ string) error {
	slog.Debug("noop sms sender: skipping delivery", slog.String("to", to))
	return nil
}
