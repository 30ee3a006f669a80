// Package notifier provides the delivery channels for assembled digests:
// SMTP email and Twilio SMS, plus a no-op for development. Implementations
// handle rate limiting, retries and error logging internally; the digest
// runner only sees a success or a failure per user.
package notifier

import "context"

// Mailer sends one rendered digest email.
type Mailer interface {
	// SendMail delivers the HTML body (with an optional plain-text
	// alternative) to a single recipient.
	SendMail(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// SMSSender sends one short text message.
type SMSSender interface {
	// SendSMS delivers text to a phone number in E.164 format.
	SendSMS(ctx context.Context, to, text string) error
}
