package email

import (
	"context"
	"errors"
	"time"

	"github.com/resend/resend-go/v2"
)

// Message is one outbound transactional email.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Sender delivers transactional email. Sends are best-effort everywhere in
// this app: callers log failures and carry on.
type Sender interface {
	Send(ctx context.Context, msg Message) (id string, err error)
}

// sendTimeout bounds provider calls so a slow email API cannot stall the
// request that triggered it.
const sendTimeout = 5 * time.Second

var ErrDisabled = errors.New("email sending is disabled (no API key)")

// ResendSender delivers mail through the Resend API.
type ResendSender struct {
	client *resend.Client

	// DevRedirect, when non-empty, replaces every recipient. Used in
	// development where only a verified address may receive mail.
	DevRedirect string
}

func NewResendSender(apiKey, devRedirect string) *ResendSender {
	return &ResendSender{
		client:      resend.NewClient(apiKey),
		DevRedirect: devRedirect,
	}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	to := msg.To
	if s.DevRedirect != "" {
		to = s.DevRedirect
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{to},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", err
	}
	return sent.Id, nil
}

// NopSender is used when no API key is configured; every send reports
// ErrDisabled so callers log it once and move on.
type NopSender struct{}

func (NopSender) Send(ctx context.Context, msg Message) (string, error) {
	return "", ErrDisabled
}
