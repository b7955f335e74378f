// Package mailer sends the newsletter to new subscribers through Resend.
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/zainmh-10/CreateAILab/internal/domain"
	"github.com/zainmh-10/CreateAILab/internal/logger"
)

// ToolSource supplies the tools featured in the newsletter.
type ToolSource interface {
	Tools() []domain.Tool
}

type Options struct {
	APIKey  string
	From    string
	Subject string
}

type Resend struct {
	client  *resend.Client
	tools   ToolSource
	from    string
	subject string
	log     logger.Logger
}

// NewResend returns nil when no API key is configured; callers then skip sending.
func NewResend(opts Options, tools ToolSource, log logger.Logger) *Resend {
	if opts.APIKey == "" {
		return nil
	}
	return &Resend{
		client:  resend.NewClient(opts.APIKey),
		tools:   tools,
		from:    opts.From,
		subject: opts.Subject,
		log:     log,
	}
}

// SendNewsletter emails the current newsletter to one address.
// Failures wrap domain.ErrDispatchFailed and carry the provider message.
func (m *Resend) SendNewsletter(ctx context.Context, to string) error {
	html, err := RenderNewsletter(m.tools.Tools(), time.Now())
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDispatchFailed, err)
	}

	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: m.subject,
		Html:    html,
	})
	if err != nil {
		return &DispatchError{Message: err.Error()}
	}

	m.log.Info("newsletter sent", logger.String("message_id", sent.Id))
	return nil
}

// DispatchError is a provider-side send failure.
type DispatchError struct {
	Message string
}

func (e *DispatchError) Error() string { return e.Message }

func (e *DispatchError) Unwrap() error { return domain.ErrDispatchFailed }
