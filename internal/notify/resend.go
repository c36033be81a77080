package notify

import (
	"context"
	"net/http"

	"github.com/resend/resend-go/v2"

	"lead-webhook/internal/common/errors"
	"lead-webhook/internal/common/logger"
)

const ProviderResend = "resend"

// ResendEmails is the part of the Resend client used here.
type ResendEmails interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type ResendSender struct {
	emails ResendEmails
	logger logger.Logger
}

// NewResendSender builds a sender on the Resend API. httpClient carries the
// request timeout; nil uses http.DefaultClient.
func NewResendSender(apiKey string, httpClient *http.Client, log logger.Logger) *ResendSender {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	client := resend.NewCustomClient(httpClient, apiKey)
	return NewResendSenderWithAPI(client.Emails, log)
}

func NewResendSenderWithAPI(emails ResendEmails, log logger.Logger) *ResendSender {
	return &ResendSender{
		emails: emails,
		logger: log.WithFields(map[string]interface{}{"provider": ProviderResend}),
	}
}

func (s *ResendSender) Name() string { return ProviderResend }

func (s *ResendSender) Send(ctx context.Context, msg Message) (*Result, error) {
	if err := Validate(msg); err != nil {
		return nil, err
	}

	resp, err := s.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return nil, errors.NewNotificationSendFailedError(ProviderResend, err)
	}

	s.logger.Debug("Email accepted", map[string]interface{}{
		"messageId": resp.Id,
		"to":        msg.To,
	})

	return &Result{Provider: ProviderResend, MessageID: resp.Id}, nil
}
