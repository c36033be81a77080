package notify

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"lead-webhook/internal/common/errors"
	"lead-webhook/internal/common/logger"
)

const ProviderSES = "ses"

type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SESSender struct {
	client SESService
	logger logger.Logger
}

func NewSESSender(client SESService, log logger.Logger) *SESSender {
	return &SESSender{
		client: client,
		logger: log.WithFields(map[string]interface{}{"provider": ProviderSES}),
	}
}

func (s *SESSender) Name() string { return ProviderSES }

func (s *SESSender) Send(ctx context.Context, msg Message) (*Result, error) {
	if err := Validate(msg); err != nil {
		return nil, err
	}

	body := &types.Body{
		Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")},
	}
	if msg.Text != "" {
		body.Text = &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")}
	}

	out, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body:    body,
		},
		Source: aws.String(msg.From),
	})
	if err != nil {
		return nil, errors.NewNotificationSendFailedError(ProviderSES, err)
	}

	id := aws.ToString(out.MessageId)
	s.logger.Debug("Email accepted", map[string]interface{}{
		"messageId": id,
		"to":        msg.To,
	})

	return &Result{Provider: ProviderSES, MessageID: id}, nil
}
