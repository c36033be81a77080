package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SMS messages longer than this are split by carriers; alerts are cut to fit.
const maxSMSLength = 160

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SMSAlerter texts a fixed phone number through SNS.
type SMSAlerter struct {
	client      SNSService
	phoneNumber string
}

func NewSMSAlerter(client SNSService, phoneNumber string) *SMSAlerter {
	return &SMSAlerter{client: client, phoneNumber: phoneNumber}
}

func (a *SMSAlerter) Alert(ctx context.Context, text string) error {
	if len(text) > maxSMSLength {
		text = truncate(text, maxSMSLength)
	}
	_, err := a.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(a.phoneNumber),
		Message:     aws.String(text),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {
				DataType:    aws.String("String"),
				StringValue: aws.String("Transactional"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("publish sms: %w", err)
	}
	return nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	size := 0
	for _, r := range runes {
		l := len(string(r))
		if size+l > n-3 {
			return string(out) + "..."
		}
		out = append(out, r)
		size += l
	}
	return string(out)
}
