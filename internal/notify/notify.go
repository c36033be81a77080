// Package notify delivers composed lead notifications through an email
// provider, with an optional SMS alert alongside.
package notify

import (
	"context"

	"lead-webhook/internal/common/errors"
	"lead-webhook/internal/common/validation"
)

// Message is one outbound email. HTML is required; Text is an optional alternative body.
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text,omitempty"`
}

// Result identifies an accepted message at the provider.
type Result struct {
	Provider  string
	MessageID string
}

// Sender hands a message to a delivery provider. There is no retry.
type Sender interface {
	Send(ctx context.Context, msg Message) (*Result, error)
	Name() string
}

// Alerter sends a short text alert. Failures are reported but never fatal to the caller.
type Alerter interface {
	Alert(ctx context.Context, text string) error
}

const messageSchema = `{
	"type": "object",
	"required": ["from", "to", "subject", "html"],
	"properties": {
		"from":    {"type": "string", "pattern": "@"},
		"to":      {"type": "string", "pattern": "@"},
		"subject": {"type": "string", "minLength": 1, "maxLength": 998},
		"html":    {"type": "string", "minLength": 1},
		"text":    {"type": "string"}
	}
}`

var messageValidator = validation.MustCompile(messageSchema)

// Validate checks msg before it leaves the process.
func Validate(msg Message) error {
	res, err := messageValidator.Validate(msg)
	if err != nil {
		return errors.NewNotificationValidationFailedError(err.Error())
	}
	if !res.Valid {
		return errors.NewNotificationValidationFailedError(res.Summary())
	}
	return nil
}
