package leadintake

import (
	"lead-webhook/internal/common/logger"
	"lead-webhook/internal/common/observability"
	"lead-webhook/internal/leads"
	"lead-webhook/internal/leads/compose"
	"lead-webhook/internal/leads/extract"
	"lead-webhook/internal/notify"
)

// Output is the body of a successful webhook response.
type Output struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Outcome describes one processed lead.
type Outcome struct {
	Layout    string
	Record    leads.Record
	Provider  string
	MessageID string
}

type ServiceDependencies struct {
	Logger    logger.Logger
	Extractor *extract.Extractor
	Composer  *compose.Composer
	Sender    notify.Sender
	// Alerter is optional.
	Alerter       notify.Alerter
	Observability *observability.Observability
}
