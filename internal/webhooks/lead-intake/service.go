package leadintake

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"lead-webhook/internal/common/logger"
	"lead-webhook/internal/common/metrics"
	"lead-webhook/internal/common/observability"
	"lead-webhook/internal/leads"
	"lead-webhook/internal/leads/compose"
	"lead-webhook/internal/leads/extract"
	"lead-webhook/internal/notify"
)

// Service runs one lead through extract, compose and deliver. It holds no
// per-request state.
type Service struct {
	config    *Config
	logger    logger.Logger
	extractor *extract.Extractor
	composer  *compose.Composer
	sender    notify.Sender
	alerter   notify.Alerter
	obs       *observability.Observability
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	s := &Service{
		config:    config,
		logger:    deps.Logger,
		extractor: deps.Extractor,
		composer:  deps.Composer,
		sender:    deps.Sender,
		alerter:   deps.Alerter,
		obs:       deps.Observability,
	}
	if s.extractor == nil {
		s.extractor = extract.Default()
	}
	if s.composer == nil {
		s.composer = compose.New(compose.Options{})
	}
	return s
}

func (s *Service) Execute(ctx context.Context, payload interface{}) (*Outcome, error) {
	fields, layout := s.extractor.Locate(payload)
	metrics.ExtractionLayout.WithLabelValues(metrics.LayoutLabel(layout)).Inc()

	record := leads.NewRecord(fields)

	s.logger.Info("Lead extracted", map[string]interface{}{
		"layout":     layout,
		"fieldCount": len(fields),
		"callerName": record.Get(leads.KeyCallerName),
	})
	if layout == "" {
		s.logger.Warn("No collected data found in payload", map[string]interface{}{
			"layouts": s.extractor.Layouts(),
		})
	}

	notification := s.composer.ComposeNow(record)

	result, err := s.deliver(ctx, notify.Message{
		From:    s.config.From,
		To:      s.config.To,
		Subject: notification.Subject,
		HTML:    notification.HTML,
		Text:    notification.Text,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Email sent successfully", map[string]interface{}{
		"provider":  result.Provider,
		"messageId": result.MessageID,
		"name":      record.Get(leads.KeyCallerName),
		"phone":     record.Get(leads.KeyPhoneNumber),
		"email":     record.Get(leads.KeyEmailAddress),
	})

	s.alert(ctx, record)

	return &Outcome{
		Layout:    layout,
		Record:    record,
		Provider:  result.Provider,
		MessageID: result.MessageID,
	}, nil
}

func (s *Service) deliver(ctx context.Context, msg notify.Message) (*notify.Result, error) {
	provider := s.sender.Name()
	ctx, span := s.obs.StartSpan(ctx, "notify.send", attribute.String("provider", provider))
	defer span.End()

	start := time.Now()
	result, err := s.sender.Send(ctx, msg)
	metrics.NotificationDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.NotificationsFailed.WithLabelValues(provider, "email").Inc()
		span.RecordError(err)
		return nil, err
	}
	return result, nil
}

// alert sends the optional SMS summary. Its failure never fails the request.
func (s *Service) alert(ctx context.Context, record leads.Record) {
	if s.alerter == nil {
		return
	}
	if err := s.alerter.Alert(ctx, Summary(record)); err != nil {
		metrics.NotificationsFailed.WithLabelValues("sns", "sms").Inc()
		s.logger.Warn("SMS alert failed", map[string]interface{}{
			"error": err,
		})
	}
}

// Summary is the one-line text used for SMS alerts.
func Summary(record leads.Record) string {
	parts := []string{
		record.Get(leads.KeyCallerName),
		record.Get(leads.KeyPhoneNumber),
		record.Get(leads.KeyReasonForCalling),
	}
	return fmt.Sprintf("New lead: %s", strings.Join(parts, " | "))
}
