package leadintake

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"lead-webhook/internal/common/errors"
	commonhttp "lead-webhook/internal/common/http"
	"lead-webhook/internal/common/logger"
	"lead-webhook/internal/common/metrics"
	"lead-webhook/internal/common/observability"
)

const (
	Route          = "/webhook"
	SuccessMessage = "Email sent"
)

type Handler struct {
	config  *Config
	service *Service
	logger  logger.Logger
	obs     *observability.Observability
}

func NewHandler(config *Config, deps ServiceDependencies) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lead intake config: %w", err)
	}
	if deps.Sender == nil {
		return nil, fmt.Errorf("lead intake needs a notification sender")
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNoOpLogger()
	}

	log := deps.Logger.WithFields(map[string]interface{}{"route": Route})
	deps.Logger = log

	return &Handler{
		config:  config,
		service: NewService(deps, config),
		logger:  log,
		obs:     deps.Observability,
	}, nil
}

// ServeHTTP handles POST /webhook: decode, run the lead through the service and
// report the result. Every failure is answered with 500.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	metrics.WebhooksActive.Inc()
	defer metrics.WebhooksActive.Dec()

	requestID := commonhttp.RequestIDFromContext(r.Context())
	ctx, span := h.obs.StartSpan(r.Context(), "webhook.lead", attribute.String("request.id", requestID))
	defer span.End()

	log := h.logger.WithFields(map[string]interface{}{
		"requestId": requestID,
		"traceId":   observability.TraceID(ctx),
	})
	log.Info("Webhook received", map[string]interface{}{
		"contentLength": r.ContentLength,
	})

	status := "success"
	defer func() {
		h.obs.RecordRequest(ctx, status, time.Since(start))
		metrics.WebhooksReceived.WithLabelValues(status).Inc()
	}()

	payload, err := h.decode(w, r)
	if err == nil {
		_, err = h.service.Execute(ctx, payload)
	}
	if err != nil {
		status = "failure"
		span.RecordError(err)
		stdErr := errors.NewErrorHandler(log).HandleRequestError(w, r, err)
		metrics.WebhookErrors.WithLabelValues(string(stdErr.Code)).Inc()
		return
	}

	errors.WriteJSON(w, http.StatusOK, Output{Success: true, Message: SuccessMessage})
}

// decode reads the body as a single JSON value, keeping numbers exact. An
// empty body decodes to an empty object.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (interface{}, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.config.MaxBodyBytes))
	if err != nil {
		return nil, errors.NewInvalidPayloadError(err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]interface{}{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload interface{}
	if err := dec.Decode(&payload); err != nil {
		return nil, errors.NewInvalidPayloadError(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.NewInvalidPayloadError(fmt.Errorf("unexpected data after JSON value"))
	}
	return payload, nil
}
