// Package server wires the HTTP routes of the lead webhook service.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lead-webhook/internal/common/errors"
	commonhttp "lead-webhook/internal/common/http"
	"lead-webhook/internal/common/logger"
)

// Banner is the plain-text liveness reply on GET /.
const Banner = "Hello Movers Email Webhook is running!"

type Options struct {
	Logger logger.Logger
	// Webhook serves POST /webhook.
	Webhook http.Handler
	// Metrics overrides the /metrics handler; nil uses the default Prometheus registry.
	Metrics http.Handler
	Banner  string
}

// NewRouter builds the full handler chain: request ids, panic recovery and routes.
func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	banner := opts.Banner
	if banner == "" {
		banner = Banner
	}
	metricsHandler := opts.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}

	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(banner))
	}).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/health", statusHandler("healthy")).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/ready", statusHandler("ready")).Methods(http.MethodGet, http.MethodHead)
	r.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	if opts.Webhook != nil {
		r.Handle("/webhook", opts.Webhook).Methods(http.MethodPost)
	}

	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{log: log}),
		handlers.PrintRecoveryStack(false),
	)
	return commonhttp.RequestID(recovery(r))
}

func statusHandler(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		errors.WriteJSON(w, http.StatusOK, map[string]string{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryLogger adapts logger.Logger to gorilla's RecoveryHandlerLogger.
type recoveryLogger struct {
	log logger.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("Recovered from panic", map[string]interface{}{
		"panic": fmt.Sprint(v...),
	})
}
