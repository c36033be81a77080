// cmd/lead-webhook/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"lead-webhook/internal/common/aws"
	"lead-webhook/internal/common/config"
	commonhttp "lead-webhook/internal/common/http"
	"lead-webhook/internal/common/logger"
	"lead-webhook/internal/common/observability"
	"lead-webhook/internal/leads/compose"
	"lead-webhook/internal/leads/extract"
	"lead-webhook/internal/notify"
	"lead-webhook/internal/server"
	leadintake "lead-webhook/internal/webhooks/lead-intake"
)

const serviceName = "lead-webhook"

func main() {
	bootLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}
	_ = bootLog.Sync()

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{"service": serviceName})

	obs := observability.New(serviceName)
	defer obs.Shutdown(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	webhook, err := buildWebhook(ctx, cfg, log, obs)
	if err != nil {
		zapLog.Fatal("lead intake setup failed", zap.Error(err))
	}

	router := server.NewRouter(server.Options{
		Logger:  log,
		Webhook: webhook,
	})

	srv := server.New(cfg.Server.Addr(), router, config.GetDuration(cfg.Server.ShutdownTimeout), log)
	if err := srv.Run(ctx); err != nil {
		zapLog.Error("Server error", zap.Error(err))
		return
	}

	zapLog.Info("Lead webhook stopped gracefully")
}

func buildWebhook(ctx context.Context, cfg *config.Config, log logger.Logger, obs *observability.Observability) (*leadintake.Handler, error) {
	extractor, err := extract.NewExtractor(cfg.Extraction.Layouts...)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Mail.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	composer := compose.New(compose.Options{
		BusinessName: cfg.Mail.BusinessName,
		Location:     loc,
		ZoneLabel:    cfg.Mail.TimeZoneLabel,
	})

	deps := leadintake.ServiceDependencies{
		Logger:        log,
		Extractor:     extractor,
		Composer:      composer,
		Observability: obs,
	}

	needAWS := cfg.Mail.Provider == config.ProviderSES || cfg.Integrations.AWS.SNS.Enabled
	var awsCfg aws.Config
	if needAWS {
		awsCfg, err = aws.LoadConfig(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			return nil, err
		}
	}

	switch cfg.Mail.Provider {
	case config.ProviderSES:
		deps.Sender = notify.NewSESSender(aws.NewSESClient(awsCfg), log)
	default:
		httpClient := commonhttp.NewClient(config.GetDuration(cfg.Mail.Timeout), serviceName)
		deps.Sender = notify.NewResendSender(cfg.Mail.ResendAPIKey, httpClient.Standard(), log)
	}

	if cfg.Integrations.AWS.SNS.Enabled {
		deps.Alerter = notify.NewSMSAlerter(aws.NewSNSClient(awsCfg), cfg.Integrations.AWS.SNS.PhoneNumber)
	}

	log.Info("Lead intake configured", map[string]interface{}{
		"provider": deps.Sender.Name(),
		"layouts":  extractor.Layouts(),
		"smsAlert": deps.Alerter != nil,
	})

	return leadintake.NewHandler(leadintake.FromAppConfig(cfg), deps)
}
