// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct. It is built once at
// startup and passed explicitly to the components that need it.
type Config struct {
	App          AppConfig         `mapstructure:"app"`
	Server       ServerConfig      `mapstructure:"server"`
	Mail         MailConfig        `mapstructure:"mail"`
	Integrations IntegrationConfig `mapstructure:"integrations"`
	Extraction   ExtractionConfig  `mapstructure:"extraction"`
	Logging      LoggingConfig     `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Mail providers
const (
	ProviderResend = "resend"
	ProviderSES    = "ses"
)

// MailConfig describes the fixed sender/recipient pair and the delivery provider.
type MailConfig struct {
	Provider      string `mapstructure:"provider"`
	ResendAPIKey  string `mapstructure:"resend_api_key"`
	From          string `mapstructure:"from"`
	To            string `mapstructure:"to"`
	BusinessName  string `mapstructure:"business_name"`
	TimeZone      string `mapstructure:"timezone"`
	TimeZoneLabel string `mapstructure:"timezone_label"`
	Timeout       int    `mapstructure:"timeout"` // milliseconds
}

// IntegrationConfig holds settings for AWS-backed delivery channels.
type IntegrationConfig struct {
	AWS struct {
		Region string `mapstructure:"region"`
		SNS    struct {
			Enabled     bool   `mapstructure:"enabled"`
			PhoneNumber string `mapstructure:"phone_number"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`
}

// ExtractionConfig selects which payload layouts are searched, by name.
// An empty list means every known layout in priority order.
type ExtractionConfig struct {
	Layouts []string `mapstructure:"layouts"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
