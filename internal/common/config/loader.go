// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables the deployment sets.
// The first name wins when several are present.
var envBindings = map[string][]string{
	"server.port":                       {"PORT", "SERVER_PORT"},
	"mail.provider":                     {"MAIL_PROVIDER"},
	"mail.resend_api_key":               {"RESEND_API_KEY", "MAIL_RESEND_API_KEY"},
	"mail.from":                         {"MAIL_FROM", "FROM_EMAIL"},
	"mail.to":                           {"MAIL_TO", "TO_EMAIL"},
	"mail.business_name":                {"MAIL_BUSINESS_NAME"},
	"mail.timezone":                     {"MAIL_TIMEZONE"},
	"integrations.aws.region":           {"AWS_REGION"},
	"integrations.aws.sns.enabled":      {"SNS_ENABLED"},
	"integrations.aws.sns.phone_number": {"SNS_PHONE_NUMBER"},
	"logging.level":                     {"LOGGING_LEVEL", "LOG_LEVEL"},
	"logging.format":                    {"LOGGING_FORMAT", "LOG_FORMAT"},
}

// Load reads configs/config.yaml (optional), the APP_ENVIRONMENT overlay and the
// process environment, in that order of increasing precedence.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	return build(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return build(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, names := range envBindings {
		args := append([]string{key}, names...)
		_ = v.BindEnv(args...)
	}
	return v
}

func build(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders left in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			if expanded := os.ExpandEnv(strVal); expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "lead-webhook"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	if cfg.Mail.Provider == "" {
		cfg.Mail.Provider = ProviderResend
	}
	cfg.Mail.Provider = strings.ToLower(cfg.Mail.Provider)
	if cfg.Mail.From == "" {
		cfg.Mail.From = "Hello Movers <onboarding@resend.dev>"
	}
	if cfg.Mail.BusinessName == "" {
		cfg.Mail.BusinessName = "Hello Movers"
	}
	if cfg.Mail.TimeZone == "" {
		cfg.Mail.TimeZone = "America/New_York"
	}
	if cfg.Mail.TimeZoneLabel == "" {
		cfg.Mail.TimeZoneLabel = "Eastern Time"
	}
	if cfg.Mail.Timeout == 0 {
		cfg.Mail.Timeout = 30000
	}

	if cfg.Integrations.AWS.Region == "" {
		cfg.Integrations.AWS.Region = "us-east-1"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	switch cfg.Mail.Provider {
	case ProviderResend:
		if cfg.Mail.ResendAPIKey == "" {
			return fmt.Errorf("mail.resend_api_key is required for the resend provider")
		}
	case ProviderSES:
		if cfg.Integrations.AWS.Region == "" {
			return fmt.Errorf("integrations.aws.region is required for the ses provider")
		}
	default:
		return fmt.Errorf("mail.provider must be one of %q, %q", ProviderResend, ProviderSES)
	}

	if cfg.Mail.To == "" {
		return fmt.Errorf("mail.to is required")
	}
	if cfg.Mail.From == "" {
		return fmt.Errorf("mail.from is required")
	}
	if !strings.Contains(cfg.Mail.To, "@") {
		return fmt.Errorf("mail.to %q is not an email address", cfg.Mail.To)
	}
	if !strings.Contains(cfg.Mail.From, "@") {
		return fmt.Errorf("mail.from %q is not an email address", cfg.Mail.From)
	}
	if cfg.Mail.Timeout < 0 {
		return fmt.Errorf("mail.timeout must not be negative")
	}
	if _, err := time.LoadLocation(cfg.Mail.TimeZone); err != nil {
		return fmt.Errorf("mail.timezone %q: %w", cfg.Mail.TimeZone, err)
	}

	if cfg.Integrations.AWS.SNS.Enabled && cfg.Integrations.AWS.SNS.PhoneNumber == "" {
		return fmt.Errorf("integrations.aws.sns.phone_number is required when sns is enabled")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
