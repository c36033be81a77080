package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, names := range envBindings {
		for _, name := range names {
			t.Setenv(name, "")
		}
	}
}

func TestLoadFromFile_Defaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
mail:
  resend_api_key: re_test
  to: owner@example.com
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, ":3000", cfg.Server.Addr())
	assert.Equal(t, ProviderResend, cfg.Mail.Provider)
	assert.Equal(t, "Hello Movers <onboarding@resend.dev>", cfg.Mail.From)
	assert.Equal(t, "Hello Movers", cfg.Mail.BusinessName)
	assert.Equal(t, "America/New_York", cfg.Mail.TimeZone)
	assert.Equal(t, "Eastern Time", cfg.Mail.TimeZoneLabel)
	assert.Equal(t, 30*time.Second, GetDuration(cfg.Mail.Timeout))
	assert.Equal(t, "us-east-1", cfg.Integrations.AWS.Region)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Empty(t, cfg.Extraction.Layouts)
}

func TestLoadFromFile_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("RESEND_API_KEY", "re_from_env")
	t.Setenv("MAIL_TO", "dispatch@example.com")
	t.Setenv("LEAD_SENDER", "Leads <leads@example.com>")

	path := writeConfig(t, `
mail:
  from: ${LEAD_SENDER}
extraction:
  layouts:
    - analysis.data_collection
    - data_collection
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "re_from_env", cfg.Mail.ResendAPIKey)
	assert.Equal(t, "dispatch@example.com", cfg.Mail.To)
	assert.Equal(t, "Leads <leads@example.com>", cfg.Mail.From)
	assert.Equal(t, []string{"analysis.data_collection", "data_collection"}, cfg.Extraction.Layouts)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{
			name:   "missing resend key",
			body:   "mail:\n  to: owner@example.com\n",
			errMsg: "mail.resend_api_key is required",
		},
		{
			name:   "missing recipient",
			body:   "mail:\n  resend_api_key: re_test\n",
			errMsg: "mail.to is required",
		},
		{
			name:   "recipient without at sign",
			body:   "mail:\n  resend_api_key: re_test\n  to: owner.example.com\n",
			errMsg: "mail.to \"owner.example.com\" is not an email address",
		},
		{
			name:   "sender without at sign",
			body:   "mail:\n  resend_api_key: re_test\n  to: owner@example.com\n  from: Hello Movers\n",
			errMsg: "mail.from \"Hello Movers\" is not an email address",
		},
		{
			name:   "unknown provider",
			body:   "mail:\n  provider: carrier-pigeon\n  to: owner@example.com\n",
			errMsg: "mail.provider must be one of",
		},
		{
			name:   "port out of range",
			body:   "server:\n  port: 70000\nmail:\n  resend_api_key: re_test\n  to: owner@example.com\n",
			errMsg: "server.port must be between 1 and 65535",
		},
		{
			name:   "bad timezone",
			body:   "mail:\n  resend_api_key: re_test\n  to: owner@example.com\n  timezone: Mars/Olympus\n",
			errMsg: "mail.timezone",
		},
		{
			name:   "sns without phone",
			body:   "mail:\n  resend_api_key: re_test\n  to: owner@example.com\nintegrations:\n  aws:\n    sns:\n      enabled: true\n",
			errMsg: "integrations.aws.sns.phone_number is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			cfg, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFromFile_SESProviderNeedsNoAPIKey(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
mail:
  provider: SES
  from: leads@example.com
  to: owner@example.com
integrations:
  aws:
    region: eu-west-1
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderSES, cfg.Mail.Provider)
	assert.Equal(t, "eu-west-1", cfg.Integrations.AWS.Region)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
