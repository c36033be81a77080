package leadintake

import (
	"fmt"

	"lead-webhook/internal/common/config"
)

type Config struct {
	From         string
	To           string
	MaxBodyBytes int64
}

// DefaultMaxBodyBytes bounds the webhook body read into memory.
const DefaultMaxBodyBytes = 1 << 20

func DefaultConfig() *Config {
	return &Config{
		From:         "Hello Movers <onboarding@resend.dev>",
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// FromAppConfig takes the fixed sender and recipient from the loaded configuration.
func FromAppConfig(cfg *config.Config) *Config {
	c := DefaultConfig()
	c.From = cfg.Mail.From
	c.To = cfg.Mail.To
	return c
}

func (c *Config) Validate() error {
	if c.From == "" {
		return fmt.Errorf("from address is required")
	}
	if c.To == "" {
		return fmt.Errorf("to address is required")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive")
	}
	return nil
}
