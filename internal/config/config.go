// Package config provides environment-driven configuration for the service.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the service configuration, loaded from environment
// variables. A .env file is applied by the CLI before parsing.
type Config struct {
	// HTTP
	Port int `env:"PORT" envDefault:"8080"`

	// Storage
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Scoring service
	GeminiAPIKey string `env:"GEMINI_API_KEY,required"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	// Mailbox OAuth application
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID,required"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET,required"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL,required"`

	// Session cookie
	SessionSecret string `env:"SESSION_SECRET,required"`
	CookieSecure  bool   `env:"COOKIE_SECURE" envDefault:"false"`

	// Pipeline tuning
	MailboxPageSize int    `env:"MAILBOX_PAGE_SIZE" envDefault:"100"`
	PipelineFanout  int    `env:"PIPELINE_FANOUT" envDefault:"4"`
	HRRecipient     string `env:"HR_RECIPIENT"`
}

// Load parses the environment into a Config and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges that struct tags cannot express
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.MailboxPageSize <= 0 {
		return fmt.Errorf("config error: MAILBOX_PAGE_SIZE must be positive, got %d", c.MailboxPageSize)
	}
	if c.PipelineFanout <= 0 {
		return fmt.Errorf("config error: PIPELINE_FANOUT must be positive, got %d", c.PipelineFanout)
	}
	if len(c.SessionSecret) < 16 {
		return fmt.Errorf("config error: SESSION_SECRET must be at least 16 characters")
	}
	return nil
}
