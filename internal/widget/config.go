// Package widget implements the polling display client.
package widget

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"uptimebar/internal/domain"
	"uptimebar/internal/settings"
)

type Config struct {
	ServerURL             string `yaml:"server_url" validate:"required,url"`
	APIToken              string `yaml:"api_token" validate:"required"`
	PollIntervalSeconds   int    `yaml:"poll_interval_seconds"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

var validate = validator.New()

// LoadConfig reads and validates the widget configuration file. The local
// poll interval is optional; when set it is clamped into the same range the
// server enforces.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.PollIntervalSeconds != 0 {
		cfg.PollIntervalSeconds = settings.ClampValue(cfg.PollIntervalSeconds,
			domain.MinPollIntervalSeconds, domain.MaxPollIntervalSeconds, domain.DefaultPollIntervalSeconds)
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		cfg.RequestTimeoutSeconds = 10
	}

	return &cfg, nil
}

// WriteDefaultConfig creates a starter config file for the operator to fill
// in. Fails if the file already exists.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}

	cfg := Config{
		ServerURL:             "http://localhost:5000",
		APIToken:              "",
		PollIntervalSeconds:   domain.DefaultPollIntervalSeconds,
		RequestTimeoutSeconds: 10,
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
