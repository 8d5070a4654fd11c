package app

import (
	"errors"
	"fmt"
	"net/url"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	CanvasPath string // hcl file or directory

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	// RelayURL enables event forwarding to a socket.io server when set.
	RelayURL       string
	RelayNamespace string

	// CheckOnly loads and validates the canvas without serving it.
	CheckOnly bool
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.CanvasPath == "" {
		return nil, errors.New("CanvasPath is a required configuration field and cannot be empty")
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("HealthcheckPort %d is out of range", cfg.HealthcheckPort)
	}
	if cfg.RelayURL != "" {
		u, err := url.Parse(cfg.RelayURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("RelayURL %q must be an absolute URL", cfg.RelayURL)
		}
		if cfg.RelayNamespace == "" {
			cfg.RelayNamespace = "/"
		}
	}
	return &cfg, nil
}
