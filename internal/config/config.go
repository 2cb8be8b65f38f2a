// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables once at startup
// and are read-only afterwards, so a single instance is safely shared
// by every in-flight request.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppHost string `env:"APP_HOST" envDefault:"0.0.0.0"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// GitHub upstream.
	// The token is optional: without it, outbound calls are unauthenticated
	// and subject to GitHub's lower anonymous rate limit.
	GitHubToken   string        `env:"GITHUB_TOKEN"`
	GitHubAPIURL  string        `env:"GITHUB_API_URL" envDefault:"https://api.github.com"`
	GitHubTimeout time.Duration `env:"GITHUB_TIMEOUT" envDefault:"10s"`

	// Alert enrichment. Forwarding is disabled unless ALERTMANAGER_URL
	// is set; the ITSM labels are stamped onto every alert regardless.
	AlertmanagerURL     string        `env:"ALERTMANAGER_URL"`
	AlertmanagerTimeout time.Duration `env:"ALERTMANAGER_TIMEOUT" envDefault:"5s"`
	HostEnvironment     string        `env:"HOST_ENVIRONMENT" envDefault:"development"`
	ITSMAppID           string        `env:"ITSM_APP_ID" envDefault:"APPD-123456"`
	ITSMContractID      string        `env:"ITSM_CONTRACT_ID" envDefault:"10APP123456789"`
	ITSMEventID         string        `env:"ITSM_EVENT_ID"`
	ClusterName         string        `env:"CLUSTER_NAME" envDefault:"unknown-cluster"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts. WriteTimeout must exceed GitHubTimeout or the
	// inbound connection gets cut off while the upstream call is still
	// within its own budget.
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://example.com,https://app.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.AppHost, c.AppPort)
}

// HasToken reports whether an upstream bearer token is configured.
func (c *Config) HasToken() bool {
	return c.GitHubToken != ""
}

// ForwardingEnabled reports whether enriched alerts are forwarded to an
// Alertmanager endpoint.
func (c *Config) ForwardingEnabled() bool {
	return c.AlertmanagerURL != ""
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Load parses environment variables and returns a Config.
// Returns an error if any variable fails to parse.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
