package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/airmee/sdk-go/airmee"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the CLI needs, resolved from environment
// variables. The SDK core consumes only the ClientConfig projection.
type Config struct {
	// API
	Sandbox            bool          `envconfig:"AIRMEE_SANDBOX" default:"true"`
	SandboxEndpoint    string        `envconfig:"AIRMEE_SANDBOX_ENDPOINT"`
	ProductionEndpoint string        `envconfig:"AIRMEE_PRODUCTION_ENDPOINT"`
	AuthToken          string        `envconfig:"AIRMEE_AUTH_JWT"`
	RequestTimeout     time.Duration `envconfig:"AIRMEE_REQUEST_TIMEOUT" default:"30s"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"airmee-sdk"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the fields the API calls depend on.
func (c *Config) Validate() error {
	if c.AuthToken == "" {
		return fmt.Errorf("AIRMEE_AUTH_JWT must be set")
	}
	for name, endpoint := range map[string]string{
		"AIRMEE_SANDBOX_ENDPOINT":    c.SandboxEndpoint,
		"AIRMEE_PRODUCTION_ENDPOINT": c.ProductionEndpoint,
	} {
		if endpoint == "" {
			continue
		}
		u, err := url.Parse(endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, endpoint)
		}
	}
	return nil
}

// ClientConfig projects the resolved values into the SDK's configuration
// record.
func (c *Config) ClientConfig() airmee.Config {
	return airmee.Config{
		Sandbox:            c.Sandbox,
		SandboxEndpoint:    c.SandboxEndpoint,
		ProductionEndpoint: c.ProductionEndpoint,
		AuthToken:          c.AuthToken,
		Timeout:            c.RequestTimeout,
	}
}
