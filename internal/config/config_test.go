package config_test

import (
	"testing"
	"time"

	"github.com/airmee/sdk-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AIRMEE_AUTH_JWT", "token")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Sandbox)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.OTELEnabled)
	assert.Equal(t, "airmee-sdk", cfg.ServiceName)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AIRMEE_AUTH_JWT", "token")
	t.Setenv("AIRMEE_SANDBOX", "false")
	t.Setenv("AIRMEE_PRODUCTION_ENDPOINT", "https://api.example.com")
	t.Setenv("AIRMEE_REQUEST_TIMEOUT", "5s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.False(t, cfg.Sandbox)
	assert.Equal(t, "https://api.example.com", cfg.ProductionEndpoint)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{
			"missing token",
			config.Config{},
			"AIRMEE_AUTH_JWT",
		},
		{
			"relative sandbox endpoint",
			config.Config{AuthToken: "token", SandboxEndpoint: "staging.example.com/api"},
			"AIRMEE_SANDBOX_ENDPOINT",
		},
		{
			"relative production endpoint",
			config.Config{AuthToken: "token", ProductionEndpoint: "/integration"},
			"AIRMEE_PRODUCTION_ENDPOINT",
		},
		{
			"valid",
			config.Config{AuthToken: "token", SandboxEndpoint: "https://staging.example.com/api"},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClientConfig(t *testing.T) {
	cfg := config.Config{
		Sandbox:            false,
		ProductionEndpoint: "https://api.example.com",
		AuthToken:          "token",
		RequestTimeout:     10 * time.Second,
	}

	client := cfg.ClientConfig()
	assert.False(t, client.Sandbox)
	assert.Equal(t, "https://api.example.com", client.ProductionEndpoint)
	assert.Equal(t, "token", client.AuthToken)
	assert.Equal(t, 10*time.Second, client.Timeout)
}
