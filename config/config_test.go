package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://api.example.com/v1"

func TestLoadRequiresBaseURL(t *testing.T) {
	cfg, err := Load()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RESTCLIENT_API_BASEURL", testBaseURL)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, testBaseURL, cfg.API.BaseURL)
	assert.Equal(t, "go-restclient/1.0", cfg.API.UserAgent)
	assert.Equal(t, 3, cfg.API.MaxAttempts)
	assert.Empty(t, cfg.API.RunID)

	assert.Equal(t, 3*time.Second, cfg.Timeout.Connect)
	assert.Equal(t, 8*time.Second, cfg.Timeout.Read)

	assert.Equal(t, 500*time.Millisecond, cfg.Retry.BaseDelay)
	assert.Equal(t, 4*time.Second, cfg.Retry.MaxDelay)
	assert.Equal(t, 10*time.Second, cfg.Retry.AfterCap)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
	assert.False(t, cfg.Log.Payloads.Enabled)
	assert.Equal(t, 1024, cfg.Log.Payloads.MaxBytes)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RESTCLIENT_API_BASEURL", testBaseURL)
	t.Setenv("RESTCLIENT_API_MAXATTEMPTS", "5")
	t.Setenv("RESTCLIENT_API_USERAGENT", "sync-worker/2.3")
	t.Setenv("RESTCLIENT_API_RUNID", "run-abc")
	t.Setenv("RESTCLIENT_TIMEOUT_CONNECT", "1s")
	t.Setenv("RESTCLIENT_TIMEOUT_READ", "20s")
	t.Setenv("RESTCLIENT_RETRY_BASEDELAY", "250ms")
	t.Setenv("RESTCLIENT_RETRY_MAXDELAY", "2s")
	t.Setenv("RESTCLIENT_LOG_LEVEL", "debug")
	t.Setenv("RESTCLIENT_LOG_PAYLOADS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.API.MaxAttempts)
	assert.Equal(t, "sync-worker/2.3", cfg.API.UserAgent)
	assert.Equal(t, "run-abc", cfg.API.RunID)
	assert.Equal(t, time.Second, cfg.Timeout.Connect)
	assert.Equal(t, 20*time.Second, cfg.Timeout.Read)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.BaseDelay)
	assert.Equal(t, 2*time.Second, cfg.Retry.MaxDelay)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Payloads.Enabled)
}

func TestLoadAuthCredentials(t *testing.T) {
	t.Setenv("RESTCLIENT_API_BASEURL", testBaseURL)
	t.Setenv("RESTCLIENT_AUTH_USERNAME", "client-id")
	t.Setenv("RESTCLIENT_AUTH_PASSWORD", "client-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "client-id", cfg.Auth.Username)
	assert.Equal(t, "client-secret", cfg.Auth.Password)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero max attempts", "RESTCLIENT_API_MAXATTEMPTS", "0"},
		{"relative base url", "RESTCLIENT_API_BASEURL", "not-a-url"},
		{"unknown log level", "RESTCLIENT_LOG_LEVEL", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.key != "RESTCLIENT_API_BASEURL" {
				t.Setenv("RESTCLIENT_API_BASEURL", testBaseURL)
			}
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
