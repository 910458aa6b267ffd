// Package config loads the client configuration from environment
// variables with sensible defaults, mirroring the rest of the library's
// explicit-construction style: no package-level state, callers pass the
// loaded struct where it is needed.
package config

import "time"

// Config is the root configuration. Populated by Load and immutable
// afterwards by convention.
type Config struct {
	API     APIConfig     `koanf:"api"`
	Auth    AuthConfig    `koanf:"auth"`
	Timeout TimeoutConfig `koanf:"timeout"`
	Retry   RetryConfig   `koanf:"retry"`
	Log     LogConfig     `koanf:"log"`
}

// APIConfig identifies the remote API and the calling client.
type APIConfig struct {
	BaseURL     string `koanf:"baseurl" validate:"required,url"`
	UserAgent   string `koanf:"useragent" validate:"required"`
	MaxAttempts int    `koanf:"maxattempts" validate:"min=1"`
	// RunID correlates all calls of one process run; generated by the
	// client when left empty.
	RunID string `koanf:"runid"`
}

// AuthConfig carries Basic-Auth credentials. Both fields empty disables
// credential attachment.
type AuthConfig struct {
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

// TimeoutConfig is the per-attempt connect/read timeout pair.
type TimeoutConfig struct {
	Connect time.Duration `koanf:"connect" validate:"gt=0"`
	Read    time.Duration `koanf:"read" validate:"gt=0"`
}

// RetryConfig tunes backoff pacing.
type RetryConfig struct {
	BaseDelay time.Duration `koanf:"basedelay" validate:"gt=0"`
	MaxDelay  time.Duration `koanf:"maxdelay" validate:"gt=0"`
	AfterCap  time.Duration `koanf:"aftercap" validate:"gt=0"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level    string           `koanf:"level" validate:"oneof=trace debug info warn error fatal panic"`
	Pretty   bool             `koanf:"pretty"`
	Payloads PayloadLogConfig `koanf:"payloads"`
}

// PayloadLogConfig controls debug-level body previews.
type PayloadLogConfig struct {
	Enabled  bool `koanf:"enabled"`
	MaxBytes int  `koanf:"maxbytes" validate:"min=0"`
}
