package httpclient

import (
	"maps"
	"net"
	nethttp "net/http"
	"net/url"
	"time"

	"github.com/coder/quartz"

	"github.com/gaborage/go-restclient/config"
	"github.com/gaborage/go-restclient/logger"
	"github.com/gaborage/go-restclient/trace"
)

const (
	defaultUserAgent      = "go-restclient/1.0"
	defaultMaxAttempts    = 3
	defaultConnectTimeout = 3 * time.Second
	defaultReadTimeout    = 8 * time.Second
)

// Builder assembles a Client with a fluent API.
type Builder struct {
	config *Config
	logger logger.Logger
	clock  quartz.Clock
}

// NewBuilder creates a client builder with production defaults.
func NewBuilder(log logger.Logger) *Builder {
	return &Builder{
		logger: log,
		clock:  quartz.NewReal(),
		config: &Config{
			UserAgent:          defaultUserAgent,
			MaxAttempts:        defaultMaxAttempts,
			ConnectTimeout:     defaultConnectTimeout,
			ReadTimeout:        defaultReadTimeout,
			RetryBaseDelay:     defaultRetryBaseDelay,
			RetryMaxDelay:      defaultRetryMaxDelay,
			RetryAfterCap:      defaultRetryAfterCap,
			MaxPayloadLogBytes: defaultMaxPayloadLogBytes,
		},
	}
}

// WithBaseURL sets the address request paths are resolved against.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.BaseURL = baseURL
	return b
}

// WithUserAgent sets the User-Agent header value.
func (b *Builder) WithUserAgent(userAgent string) *Builder {
	b.config.UserAgent = userAgent
	return b
}

// WithMaxAttempts bounds the physical attempts per logical call. Values
// below 1 are clamped to 1 at Build.
func (b *Builder) WithMaxAttempts(maxAttempts int) *Builder {
	b.config.MaxAttempts = maxAttempts
	return b
}

// WithTimeouts sets the per-attempt connect and read timeouts.
func (b *Builder) WithTimeouts(connect, read time.Duration) *Builder {
	b.config.ConnectTimeout = connect
	b.config.ReadTimeout = read
	return b
}

// WithRetryBackoff sets the exponential backoff base and cap.
func (b *Builder) WithRetryBackoff(base, maxDelay time.Duration) *Builder {
	b.config.RetryBaseDelay = base
	b.config.RetryMaxDelay = maxDelay
	return b
}

// WithRetryAfterCap bounds server-supplied Retry-After hints.
func (b *Builder) WithRetryAfterCap(d time.Duration) *Builder {
	b.config.RetryAfterCap = d
	return b
}

// WithRunID pins the run identifier instead of generating one at Build.
func (b *Builder) WithRunID(runID string) *Builder {
	b.config.RunID = runID
	return b
}

// WithBasicAuth attaches credentials to every outgoing request.
func (b *Builder) WithBasicAuth(username, password string) *Builder {
	b.config.BasicAuth = &BasicAuth{Username: username, Password: password}
	return b
}

// WithDefaultHeader adds a header sent on every request unless overridden
// by the caller.
func (b *Builder) WithDefaultHeader(key, value string) *Builder {
	if b.config.DefaultHeaders == nil {
		b.config.DefaultHeaders = make(map[string]string)
	}
	b.config.DefaultHeaders[key] = value
	return b
}

// WithPayloadLogging enables debug-level body previews capped at maxBytes.
func (b *Builder) WithPayloadLogging(maxBytes int) *Builder {
	b.config.LogPayloads = true
	if maxBytes > 0 {
		b.config.MaxPayloadLogBytes = maxBytes
	}
	return b
}

// WithClock overrides the clock used for elapsed measurement and retry
// pauses. Tests inject a mock here.
func (b *Builder) WithClock(clock quartz.Clock) *Builder {
	b.clock = clock
	return b
}

// Build validates the configuration and constructs the client. The
// transport is created once here and shared by all calls.
func (b *Builder) Build() (Client, error) {
	cfg := *b.config
	cfg.DefaultHeaders = maps.Clone(b.config.DefaultHeaders)

	if cfg.BaseURL == "" {
		return nil, NewValidationError("base URL is required", "base_url")
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, NewValidationError("base URL must be absolute", "base_url")
	}

	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = defaultRetryBaseDelay
	}
	if cfg.RetryMaxDelay < cfg.RetryBaseDelay {
		cfg.RetryMaxDelay = defaultRetryMaxDelay
	}
	if cfg.RetryAfterCap <= 0 {
		cfg.RetryAfterCap = defaultRetryAfterCap
	}
	if cfg.RunID == "" {
		cfg.RunID = trace.NewID()
	}

	transport := &nethttp.Transport{
		DialContext:         (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext,
		TLSHandshakeTimeout: cfg.ConnectTimeout,
	}

	return &client{
		config:    &cfg,
		logger:    b.logger,
		transport: transport,
		http:      &nethttp.Client{Transport: transport},
		backoff:   backoff{base: cfg.RetryBaseDelay, max: cfg.RetryMaxDelay},
		clock:     b.clock,
	}, nil
}

// NewFromConfig builds a client from an environment-driven configuration.
func NewFromConfig(cfg *config.Config, log logger.Logger) (Client, error) {
	b := NewBuilder(log).
		WithBaseURL(cfg.API.BaseURL).
		WithMaxAttempts(cfg.API.MaxAttempts).
		WithTimeouts(cfg.Timeout.Connect, cfg.Timeout.Read).
		WithRetryBackoff(cfg.Retry.BaseDelay, cfg.Retry.MaxDelay).
		WithRetryAfterCap(cfg.Retry.AfterCap)

	if cfg.API.UserAgent != "" {
		b.WithUserAgent(cfg.API.UserAgent)
	}
	if cfg.API.RunID != "" {
		b.WithRunID(cfg.API.RunID)
	}
	if cfg.Auth.Username != "" {
		b.WithBasicAuth(cfg.Auth.Username, cfg.Auth.Password)
	}
	if cfg.Log.Payloads.Enabled {
		b.WithPayloadLogging(cfg.Log.Payloads.MaxBytes)
	}

	return b.Build()
}
