// Package httpclient implements a resilient REST client for outbound API
// calls. One logical call may be realized as multiple physical attempts:
// transient failures are retried with capped, jittered exponential backoff,
// honoring server-supplied Retry-After pacing hints, and every attempt is
// reported through an injected structured logger.
package httpclient

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/url"
	"time"

	"github.com/gaborage/go-restclient/trace"
)

const (
	// HeaderXRequestID is the header carrying the per-attempt request ID
	HeaderXRequestID = trace.HeaderXRequestID
	// HeaderXRunID is the header carrying the stable run identifier
	HeaderXRunID = trace.HeaderXRunID
	// HeaderIdempotencyKey lets the remote service deduplicate retried writes
	HeaderIdempotencyKey = "Idempotency-Key"
	// HeaderRetryAfter is the response header carrying a pacing hint
	HeaderRetryAfter = "Retry-After"
)

// Client defines the REST client interface for making HTTP requests
type Client interface {
	Get(ctx context.Context, req *Request) (*Response, error)
	Post(ctx context.Context, req *Request) (*Response, error)
	Put(ctx context.Context, req *Request) (*Response, error)
	Patch(ctx context.Context, req *Request) (*Response, error)
	Delete(ctx context.Context, req *Request) (*Response, error)
	Do(ctx context.Context, method string, req *Request) (*Response, error)
	Close()
}

// Request describes one logical call. It is read-only for the duration of
// the call; the client never mutates it.
type Request struct {
	// Path is resolved against the client's base URL.
	Path string
	// Query parameters appended to the URL.
	Query url.Values
	// Headers are merged over the client's defaults; caller values win.
	Headers map[string]string
	// Body is sent verbatim on every attempt.
	Body []byte
	// IdempotencyKey, when set, is attached unchanged to every physical
	// attempt so the remote service can deduplicate retried writes.
	IdempotencyKey string
}

// Response represents an HTTP response with tracking information
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
	Stats      Stats
}

// JSON unmarshals the response body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Stats contains request execution statistics
type Stats struct {
	// ElapsedTime is the wall-clock duration of the final attempt.
	ElapsedTime time.Duration
	// Attempts is the number of physical attempts performed.
	Attempts int
}

// BasicAuth contains basic authentication credentials
type BasicAuth struct {
	Username string
	Password string
}

// Config holds the REST client configuration. It is immutable after Build.
type Config struct {
	// BaseURL is the address all request paths are resolved against.
	BaseURL string
	// UserAgent identifies this client on every outgoing request.
	UserAgent string
	// MaxAttempts bounds the physical attempts per logical call (>= 1).
	MaxAttempts int
	// ConnectTimeout bounds connection establishment per attempt.
	ConnectTimeout time.Duration
	// ReadTimeout bounds the full request/response exchange per attempt.
	ReadTimeout time.Duration
	// RetryBaseDelay seeds the exponential backoff curve.
	RetryBaseDelay time.Duration
	// RetryMaxDelay caps the exponential backoff curve.
	RetryMaxDelay time.Duration
	// RetryAfterCap bounds server-supplied Retry-After hints.
	RetryAfterCap time.Duration
	// RunID correlates all calls of one client instance; generated at
	// Build when empty.
	RunID string
	// BasicAuth credentials attached to every request when set.
	BasicAuth *BasicAuth
	// DefaultHeaders are sent on every request unless overridden.
	DefaultHeaders map[string]string
	// LogPayloads enables debug-level logging of response body payloads
	LogPayloads bool
	// MaxPayloadLogBytes caps the number of body bytes logged when LogPayloads is enabled
	MaxPayloadLogBytes int
}
