package httpclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	nethttp "net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/gaborage/go-restclient/logger"
	"github.com/gaborage/go-restclient/trace"
)

// client implements the Client interface. It is safe for concurrent use;
// each logical call owns its attempt state and the underlying transport
// pool is shared.
type client struct {
	config    *Config
	logger    logger.Logger
	http      *nethttp.Client
	transport *nethttp.Transport
	backoff   backoff
	clock     quartz.Clock
	closeOnce sync.Once
}

// Ensure client implements the interface
var _ Client = (*client)(nil)

// Get performs a GET request
func (c *client) Get(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, nethttp.MethodGet, req)
}

// Post performs a POST request
func (c *client) Post(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, nethttp.MethodPost, req)
}

// Put performs a PUT request
func (c *client) Put(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, nethttp.MethodPut, req)
}

// Patch performs a PATCH request
func (c *client) Patch(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, nethttp.MethodPatch, req)
}

// Delete performs a DELETE request
func (c *client) Delete(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, nethttp.MethodDelete, req)
}

// Do performs one logical call, driving up to MaxAttempts physical attempts
// with backoff in between. It returns the first successful response, a
// terminal non-2xx response as a plain value, or a ClientError when every
// attempt failed at the transport level. Callers are responsible for
// interpreting non-2xx responses returned without error.
func (c *client) Do(ctx context.Context, method string, req *Request) (*Response, error) {
	if req == nil {
		req = &Request{}
	}

	target, err := c.buildURL(req)
	if err != nil {
		return nil, NewValidationError("invalid request URL: "+err.Error(), "path")
	}

	// A run ID supplied via context takes precedence over the client's own.
	runID := c.config.RunID
	if id, ok := trace.RunIDFromContext(ctx); ok {
		runID = id
	}

	var (
		lastResp *Response
		lastErr  error
	)

	for attempt := 1; ; attempt++ {
		// Fresh trace identifier per physical attempt; the idempotency
		// key, when present, stays identical across attempts.
		requestID := trace.NewID()

		resp, elapsed, sendErr := c.attempt(ctx, method, target, req, requestID, runID)

		var (
			hint    time.Duration
			hasHint bool
		)

		if sendErr != nil {
			if IsErrorType(sendErr, ValidationError) {
				return nil, sendErr
			}
			lastErr = sendErr
			c.logException(method, req.Path, attempt, elapsed, sendErr, requestID, runID)
		} else {
			lastResp = resp
			decision := Classify(resp.StatusCode, nil)
			if decision == DecisionRetryable {
				hint, hasHint = ParseRetryAfter(resp.Headers.Get(HeaderRetryAfter))
			}
			c.logAttempt(method, req.Path, resp, attempt, requestID, runID, hint)

			switch decision {
			case DecisionSuccess:
				resp.Stats.Attempts = attempt
				c.logSuccess(method, req.Path, resp, attempt, requestID, runID)
				return resp, nil
			case DecisionNonRetryable:
				resp.Stats.Attempts = attempt
				return resp, nil
			}
		}

		if attempt >= c.config.MaxAttempts {
			// Budget spent. A retryable response is handed back as-is so
			// the caller can inspect the final status; only a call that
			// never produced a response fails with an error.
			if lastResp != nil {
				lastResp.Stats.Attempts = attempt
				return lastResp, nil
			}
			return nil, c.transportError(lastErr)
		}

		delay := c.backoff.Delay(attempt)
		if hasHint {
			delay = hint
			if delay > c.config.RetryAfterCap {
				delay = c.config.RetryAfterCap
			}
		}

		c.logRetry(method, req.Path, delay, attempt, runID)

		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

// Close releases the underlying transport resources. Safe to call more
// than once and from concurrent goroutines; teardown runs exactly once.
func (c *client) Close() {
	c.closeOnce.Do(func() {
		c.transport.CloseIdleConnections()
	})
}

// attempt performs one physical send/receive cycle under the configured
// read deadline, returning the parsed response and the wall-clock duration
// of the exchange.
func (c *client) attempt(ctx context.Context, method, target string, req *Request, requestID, runID string) (*Response, time.Duration, error) {
	attemptCtx := ctx
	cancel := func() {}
	if c.config.ReadTimeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, c.config.ReadTimeout)
	}
	defer cancel()

	httpReq, err := c.newRequest(attemptCtx, method, target, req, requestID, runID)
	if err != nil {
		return nil, 0, NewValidationError("build request: "+err.Error(), "")
	}

	start := c.clock.Now()
	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, c.clock.Since(start), err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	elapsed := c.clock.Since(start)
	if err != nil {
		return nil, elapsed, err
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
		Stats:      Stats{ElapsedTime: elapsed},
	}, elapsed, nil
}

// newRequest builds the outgoing request for one attempt. Identity and
// correlation headers are set first so caller-supplied headers win on
// collision.
func (c *client) newRequest(ctx context.Context, method, target string, req *Request, requestID, runID string) (*nethttp.Request, error) {
	var body io.Reader = nethttp.NoBody
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(HeaderXRequestID, requestID)
	httpReq.Header.Set(HeaderXRunID, runID)
	if len(req.Body) > 0 {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.IdempotencyKey != "" {
		httpReq.Header.Set(HeaderIdempotencyKey, req.IdempotencyKey)
	}

	for key, value := range c.config.DefaultHeaders {
		httpReq.Header.Set(key, value)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.config.BasicAuth != nil {
		httpReq.SetBasicAuth(c.config.BasicAuth.Username, c.config.BasicAuth.Password)
	}

	return httpReq, nil
}

// buildURL resolves the request path and query against the base URL.
func (c *client) buildURL(req *Request) (string, error) {
	base := strings.TrimRight(c.config.BaseURL, "/")
	path := req.Path
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	u, err := url.Parse(base + path)
	if err != nil {
		return "", err
	}
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	return u.String(), nil
}

// sleep pauses between attempts, honoring context cancellation.
func (c *client) sleep(ctx context.Context, d time.Duration) error {
	timer := c.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// transportError wraps the last transport-level failure of an exhausted
// call in the matching ClientError type.
func (c *client) transportError(err error) ClientError {
	if isTimeout(err) {
		return NewTimeoutError("attempts exhausted without response", c.config.ReadTimeout, err)
	}
	return NewNetworkError("attempts exhausted without response", err)
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
