package httpclient

import (
	"time"

	"github.com/gaborage/go-restclient/logger"
	"github.com/gaborage/go-restclient/trace"
)

// Event names. Every physical attempt produces exactly one attempt or
// exception event; retry and success events bracket the decision points.
const (
	eventAttempt   = "http-attempt"
	eventSuccess   = "http-success"
	eventException = "http-exception"
	eventRetry     = "http-retry"
)

const defaultMaxPayloadLogBytes = 1024

// logAttempt reports one completed physical attempt. Successful attempts
// log at info, everything else at warn.
func (c *client) logAttempt(method, endpoint string, resp *Response, attempt int, requestID, runID string, retryAfter time.Duration) {
	var event logger.LogEvent
	if IsSuccessStatus(resp.StatusCode) {
		event = c.logger.Info()
	} else {
		event = c.logger.Warn()
	}

	event = event.
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Int("attempt", attempt).
		Int("max_attempts", c.config.MaxAttempts).
		Int64("duration_ms", resp.Stats.ElapsedTime.Milliseconds()).
		Str("request_id", requestID).
		Str("run_id", runID).
		Int64("retry_after_ms", retryAfter.Milliseconds())

	if len(resp.Body) > 0 {
		event = event.Int("result_size_bytes", len(resp.Body))
	}
	if upstream := trace.ResponseID(resp.Headers); upstream != "" {
		event = event.Str("upstream_request_id", upstream)
	}

	event.Msg(eventAttempt)

	c.logPayload(resp, requestID)
}

// logPayload emits a debug-level body preview when payload logging is on.
func (c *client) logPayload(resp *Response, requestID string) {
	if !c.config.LogPayloads || len(resp.Body) == 0 {
		return
	}

	maxBytes := c.config.MaxPayloadLogBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxPayloadLogBytes
	}

	preview := resp.Body
	truncated := "false"
	if len(preview) > maxBytes {
		preview = preview[:maxBytes]
		truncated = "true"
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Interface("headers", resp.Headers).
		Int("body_size", len(resp.Body)).
		Str("body_truncated", truncated).
		Bytes("body_preview", preview).
		Msg(eventAttempt)
}

// logSuccess reports the terminal success of a logical call.
func (c *client) logSuccess(method, endpoint string, resp *Response, attempts int, requestID, runID string) {
	c.logger.Info().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Int("attempts", attempts).
		Int64("duration_ms", resp.Stats.ElapsedTime.Milliseconds()).
		Str("request_id", requestID).
		Str("run_id", runID).
		Msg(eventSuccess)
}

// logException reports a physical attempt that produced no response.
func (c *client) logException(method, endpoint string, attempt int, elapsed time.Duration, err error, requestID, runID string) {
	c.logger.Warn().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("attempt", attempt).
		Int("max_attempts", c.config.MaxAttempts).
		Int64("duration_ms", elapsed.Milliseconds()).
		Str("error", errorKind(err)).
		Err(err).
		Str("request_id", requestID).
		Str("run_id", runID).
		Msg(eventException)
}

// logRetry reports the decision to retry and the pause before the next
// attempt.
func (c *client) logRetry(method, endpoint string, delay time.Duration, attempt int, runID string) {
	c.logger.Warn().
		Str("method", method).
		Str("endpoint", endpoint).
		Int64("next_delay_ms", delay.Milliseconds()).
		Int("attempt", attempt).
		Int("max_attempts", c.config.MaxAttempts).
		Str("run_id", runID).
		Msg(eventRetry)
}

// errorKind maps a transport error to the coarse kind reported in events.
func errorKind(err error) string {
	if isTimeout(err) {
		return "timeout"
	}
	return "network"
}
