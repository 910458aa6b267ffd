package httpclient

// Decision is the outcome of classifying one physical attempt.
type Decision int

const (
	// DecisionSuccess indicates a 2xx response.
	DecisionSuccess Decision = iota
	// DecisionRetryable indicates a transient failure worth repeating.
	DecisionRetryable
	// DecisionNonRetryable indicates a terminal failure; repeating the
	// identical request cannot succeed.
	DecisionNonRetryable
)

// String returns the decision name for logging.
func (d Decision) String() string {
	switch d {
	case DecisionSuccess:
		return "success"
	case DecisionRetryable:
		return "retryable"
	case DecisionNonRetryable:
		return "non_retryable"
	default:
		return "unknown"
	}
}

// retryableStatuses are rate limiting or transient upstream unavailability.
var retryableStatuses = map[int]struct{}{
	429: {},
	502: {},
	503: {},
	504: {},
}

// nonRetryableStatuses indicate a malformed, unauthorized, or conflicting
// request that will not succeed by repeating it unchanged.
var nonRetryableStatuses = map[int]struct{}{
	400: {},
	401: {},
	403: {},
	404: {},
	409: {},
	422: {},
}

// Classify maps one attempt's outcome to a retry decision. A non-nil
// transport error (no response obtained) is always retryable, regardless of
// status. Statuses outside both fixed sets are terminal: unknown server
// behavior is surfaced to the caller rather than masked by retries.
func Classify(status int, err error) Decision {
	if err != nil {
		return DecisionRetryable
	}

	if IsSuccessStatus(status) {
		return DecisionSuccess
	}

	if _, ok := retryableStatuses[status]; ok {
		return DecisionRetryable
	}

	return DecisionNonRetryable
}
