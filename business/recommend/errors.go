package recommend

import "errors"

var (
	// ErrInvalidInput rejects malformed purchase contexts (negative amount,
	// empty card list) before any scoring happens.
	ErrInvalidInput = errors.New("invalid input")

	// ErrServiceUnavailable means no reasoning client is configured, or it
	// failed with a non-rate-limit error. Never retried.
	ErrServiceUnavailable = errors.New("reasoning service unavailable")

	// ErrQuotaExhausted is a daily/period quota ceiling. Retrying within the
	// request lifetime cannot fix it; try again tomorrow.
	ErrQuotaExhausted = errors.New("reasoning service daily quota exhausted")

	// ErrRetriesExhausted means the service kept rate limiting past the retry
	// budget; try again soon.
	ErrRetriesExhausted = errors.New("reasoning service retries exhausted")

	// ErrDeadlineExceeded is the caller-imposed timeout hit mid-backoff.
	ErrDeadlineExceeded = errors.New("request deadline exceeded")
)
