package recommend

import (
	"regexp"
	"strings"
)

type FailureKind string

const (
	FailureDailyQuota FailureKind = "daily_quota_exhausted"
	FailureRPM        FailureKind = "requests_per_minute"
	FailureUnknown    FailureKind = "unknown"
)

const (
	defaultRPMWait     = 60.0
	defaultUnknownWait = 30.0
)

// FailureClassification is the verdict on one raw error text. WaitSeconds is
// only meaningful when Recoverable is true.
type FailureClassification struct {
	Kind        FailureKind
	Recoverable bool
	WaitSeconds float64
	Message     string
}

// matches "try again in 1m15s" style durations (fractional seconds allowed)
var retryAfterPattern = regexp.MustCompile(`(\d+)m(\d+)(?:\.\d+)?s`)

// Classify inspects raw error text from the reasoning service and decides
// whether a retry is safe. First matching rule wins. Never fails; anything
// unfamiliar is treated as transient.
func Classify(errorText string) FailureClassification {
	lower := strings.ToLower(errorText)

	if strings.Contains(lower, "tokens per day") {
		return FailureClassification{
			Kind:        FailureDailyQuota,
			Recoverable: false,
			Message:     "Daily token limit reached. The quota resets tomorrow; retrying now cannot succeed.",
		}
	}

	if strings.Contains(lower, "requests per minute") {
		wait := defaultRPMWait
		if m := retryAfterPattern.FindStringSubmatch(errorText); m != nil {
			wait = float64(mustAtoi(m[1]))*60 + float64(mustAtoi(m[2]))
		}
		return FailureClassification{
			Kind:        FailureRPM,
			Recoverable: true,
			WaitSeconds: wait,
			Message:     "The service received too many requests this minute. Safe to retry after waiting.",
		}
	}

	return FailureClassification{
		Kind:        FailureUnknown,
		Recoverable: true,
		WaitSeconds: defaultUnknownWait,
		Message:     "Unrecognized rate limit condition. Treating as transient.",
	}
}

// mustAtoi converts digits already validated by the regexp.
func mustAtoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
