package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"agenticWallet/domain"
	"agenticWallet/pkg/logger"
	"agenticWallet/pkg/metrics"
)

const (
	defaultMaxRetries = 3
	backoffFactor     = 1.5
)

// ReasoningClient is the external explanation generator. Implementations
// must return *domain.RateLimitError for rate-limit responses so the raw
// body stays available for classification.
type ReasoningClient interface {
	Complete(ctx context.Context, req domain.ReasoningRequest) (string, error)
}

// Invoker calls the reasoning service and retries rate-limited calls with
// bounded exponential backoff seeded by the service's own suggested wait.
// It owns the only blocking sleep in the recommendation path. Attempt state
// is local to each Invoke call; Invokers are safe for concurrent use.
type Invoker struct {
	client     ReasoningClient
	maxRetries int

	// sleep is swappable in tests
	sleep func(ctx context.Context, d time.Duration) error
}

func NewInvoker(client ReasoningClient, maxRetries int) *Invoker {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &Invoker{
		client:     client,
		maxRetries: maxRetries,
		sleep:      sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Invoke issues the request, classifying failures and retrying only when
// the classification says it is safe. Terminal outcomes: success, a
// non-rate-limit service error, an exhausted daily quota, an exhausted retry
// budget, or a blown deadline.
func (inv *Invoker) Invoke(ctx context.Context, req domain.ReasoningRequest) (string, error) {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", deadlineErr(err)
		}

		text, err := inv.client.Complete(ctx, req)
		if err == nil {
			return text, nil
		}

		var rle *domain.RateLimitError
		if !errors.As(err, &rle) {
			metrics.ReasoningFailures.WithLabelValues("service_error").Inc()
			return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		}

		cls := Classify(rle.Raw)

		if !cls.Recoverable {
			metrics.ReasoningFailures.WithLabelValues("quota_exhausted").Inc()
			return "", fmt.Errorf("%w: %s", ErrQuotaExhausted, cls.Message)
		}

		if attempt >= inv.maxRetries {
			metrics.ReasoningFailures.WithLabelValues("retries_exhausted").Inc()
			return "", fmt.Errorf("%w: still rate limited after %d retry attempts: %s",
				ErrRetriesExhausted, inv.maxRetries, cls.Message)
		}

		wait := backoffDuration(cls.WaitSeconds, attempt)

		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < wait {
			metrics.ReasoningFailures.WithLabelValues("deadline_exceeded").Inc()
			return "", fmt.Errorf("%w: next retry due in %s but the deadline is sooner",
				ErrDeadlineExceeded, wait.Round(time.Millisecond))
		}

		metrics.ReasoningRetries.WithLabelValues(string(cls.Kind)).Inc()
		logger.Warn("reasoning service rate limited, backing off",
			"kind", cls.Kind,
			"attempt", attempt,
			"wait", wait,
		)

		if err := inv.sleep(ctx, wait); err != nil {
			metrics.ReasoningFailures.WithLabelValues("deadline_exceeded").Inc()
			return "", deadlineErr(err)
		}
	}
}

// backoffDuration grows the service-suggested wait by 1.5x per attempt.
func backoffDuration(waitSeconds float64, attempt int) time.Duration {
	return time.Duration(waitSeconds * math.Pow(backoffFactor, float64(attempt)) * float64(time.Second))
}

func deadlineErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrDeadlineExceeded, err)
	}
	return err
}
