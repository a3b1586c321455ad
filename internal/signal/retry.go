package signal

import (
	"context"
	"time"
)

// RetryPolicy controls retry behavior for network probes.
type RetryPolicy struct {
	MaxRetries  int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

// DefaultProbeRetry allows one quick retry so a transient blip does
// not mark a subsystem unavailable for a whole audit.
func DefaultProbeRetry() RetryPolicy {
	return RetryPolicy{
		MaxRetries:  1,
		BaseBackoff: 100 * time.Millisecond,
		MaxBackoff:  500 * time.Millisecond,
	}
}

// Retry executes fn with retries, backoff, and cancellation support.
//
// fn must return nil on success. Any non-nil error is treated as
// retryable; the probe's context deadline bounds the total time spent.
func Retry(ctx context.Context, policy RetryPolicy, fn func() error) error {
	var attempt int
	backoff := policy.BaseBackoff

	for {
		err := fn()
		if err == nil {
			return nil
		}

		attempt++
		if attempt > policy.MaxRetries {
			return err
		}

		delay := backoff
		if delay > policy.MaxBackoff {
			delay = policy.MaxBackoff
		}

		select {
		case <-time.After(delay):
			backoff *= 2
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
