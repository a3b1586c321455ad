package signal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetry_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), DefaultProbeRetry(), func() error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	policy := RetryPolicy{
		MaxRetries:  2,
		BaseBackoff: time.Millisecond,
		MaxBackoff:  time.Millisecond,
	}

	calls := 0
	probeErr := errors.New("unreachable")
	err := Retry(context.Background(), policy, func() error {
		calls++
		return probeErr
	})

	assert.ErrorIs(t, err, probeErr)
	assert.Equal(t, 3, calls)
}

func TestRetry_StopsOnContextCancel(t *testing.T) {
	policy := RetryPolicy{
		MaxRetries:  10,
		BaseBackoff: time.Hour,
		MaxBackoff:  time.Hour,
	}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := Retry(ctx, policy, func() error {
		return errors.New("unreachable")
	})

	assert.ErrorIs(t, err, context.Canceled)
}
