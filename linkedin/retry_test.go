package linkedin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryFixed_Success(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		return nil
	}

	err := RetryFixed(context.Background(), operation, 3, time.Millisecond, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, attempts, "should succeed on first try")
}

func TestRetryFixed_EventualSuccess(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	err := RetryFixed(context.Background(), operation, 3, time.Millisecond, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts, "should succeed on third attempt")
}

func TestRetryFixed_AllAttemptsFail(t *testing.T) {
	attempts := 0
	expectedErr := errors.New("persistent error")
	operation := func() error {
		attempts++
		return expectedErr
	}

	err := RetryFixed(context.Background(), operation, 3, time.Millisecond, nil)
	require.Error(t, err)
	assert.Equal(t, expectedErr, err, "should return the original error")
	assert.Equal(t, 3, attempts, "should attempt exactly maxAttempts times")
}

func TestRetryFixed_PermanentError(t *testing.T) {
	attempts := 0
	permanent := errors.New("bad request")
	operation := func() error {
		attempts++
		return permanent
	}

	err := RetryFixed(context.Background(), operation, 5, time.Millisecond, func(err error) bool {
		return !errors.Is(err, permanent)
	})
	assert.Equal(t, permanent, err)
	assert.Equal(t, 1, attempts, "permanent errors are not retried")
}

func TestRetryFixed_FixedWait(t *testing.T) {
	attempts := 0
	var delays []time.Duration
	lastTime := time.Now()

	operation := func() error {
		attempts++
		if attempts > 1 {
			delays = append(delays, time.Since(lastTime))
		}
		lastTime = time.Now()
		return errors.New("error")
	}

	wait := 20 * time.Millisecond
	err := RetryFixed(context.Background(), operation, 3, wait, nil)
	require.Error(t, err)
	require.Len(t, delays, 2, "no wait after the last attempt")
	for _, d := range delays {
		assert.GreaterOrEqual(t, d, wait)
	}
}

func TestRetryFixed_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	operation := func() error {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return errors.New("error")
	}

	err := RetryFixed(ctx, operation, 10, time.Millisecond, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, attempts, 2, "should stop when context is canceled")
}

func TestRetryFixed_InvalidMaxAttempts(t *testing.T) {
	for _, maxAttempts := range []int{0, -1} {
		attempts := 0
		err := RetryFixed(context.Background(), func() error {
			attempts++
			return nil
		}, maxAttempts, time.Millisecond, nil)
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
		assert.Equal(t, 0, attempts)
	}
}
