// Package retry wraps fallible operations with exponential backoff. It is
// generic over the operation's result type and reusable for any network
// call.
package retry

import (
	"context"
	"time"
)

const (
	// DefaultMaxAttempts is the total number of invocations before the
	// last error is propagated.
	DefaultMaxAttempts = 3
	// DefaultBaseDelay is the wait after the first failure; subsequent
	// waits double (2s, 4s, 8s).
	DefaultBaseDelay = 2 * time.Second
)

// Options controls the retry schedule.
type Options struct {
	MaxAttempts int
	BaseDelay   time.Duration

	// sleep is injected by tests to make the schedule observable without
	// waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// DefaultOptions returns the standard 3-attempt doubling schedule.
func DefaultOptions() Options {
	return Options{MaxAttempts: DefaultMaxAttempts, BaseDelay: DefaultBaseDelay}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do executes op, retrying on failure with exponential backoff: after
// attempt n fails it waits BaseDelay * 2^(n-1) before attempt n+1. Once
// MaxAttempts have failed, the last error is returned unchanged. The wait
// aborts early if ctx is canceled, in which case the operation's last
// error is still the one returned.
func Do[T any](ctx context.Context, opts Options, op func(ctx context.Context) (T, error)) (T, error) {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = DefaultBaseDelay
	}
	sleep := opts.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var zero T
	var lastErr error
	for attempt := 1; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt >= opts.MaxAttempts {
			return zero, lastErr
		}

		delay := opts.BaseDelay << (attempt - 1)
		if err := sleep(ctx, delay); err != nil {
			return zero, lastErr
		}
	}
}
