package httputil

import (
	"context"
	"errors"
	"time"
)

// MaxRetryWait caps the wait a server can request through Retry-After.
const MaxRetryWait = 30 * time.Second

// RetryableError marks a transient download failure. After is the wait the
// tile server asked for, zero when it gave none.
type RetryableError struct {
	Err   error
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry calls fn until it succeeds, fails with an error that is not a
// [RetryableError], or has run attempts times. The wait between attempts
// starts at delay and doubles, but is never shorter than the server's
// Retry-After (capped at [MaxRetryWait]).
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < max(attempts, 1); i++ {
		if i > 0 {
			wait := delay << (i - 1)
			var re *RetryableError
			if errors.As(err, &re) && re.After > wait {
				wait = min(re.After, MaxRetryWait)
			}
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
	}
	return err
}

// IsRetryable reports whether err is wrapped in a [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
