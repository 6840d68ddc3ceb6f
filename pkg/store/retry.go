package store

import (
	"time"
)

const (
	// DefaultRetryAttempts bounds automatic retries of transient
	// store failures before the error is surfaced to the caller.
	DefaultRetryAttempts = 3
	// retryBaseDelay is the first backoff interval; it doubles per attempt.
	retryBaseDelay = 50 * time.Millisecond
)

// WithRetry runs op, retrying up to attempts times with doubling backoff
// when the failure is transient (ErrStoreUnavailable). Schema violations
// and structural errors are never retried: retrying them would only
// desynchronize the graph from the source diagram.
func WithRetry(attempts int, op func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	delay := retryBaseDelay
	var err error
	for i := 0; i < attempts; i++ {
		err = op()
		if err == nil || !IsUnavailable(err) {
			return err
		}
		if i < attempts-1 {
			time.Sleep(delay)
			delay *= 2
		}
	}
	return err
}
