package download

import (
	"context"
	"time"
)

// failureClass identifies why an attempt did not complete.
type failureClass int

const (
	failNetwork failureClass = iota + 1
	failServer
	failByteMismatch
)

func (c failureClass) String() string {
	switch c {
	case failNetwork:
		return "network"
	case failServer:
		return "server"
	case failByteMismatch:
		return "byte-mismatch"
	default:
		return "unknown"
	}
}

// RetryPolicy decides whether a failed attempt is re-run and after how long.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, the first included.
	MaxAttempts int

	// NetworkDelay is the fixed wait after a refused or reset connection.
	NetworkDelay time.Duration

	// BackoffStep is multiplied by the attempt number for server errors
	// and short transfers.
	BackoffStep time.Duration
}

// DefaultRetryPolicy returns 5 attempts, a 5s network delay and a 2s backoff step.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  5,
		NetworkDelay: 5 * time.Second,
		BackoffStep:  2 * time.Second,
	}
}

// Next returns the delay before the attempt following attempt, or false
// once attempt has reached the cap.
func (p RetryPolicy) Next(attempt int, class failureClass) (time.Duration, bool) {
	if attempt >= p.MaxAttempts {
		return 0, false
	}

	if class == failNetwork {
		return p.NetworkDelay, true
	}

	return time.Duration(attempt) * p.BackoffStep, true
}

// exhausted builds the terminal error for a class whose retries ran out.
func (p RetryPolicy) exhausted(attempt int, class failureClass, detail string) *Error {
	switch class {
	case failServer:
		return newError(KindServerUnavailable, "%s after %d attempts", detail, attempt)
	case failNetwork:
		return newError(KindConnectionFailed, "%s after %d attempts", detail, attempt)
	default:
		return newError(KindMaxRetriesExceeded, "%d attempts: %s", attempt, detail)
	}
}

// sleep waits for d or until ctx ends.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
