package httpclient

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// maxRetryAfter caps how long a server's Retry-After may hold a request.
const maxRetryAfter = time.Minute

// RetryableError marks a transient failure that Retry attempts again.
// After, when set, is the wait the server asked for.
type RetryableError struct {
	Err   error
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times. Waits start at delay and double, but
// never fall below the Retry-After a rate-limited response carried. Errors
// not wrapped in RetryableError end the loop at once. A cancelled context
// returns ctx.Err().
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = delay
	expo.RandomizationFactor = 0
	expo.Multiplier = 2
	expo.MaxInterval = max(delay, expo.MaxInterval)
	expo.MaxElapsedTime = 0

	var wait retryAfter
	wait.BackOff = backoff.WithMaxRetries(expo, uint64(attempts-1))

	op := func() error {
		err := fn()
		if err == nil {
			return nil
		}
		var re *RetryableError
		if !errors.As(err, &re) {
			return backoff.Permanent(err)
		}
		wait.after = min(re.After, maxRetryAfter)
		return err
	}
	return backoff.Retry(op, backoff.WithContext(&wait, ctx))
}

// retryAfter stretches the next wait to the server's requested delay.
type retryAfter struct {
	backoff.BackOff
	after time.Duration
}

func (r *retryAfter) NextBackOff() time.Duration {
	next := r.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	return max(next, r.after)
}

// parseRetryAfter reads a Retry-After header given in seconds or as an
// HTTP date.
func parseRetryAfter(h http.Header) time.Duration {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return max(time.Duration(secs)*time.Second, 0)
	}
	if t, err := http.ParseTime(v); err == nil {
		return max(time.Until(t), 0)
	}
	return 0
}
