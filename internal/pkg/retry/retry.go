package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/TemirB/catalog-orders/internal/config"
)

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying. Do returns the wrapped error
// unchanged.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do calls fn up to Attempts times with jittered exponential backoff between
// calls. At least one call is made.
func Do(ctx context.Context, retryPolicy config.Retry, fn func() error) error {
	attempts := retryPolicy.Attempts
	if attempts < 1 {
		attempts = 1
	}
	d := retryPolicy.Base
	var err error

	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if i == attempts-1 {
			break
		}

		delay := d
		if retryPolicy.JitterFactor > 0 {
			jitter := 1 + retryPolicy.JitterFactor*(2*r.Float64()-1)
			delay = time.Duration(float64(delay) * jitter)
		}

		if retryPolicy.Max > 0 && delay > retryPolicy.Max {
			delay = retryPolicy.Max
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}

		d *= 2
		if retryPolicy.Max > 0 && d > retryPolicy.Max {
			d = retryPolicy.Max
		}
	}
	return err
}
