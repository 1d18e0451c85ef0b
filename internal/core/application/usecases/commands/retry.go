package commands

import (
	"context"
	"time"

	"orderservice/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds how often a load-modify-save command is repeated after
// losing an optimistic concurrency race.
type RetryPolicy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
}

// DefaultRetryPolicy retries a conflicting write three times starting at 50ms.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 3, InitialInterval: 50 * time.Millisecond}

// NoRetry runs the operation exactly once.
var NoRetry = RetryPolicy{}

// run repeats op while it fails with errs.KindConflict. Other errors stop immediately.
// A cancelled context surfaces as errs.ErrCancelled.
func (p RetryPolicy) run(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	b.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(b, p.MaxRetries), ctx)
	err := backoff.Retry(func() error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return backoff.Permanent(ctxErr)
		}
		opErr := op()
		if opErr == nil || errs.KindOf(opErr) == errs.KindConflict {
			return opErr
		}
		return backoff.Permanent(opErr)
	}, policy)

	return errs.FromContext(err)
}
