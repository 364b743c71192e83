package taskgroup

import (
	"context"
	"errors"
	"time"

	gferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
)

// WithTimeout runs fn under a context that expires after d. On expiry the
// returned error is errors.ErrTimeout so callers can treat it as retryable.
func WithTimeout[T any](ctx context.Context, d time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	tctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return runBounded(tctx, fn)
}

// WithDeadline is WithTimeout against an absolute point in time.
func WithDeadline[T any](ctx context.Context, at time.Time, fn func(ctx context.Context) (T, error)) (T, error) {
	dctx, cancel := context.WithDeadline(ctx, at)
	defer cancel()
	return runBounded(dctx, fn)
}

func runBounded[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	val, err := fn(ctx)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return val, gferrors.ErrTimeout
	}
	return val, err
}
