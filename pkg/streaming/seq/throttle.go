package seq

import (
	"context"
	"time"
)

// Throttle paces src so that consecutive elements are delivered at least
// interval apart. The first element is delivered immediately.
func Throttle[T any](src Seq[T], interval time.Duration) Seq[T] {
	return &throttleSeq[T]{src: src, interval: interval}
}

type throttleSeq[T any] struct {
	src      Seq[T]
	interval time.Duration
	last     time.Time
}

func (t *throttleSeq[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	v, ok, err := t.src.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}

	if wait := t.interval - time.Since(t.last); !t.last.IsZero() && wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return zero, false, ctx.Err()
		}
	}
	t.last = time.Now()
	return v, true, nil
}

func (t *throttleSeq[T]) Close() error {
	return t.src.Close()
}
