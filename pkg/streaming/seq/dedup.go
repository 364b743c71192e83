package seq

import "context"

// DropDuplicates removes adjacent duplicate elements, keeping the first of
// each run. Non-adjacent repeats still pass through.
func DropDuplicates[T comparable](src Seq[T]) Seq[T] {
	return DropDuplicatesFunc(src, func(prev, next T) bool { return prev == next })
}

// DropDuplicatesFunc is DropDuplicates with a caller-supplied equality
// predicate.
func DropDuplicatesFunc[T any](src Seq[T], eq func(prev, next T) bool) Seq[T] {
	return &dedupSeq[T]{src: src, eq: eq}
}

type dedupSeq[T any] struct {
	src Seq[T]
	eq  func(prev, next T) bool

	prev    T
	hasPrev bool
}

func (d *dedupSeq[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for {
		v, ok, err := d.src.Next(ctx)
		if err != nil || !ok {
			return zero, false, err
		}
		if d.hasPrev && d.eq(d.prev, v) {
			continue
		}
		d.prev, d.hasPrev = v, true
		return v, true, nil
	}
}

func (d *dedupSeq[T]) Close() error {
	return d.src.Close()
}
