package seq

import (
	"context"
)

// Seq is a pull-based asynchronous sequence. Next blocks until the next
// element is available, the sequence completes (ok == false, err == nil),
// or it fails terminally (err != nil). After completion or failure every
// subsequent Next reports the same outcome or clean completion.
//
// A Seq supports exactly one active consumer. Close releases the
// sequence's resources and is idempotent; it may be called from any
// goroutine.
type Seq[T any] interface {
	Next(ctx context.Context) (value T, ok bool, err error)
	Close() error
}

// ToSlice consumes src to completion, closes it, and returns every element
// in order. On error the elements received so far are returned with it.
func ToSlice[T any](ctx context.Context, src Seq[T]) ([]T, error) {
	defer src.Close()

	var out []T
	for {
		v, ok, err := src.Next(ctx)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}

// Each consumes src to completion, closes it, and invokes fn for every
// element. A non-nil error from fn stops consumption and is returned.
func Each[T any](ctx context.Context, src Seq[T], fn func(T) error) error {
	defer src.Close()

	for {
		v, ok, err := src.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(v); err != nil {
			return err
		}
	}
}

// Drain consumes src to completion, closes it, and discards the elements.
// It returns the sequence's terminal error, if any.
func Drain[T any](ctx context.Context, src Seq[T]) error {
	return Each(ctx, src, func(T) error { return nil })
}
