package seq

import (
	"context"
	"sync/atomic"

	"github.com/vnykmshr/seqflow/pkg/streaming/channel"
)

// FromSlice returns a sequence that yields the given elements in order.
func FromSlice[T any](items []T) Seq[T] {
	return &sliceSeq[T]{items: items}
}

// Of is FromSlice for inline element lists.
func Of[T any](items ...T) Seq[T] {
	return FromSlice(items)
}

// Empty returns a sequence that completes immediately.
func Empty[T any]() Seq[T] {
	return FromSlice[T](nil)
}

type sliceSeq[T any] struct {
	items  []T
	pos    int
	closed atomic.Bool
}

func (s *sliceSeq[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if s.closed.Load() || s.pos >= len(s.items) {
		return zero, false, nil
	}
	v := s.items[s.pos]
	s.pos++
	return v, true, nil
}

func (s *sliceSeq[T]) Close() error {
	s.closed.Store(true)
	return nil
}

// FromChannel returns a sequence that yields elements received from ch
// until ch is closed.
func FromChannel[T any](ch <-chan T) Seq[T] {
	return &chanSeq[T]{ch: ch, done: make(chan struct{})}
}

type chanSeq[T any] struct {
	ch     <-chan T
	done   chan struct{}
	closed atomic.Bool
}

func (s *chanSeq[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	select {
	case v, ok := <-s.ch:
		if !ok {
			return zero, false, nil
		}
		return v, true, nil
	case <-s.done:
		return zero, false, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (s *chanSeq[T]) Close() error {
	if s.closed.CompareAndSwap(false, true) {
		close(s.done)
	}
	return nil
}

// Generate returns a sequence driven by fn. Each Next calls fn once; fn
// reports completion with ok == false.
func Generate[T any](fn func(ctx context.Context) (T, bool, error)) Seq[T] {
	return &generateSeq[T]{fn: fn}
}

type generateSeq[T any] struct {
	fn     func(ctx context.Context) (T, bool, error)
	closed atomic.Bool
}

func (s *generateSeq[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if s.closed.Load() {
		return zero, false, nil
	}
	v, ok, err := s.fn(ctx)
	if err != nil || !ok {
		s.closed.Store(true)
	}
	return v, ok, err
}

func (s *generateSeq[T]) Close() error {
	s.closed.Store(true)
	return nil
}

// FromIterator adapts a watermark channel iterator into a sequence, so
// channel consumers can use the combinators in this package. Closing the
// sequence closes the iterator.
func FromIterator[T any](it *channel.Iterator[T]) Seq[T] {
	return &iteratorSeq[T]{it: it}
}

type iteratorSeq[T any] struct {
	it *channel.Iterator[T]
}

func (s *iteratorSeq[T]) Next(ctx context.Context) (T, bool, error) {
	return s.it.Next(ctx)
}

func (s *iteratorSeq[T]) Close() error {
	s.it.Close()
	return nil
}
