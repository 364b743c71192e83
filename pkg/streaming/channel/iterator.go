package channel

import (
	"context"
	"sync/atomic"
)

// Iterator is a single-consumer cursor over a channel. Concurrent Next
// calls on the same Iterator are a usage error and panic rather than race.
type Iterator[T any] struct {
	state  *sharedState[T]
	closed atomic.Bool
	busy   atomic.Bool
}

// Next returns the next element in commit order.
//
// It reports (value, true, nil) for an element, (zero, false, nil) on clean
// completion, and (zero, false, err) exactly once when the channel finished
// with err; reads after the terminal result report clean completion. Next
// suspends while the channel is active and empty; cancelling ctx
// unregisters the pending wait and returns ctx.Err() without corrupting
// state for a later Next.
func (it *Iterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.closed.Load() {
		return zero, false, nil
	}
	if !it.busy.CompareAndSwap(false, true) {
		panic("channel: concurrent Next calls on the same Iterator")
	}
	defer it.busy.Store(false)

	if err := ctx.Err(); err != nil {
		return zero, false, err
	}

	res, wait := it.state.next(it)
	if wait == nil {
		return res.value, res.ok, res.err
	}

	select {
	case r := <-wait.ch:
		return r.value, r.ok, r.err
	case <-ctx.Done():
		if it.state.cancelNext(wait) {
			return zero, false, ctx.Err()
		}
		// The wait resolved concurrently with cancellation; the element
		// must not be lost.
		r := <-wait.ch
		return r.value, r.ok, r.err
	}
}

// Close drops the cursor. A Next blocked in another goroutine resolves to
// clean completion. Close is idempotent.
func (it *Iterator[T]) Close() {
	if it.closed.CompareAndSwap(false, true) {
		it.state.iteratorLost(it)
	}
}
