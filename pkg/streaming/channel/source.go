package channel

import (
	"context"
	"errors"
	"sync/atomic"
)

// Source is the producer-facing capability of a backpressured channel.
// Clones are cheap handles over the same shared state, so arbitrarily many
// goroutines can produce into one channel by cloning (or sharing) a Source.
//
// A Source is consumed by calling Finish or Close. Closing the last live
// Source finishes the channel cleanly so consumers observe end of sequence.
type Source[T any] struct {
	state  *sharedState[T]
	closed atomic.Bool
}

// Clone returns a new producer handle over the same channel. Cloning does
// not duplicate any state.
func (s *Source[T]) Clone() *Source[T] {
	if s.closed.Load() {
		panic("channel: Clone of a closed Source")
	}
	s.state.addSource()
	return &Source[T]{state: s.state}
}

// TrySend attempts to send without suspending.
//
// If the water level is below the high watermark the element is admitted
// and the result reports ProduceMore. Otherwise the element is NOT admitted
// and the result carries a CallbackToken: register it with EnqueueCallback,
// wait for the callback to resolve with success, then send the element
// again. Returns ErrAlreadyFinished after Finish or teardown.
func (s *Source[T]) TrySend(value T) (SendResult, error) {
	return s.state.trySend(value)
}

// EnqueueCallback registers the completion callback for a token returned by
// TrySend. The callback fires exactly once, from outside the channel's
// critical section: with nil when the producer may send again, with
// ErrSendCancelled if cancelled, or with ErrAlreadyFinished if the channel
// finished first. Registering an unknown or already consumed token panics.
func (s *Source[T]) EnqueueCallback(token CallbackToken, fn func(error)) {
	if fn == nil {
		panic("channel: EnqueueCallback requires a callback")
	}
	s.state.registerCallback(token, fn)
}

// CancelCallback cancels an outstanding token. The registered callback (if
// any) resolves with ErrSendCancelled exactly once; cancelling a token that
// already resolved is a no-op.
func (s *Source[T]) CancelCallback(token CallbackToken) {
	s.state.cancelCallback(token)
}

// Send sends one element, suspending while the channel is above its high
// watermark. Cancelling ctx unregisters the pending wait; a cancelled
// send's element is never admitted.
func (s *Source[T]) Send(ctx context.Context, value T) error {
	for {
		res, err := s.TrySend(value)
		if err != nil {
			return err
		}
		if res.ProduceMore() {
			return nil
		}
		token, _ := res.Token()

		done := make(chan error, 1)
		s.EnqueueCallback(token, func(err error) { done <- err })

		select {
		case err := <-done:
			if err != nil {
				return err
			}
			// Resumed below the low watermark; retry the send.
		case <-ctx.Done():
			s.CancelCallback(token)
			// The callback fires either way: with ErrSendCancelled if the
			// cancellation won, or with its original resolution if it lost
			// the race.
			err := <-done
			if err == nil || errors.Is(err, ErrSendCancelled) {
				return ctx.Err()
			}
			return err
		}
	}
}

// SendAll sends each value in order, stopping at the first failure.
func (s *Source[T]) SendAll(ctx context.Context, values ...T) error {
	for _, v := range values {
		if err := s.Send(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

// Finish records the terminal result: nil for clean completion or an error
// surfaced to the consumer exactly once after the buffer drains. Pending
// producer waits fail with ErrAlreadyFinished; their elements are never
// admitted. Finish is idempotent.
func (s *Source[T]) Finish(err error) {
	s.state.finish(err)
}

// OnTermination installs a callback invoked exactly once when the channel
// is fully torn down, whether by finish-and-drain or by all handles being
// dropped. Only the first installation takes effect; if termination already
// occurred the callback runs immediately.
func (s *Source[T]) OnTermination(fn func()) {
	if fn == nil {
		return
	}
	s.state.setOnTermination(fn)
}

// Close drops this producer handle without recording an error. When the
// last Source closes the channel finishes cleanly. Close is idempotent.
func (s *Source[T]) Close() {
	if s.closed.CompareAndSwap(false, true) {
		s.state.handleLost(roleSource)
	}
}
