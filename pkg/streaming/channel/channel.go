package channel

import (
	"errors"
	"fmt"
	"sync/atomic"

	gferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
)

// ErrAlreadyFinished is returned when sending after Finish has been called
// or after the channel has been torn down. It matches the errors.ErrClosed
// sentinel.
var ErrAlreadyFinished = fmt.Errorf("channel is already finished: %w", gferrors.ErrClosed)

// ErrSendCancelled resolves a registered producer callback whose suspended
// send was cancelled. The element of a cancelled send was never admitted.
var ErrSendCancelled = errors.New("suspended send was cancelled")

// CallbackToken identifies one suspended producer. It is issued by TrySend
// and consumed exactly once: by resumption, by cancellation, or by the
// channel finishing.
type CallbackToken uint64

// SendResult is the outcome of a non-suspending send attempt.
type SendResult struct {
	token    CallbackToken
	deferred bool
}

// ProduceMore reports whether the element was admitted and the producer may
// keep sending without waiting.
func (r SendResult) ProduceMore() bool { return !r.deferred }

// Token returns the callback token of a deferred send and true, or false if
// the element was admitted. The caller of TrySend is responsible for
// registering the token via EnqueueCallback (or cancelling it) and for
// re-sending the element once the callback resolves.
func (r SendResult) Token() (CallbackToken, bool) { return r.token, r.deferred }

// Config configures the watermark backpressure policy of a channel.
// The policy is pure: it computes per-element weight and watermark
// crossings and holds no state of its own.
type Config[T any] struct {
	// Low is the water level at or below which suspended producers are
	// resumed, FIFO by suspension order.
	Low int

	// High is the water level at which further sends are deferred.
	// Requires 0 <= Low <= High and High >= 1.
	High int

	// Weight computes the backpressure weight of an element. It must be
	// deterministic and non-negative. Nil means every element weighs 1.
	// A zero-weight element can never itself trigger suspension.
	Weight func(T) int
}

// DefaultConfig returns a watermark configuration suitable for small
// elements of uniform cost.
func DefaultConfig[T any]() Config[T] {
	return Config[T]{Low: 16, High: 32}
}

func (c Config[T]) validate() error {
	if c.Low < 0 {
		return gferrors.NewValidationError("channel", "low", c.Low, "cannot be negative").
			WithHint("use 0 <= low <= high")
	}
	if c.High < c.Low {
		return gferrors.NewValidationError("channel", "high", c.High, "must not be below low").
			WithHint("use 0 <= low <= high")
	}
	if c.High < 1 {
		return gferrors.NewValidationError("channel", "high", c.High, "must be at least 1").
			WithHint("a zero high watermark defers every send and admits none")
	}
	return nil
}

func (c Config[T]) weightOf(v T) int {
	if c.Weight == nil {
		return 1
	}
	w := c.Weight(v)
	if w < 0 {
		panic("channel: element weight must be non-negative")
	}
	return w
}

// shouldSuspend reports whether a send arriving at the given water level
// must be deferred.
func (c Config[T]) shouldSuspend(level int) bool { return level >= c.High }

// shouldResume reports whether the head of the producer-wait queue may be
// resumed at the given water level.
func (c Config[T]) shouldResume(level int) bool { return level <= c.Low }

// New creates the channel triple: a consumer-facing Channel, a
// producer-facing Source, and the shared state joining them. The
// configuration is validated here; watermark violations are construction
// errors, never send-time errors.
func New[T any](cfg Config[T]) (*Channel[T], *Source[T], error) {
	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}
	s := newSharedState(cfg)
	return &Channel[T]{state: s}, &Source[T]{state: s}, nil
}

// Channel is the consumer-facing capability of a backpressured channel.
// It is a cheap handle over shared state; create an Iterator per
// consumption session. Close releases the handle's liveness.
type Channel[T any] struct {
	state  *sharedState[T]
	closed atomic.Bool
}

// Iterator returns a new cursor over the channel. At most one consumer may
// drive Next at a time; concurrent Next calls are a usage error and panic.
func (c *Channel[T]) Iterator() *Iterator[T] {
	c.state.addIterator()
	return &Iterator[T]{state: c.state}
}

// Len returns the number of buffered, undelivered elements.
func (c *Channel[T]) Len() int {
	buffered, _, _ := c.state.snapshot()
	return buffered
}

// Level returns the current water level: the summed weight of buffered,
// undelivered elements.
func (c *Channel[T]) Level() int {
	_, level, _ := c.state.snapshot()
	return level
}

// Suspended returns the number of producers currently parked behind the
// high watermark.
func (c *Channel[T]) Suspended() int {
	_, _, suspended := c.state.snapshot()
	return suspended
}

// Close drops this consumer handle. Once no sources, channels, or iterators
// remain, the channel finishes without error and fires its termination
// callback. Close is idempotent.
func (c *Channel[T]) Close() {
	if c.closed.CompareAndSwap(false, true) {
		c.state.handleLost(roleChannel)
	}
}
