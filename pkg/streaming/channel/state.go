package channel

import (
	"sync"
)

// phase tracks the lifecycle of the shared channel state.
type phase int

const (
	// phaseActive accepts sends and may hold buffered elements, a pending
	// consumer wait, and pending producer waits.
	phaseActive phase = iota

	// phaseFinishing has a terminal result recorded; no further sends are
	// accepted while the buffer drains.
	phaseFinishing

	// phaseFinished has delivered the terminal result (or lost all handles);
	// reads return a clean end of sequence.
	phaseFinished
)

// role identifies which kind of handle was dropped.
type role int

const (
	roleSource role = iota
	roleChannel
	roleIterator
)

// weighted pairs a buffered element with the weight it was admitted at,
// so the water level stays consistent even if the weight function is not
// stable across calls.
type weighted[T any] struct {
	value  T
	weight int
}

// producerWait is one suspended producer: an issued token and the callback
// that resumes it. Resolved exactly once.
type producerWait struct {
	token CallbackToken
	fn    func(error)
}

// nextResult carries the outcome of one Next call.
type nextResult[T any] struct {
	value T
	ok    bool
	err   error
}

// consumerWait is the single pending consumer. The channel is buffered with
// capacity one so resolution never blocks the resolving side.
type consumerWait[T any] struct {
	ch    chan nextResult[T]
	owner *Iterator[T]
}

// actions collects continuations decided inside a critical section. They are
// invoked only after the lock is released, keeping user code out of the
// critical section and resumptions at-most-once.
type actions []func()

func (a actions) run() {
	for _, fn := range a {
		fn()
	}
}

// sharedState is the single source of truth for a channel: buffered
// elements, water level, the pending consumer wait, the FIFO queue of
// pending producer waits, lifecycle phase, and handle liveness. All fields
// are guarded by mu; every transition is one critical section.
type sharedState[T any] struct {
	mu  sync.Mutex
	cfg Config[T]

	buffer []weighted[T]
	level  int

	phase    phase
	terminal error

	consumer  *consumerWait[T]
	producers []producerWait

	// issued holds tokens handed out by trySend that have not yet been
	// resolved (resumed, cancelled, or failed). Registration against a
	// token outside this set is a protocol violation.
	issued    map[CallbackToken]struct{}
	lastToken CallbackToken

	sources   int
	channels  int
	iterators int

	termFn    func()
	termFired bool

	metrics *channelMetrics
}

func newSharedState[T any](cfg Config[T]) *sharedState[T] {
	return &sharedState[T]{
		cfg:      cfg,
		issued:   make(map[CallbackToken]struct{}),
		sources:  1,
		channels: 1,
	}
}

// trySend either admits the element or defers the producer.
//
// The suspension decision uses the water level as it stands when the send
// arrives: once the level has reached the high watermark, further sends are
// deferred and their elements are not admitted. A send that itself carries
// the level across the high watermark is still admitted, so a single heavy
// element can overshoot; memory stays bounded by high plus one element.
func (s *sharedState[T]) trySend(value T) (SendResult, error) {
	s.mu.Lock()
	if s.phase != phaseActive {
		s.mu.Unlock()
		return SendResult{}, ErrAlreadyFinished
	}

	if s.cfg.shouldSuspend(s.level) {
		s.lastToken++
		token := s.lastToken
		s.issued[token] = struct{}{}
		if s.metrics != nil {
			s.metrics.deferred.Inc()
			s.metrics.suspended.Set(float64(len(s.producers) + 1))
		}
		s.mu.Unlock()
		return SendResult{token: token, deferred: true}, nil
	}

	var acts actions
	if s.consumer != nil {
		// Direct hand-off: a pending Next takes priority over buffering,
		// so the element never touches the buffer or the water level.
		cw := s.consumer
		s.consumer = nil
		res := nextResult[T]{value: value, ok: true}
		acts = append(acts, func() { cw.ch <- res })
	} else {
		w := s.cfg.weightOf(value)
		s.buffer = append(s.buffer, weighted[T]{value: value, weight: w})
		s.level += w
	}
	if s.metrics != nil {
		s.metrics.sends.Inc()
		s.metrics.waterLevel.Set(float64(s.level))
	}
	s.mu.Unlock()
	acts.run()
	return SendResult{}, nil
}

// registerCallback arms the resume callback for a previously issued token.
// If the consumer drained the channel below the high watermark between
// trySend and registration, the callback fires immediately with success
// instead of parking.
func (s *sharedState[T]) registerCallback(token CallbackToken, fn func(error)) {
	s.mu.Lock()
	if _, ok := s.issued[token]; !ok {
		s.mu.Unlock()
		panic("channel: EnqueueCallback with unknown or already consumed token")
	}

	var acts actions
	switch {
	case s.phase != phaseActive:
		delete(s.issued, token)
		acts = append(acts, func() { fn(ErrAlreadyFinished) })
	case !s.cfg.shouldSuspend(s.level):
		delete(s.issued, token)
		acts = append(acts, func() { fn(nil) })
	default:
		s.producers = append(s.producers, producerWait{token: token, fn: fn})
		if s.metrics != nil {
			s.metrics.suspended.Set(float64(len(s.producers)))
		}
	}
	s.mu.Unlock()
	acts.run()
}

// cancelCallback resolves an outstanding token with ErrSendCancelled.
// Cancelling a token that was already resumed or cancelled is a no-op.
func (s *sharedState[T]) cancelCallback(token CallbackToken) {
	s.mu.Lock()
	if _, ok := s.issued[token]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.issued, token)

	var acts actions
	for i, pw := range s.producers {
		if pw.token == token {
			s.producers = append(s.producers[:i], s.producers[i+1:]...)
			fn := pw.fn
			acts = append(acts, func() { fn(ErrSendCancelled) })
			break
		}
	}
	if s.metrics != nil {
		s.metrics.cancelled.Inc()
		s.metrics.suspended.Set(float64(len(s.producers)))
	}
	s.mu.Unlock()
	acts.run()
}

// next pops the earliest buffered element, or the terminal result once the
// buffer has drained, or registers owner as the single pending consumer.
// A nil consumerWait return means the nextResult is immediate.
func (s *sharedState[T]) next(owner *Iterator[T]) (nextResult[T], *consumerWait[T]) {
	s.mu.Lock()
	if len(s.buffer) > 0 {
		e := s.buffer[0]
		s.buffer = s.buffer[1:]
		s.level -= e.weight

		var acts actions
		if s.cfg.shouldResume(s.level) && len(s.producers) > 0 {
			pw := s.producers[0]
			s.producers = s.producers[1:]
			delete(s.issued, pw.token)
			fn := pw.fn
			acts = append(acts, func() { fn(nil) })
			if s.metrics != nil {
				s.metrics.resumes.Inc()
			}
		}
		if s.metrics != nil {
			s.metrics.waterLevel.Set(float64(s.level))
			s.metrics.suspended.Set(float64(len(s.producers)))
		}
		s.mu.Unlock()
		acts.run()
		return nextResult[T]{value: e.value, ok: true}, nil
	}

	switch s.phase {
	case phaseFinishing:
		// Terminal result delivered exactly once; the channel counts as
		// drained from here on.
		err := s.terminal
		s.phase = phaseFinished
		acts := s.terminationLocked()
		s.mu.Unlock()
		acts.run()
		return nextResult[T]{err: err}, nil
	case phaseFinished:
		s.mu.Unlock()
		return nextResult[T]{}, nil
	}

	if s.consumer != nil {
		s.mu.Unlock()
		panic("channel: a consumer wait is already pending; the channel supports one active consumer")
	}
	cw := &consumerWait[T]{ch: make(chan nextResult[T], 1), owner: owner}
	s.consumer = cw
	s.mu.Unlock()
	return nextResult[T]{}, cw
}

// cancelNext unregisters a pending consumer wait. Returns false if the wait
// was already resolved, in which case the result is sitting in cw.ch.
func (s *sharedState[T]) cancelNext(cw *consumerWait[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consumer == cw {
		s.consumer = nil
		return true
	}
	return false
}

func (s *sharedState[T]) finish(err error) {
	s.mu.Lock()
	acts := s.finishLocked(err)
	s.mu.Unlock()
	acts.run()
}

// finishLocked records the terminal result and fails every pending producer
// wait; their elements were never admitted. If the buffer is already empty
// a pending consumer receives the terminal result immediately; with no
// consumer waiting the state stays in phaseFinishing so the first Next
// still delivers the recorded result instead of a clean completion.
// Idempotent: only the first call in phaseActive has any effect.
func (s *sharedState[T]) finishLocked(err error) actions {
	if s.phase != phaseActive {
		return nil
	}
	s.terminal = err
	s.phase = phaseFinishing

	var acts actions
	for _, pw := range s.producers {
		fn := pw.fn
		delete(s.issued, pw.token)
		acts = append(acts, func() { fn(ErrAlreadyFinished) })
	}
	s.producers = nil
	if s.metrics != nil {
		s.metrics.suspended.Set(0)
	}

	if len(s.buffer) == 0 && s.consumer != nil {
		cw := s.consumer
		s.consumer = nil
		s.phase = phaseFinished
		res := nextResult[T]{err: err}
		acts = append(acts, func() { cw.ch <- res })
		acts = append(acts, s.terminationLocked()...)
	}
	return acts
}

// terminationLocked arranges the one-time termination notification.
func (s *sharedState[T]) terminationLocked() actions {
	if s.termFired {
		return nil
	}
	s.termFired = true
	if s.termFn == nil {
		return nil
	}
	fn := s.termFn
	return actions{fn}
}

// setOnTermination installs the termination callback. Only the first call
// installs; if termination has already occurred the callback runs at once.
func (s *sharedState[T]) setOnTermination(fn func()) {
	s.mu.Lock()
	if s.termFn != nil {
		s.mu.Unlock()
		return
	}
	s.termFn = fn
	fired := s.termFired
	s.mu.Unlock()
	if fired {
		fn()
	}
}

// handleLost records that a handle of the given role was dropped. Losing the
// last source finishes the channel cleanly; losing the last handle of any
// kind forces an error-free finish and fires termination.
func (s *sharedState[T]) handleLost(r role) {
	s.mu.Lock()
	var acts actions
	switch r {
	case roleSource:
		s.sources--
		if s.sources == 0 {
			acts = append(acts, s.finishLocked(nil)...)
		}
	case roleChannel:
		s.channels--
	case roleIterator:
		s.iterators--
	}
	if s.sources == 0 && s.channels == 0 && s.iterators == 0 {
		acts = append(acts, s.finishLocked(nil)...)
		acts = append(acts, s.terminationLocked()...)
	}
	s.mu.Unlock()
	acts.run()
}

// iteratorLost handles an iterator drop, resolving the iterator's own
// pending wait (if its Next is blocked in another goroutine) with a clean
// end of sequence before releasing liveness.
func (s *sharedState[T]) iteratorLost(it *Iterator[T]) {
	s.mu.Lock()
	var acts actions
	if s.consumer != nil && s.consumer.owner == it {
		cw := s.consumer
		s.consumer = nil
		acts = append(acts, func() { cw.ch <- nextResult[T]{} })
	}
	s.mu.Unlock()
	acts.run()
	s.handleLost(roleIterator)
}

func (s *sharedState[T]) addSource() {
	s.mu.Lock()
	s.sources++
	s.mu.Unlock()
}

func (s *sharedState[T]) addIterator() {
	s.mu.Lock()
	s.iterators++
	s.mu.Unlock()
}

func (s *sharedState[T]) setMetrics(m *channelMetrics) {
	s.mu.Lock()
	s.metrics = m
	s.mu.Unlock()
}

// snapshot returns buffered element count, water level, and suspended
// producer count for observability.
func (s *sharedState[T]) snapshot() (buffered, level, suspended int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buffer), s.level, len(s.producers)
}
