package schedule

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	gferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/streaming/seq"
)

// Cron returns a sequence that yields the firing time at each match of
// the cron expression. The sequence never completes on its own; close it
// or cancel the consuming context to stop.
func Cron(expr string) (seq.Seq[time.Time], error) {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	sched, err := parser.Parse(expr)
	if err != nil {
		return nil, gferrors.NewValidationError("schedule", "expr", expr, err.Error()).
			WithHint("use six-field cron syntax, e.g. \"0 */5 * * * *\"")
	}
	return newTimerSeq(sched), nil
}

// Every returns a sequence that yields every interval, starting one
// interval from now. Unlike cron's @every descriptor, sub-second
// intervals are not rounded up.
func Every(interval time.Duration) (seq.Seq[time.Time], error) {
	if interval <= 0 {
		return nil, gferrors.NewValidationError("schedule", "interval", interval, "must be positive")
	}
	return newTimerSeq(fixedSchedule{interval: interval}), nil
}

// fixedSchedule implements cron.Schedule with no sub-second rounding.
type fixedSchedule struct {
	interval time.Duration
}

func (f fixedSchedule) Next(t time.Time) time.Time {
	return t.Add(f.interval)
}

func newTimerSeq(sched cron.Schedule) *timerSeq {
	return &timerSeq{sched: sched, done: make(chan struct{})}
}

type timerSeq struct {
	sched  cron.Schedule
	done   chan struct{}
	closed atomic.Bool
}

func (s *timerSeq) Next(ctx context.Context) (time.Time, bool, error) {
	var zero time.Time
	if s.closed.Load() {
		return zero, false, nil
	}

	at := s.sched.Next(time.Now())
	timer := time.NewTimer(time.Until(at))
	defer timer.Stop()

	select {
	case <-timer.C:
		return at, true, nil
	case <-s.done:
		return zero, false, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (s *timerSeq) Close() error {
	if s.closed.CompareAndSwap(false, true) {
		close(s.done)
	}
	return nil
}
