package taskgroup

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PanicError wraps a panic recovered from a task so Wait can surface it as
// an ordinary error instead of tearing down the process.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// Group manages a set of tasks sharing one context. The first task to fail
// cancels the context of the rest; Wait returns that first error.
type Group struct {
	ctx    context.Context
	cancel context.CancelCauseFunc

	wg      sync.WaitGroup
	errOnce sync.Once
	err     error

	tasks    prometheus.Counter
	failures prometheus.Counter
}

// New creates a Group bound to parent. The returned context is cancelled
// when any task fails or when Wait returns.
func New(parent context.Context) (*Group, context.Context) {
	ctx, cancel := context.WithCancelCause(parent)
	return &Group{ctx: ctx, cancel: cancel}, ctx
}

// Go spawns fn in its own goroutine. Panics are recovered and reported as
// a *PanicError through Wait.
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.wg.Add(1)
	if g.tasks != nil {
		g.tasks.Inc()
	}
	go func() {
		defer g.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				g.fail(&PanicError{Value: r, Stack: debug.Stack()})
			}
		}()
		if err := fn(g.ctx); err != nil {
			g.fail(err)
		}
	}()
}

func (g *Group) fail(err error) {
	if g.failures != nil {
		g.failures.Inc()
	}
	g.errOnce.Do(func() {
		g.err = err
		g.cancel(err)
	})
}

// Wait blocks until every spawned task has returned, then releases the
// group context and reports the first failure, if any.
func (g *Group) Wait() error {
	g.wg.Wait()
	g.cancel(nil)
	return g.err
}
