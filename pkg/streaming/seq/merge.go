package seq

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/vnykmshr/seqflow/pkg/streaming/channel"
	"github.com/vnykmshr/seqflow/pkg/taskgroup"
)

// Merge interleaves the elements of all upstreams into one sequence.
// Each upstream is pumped by its own goroutine into a watermark channel,
// so a slow consumer suspends every upstream producer. Element order is
// preserved per upstream but unspecified across upstreams.
//
// The merged sequence completes when every upstream has completed. The
// first upstream error cancels the rest and, after buffered elements are
// drained, terminates the merged sequence with that error.
func Merge[T any](seqs ...Seq[T]) Seq[T] {
	ch, src, _ := channel.New(channel.DefaultConfig[T]())
	ctx, cancel := context.WithCancel(context.Background())

	g, _ := taskgroup.New(ctx)
	for _, s := range seqs {
		s := s
		clone := src.Clone()
		g.Go(func(ctx context.Context) error {
			defer s.Close()
			defer clone.Close()
			for {
				v, ok, err := s.Next(ctx)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				if err := clone.Send(ctx, v); err != nil {
					return err
				}
			}
		})
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		err := g.Wait()
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		src.Finish(err)
		src.Close()
	}()

	return &pumpedSeq[T]{it: ch.Iterator(), ch: ch, cancel: cancel, done: done}
}

// pumpedSeq wraps a watermark channel fed by background goroutines. Close
// cancels the pumps and waits for their teardown.
type pumpedSeq[T any] struct {
	it     *channel.Iterator[T]
	ch     *channel.Channel[T]
	cancel context.CancelFunc
	done   chan struct{}
	closed atomic.Bool
}

func (p *pumpedSeq[T]) Next(ctx context.Context) (T, bool, error) {
	return p.it.Next(ctx)
}

func (p *pumpedSeq[T]) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	p.cancel()
	p.it.Close()
	p.ch.Close()
	<-p.done
	return nil
}
