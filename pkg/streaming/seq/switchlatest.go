package seq

import (
	"context"
	"errors"

	"github.com/vnykmshr/seqflow/pkg/streaming/channel"
)

// SwitchLatest projects every element of outer into an inner sequence and
// yields elements from the most recent inner only. When a new outer
// element arrives, the superseded inner sequence is cancelled and closed
// before the new one starts, so at most one inner is active at a time.
// Elements a superseded inner had already pushed through the watermark
// channel are still delivered, ahead of the new inner's elements.
//
// The switched sequence completes when outer has completed and the final
// inner has completed. An error from outer or from an active inner
// terminates the sequence.
func SwitchLatest[T, R any](outer Seq[T], project func(T) Seq[R]) Seq[R] {
	ch, src, _ := channel.New(channel.DefaultConfig[R]())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer src.Close()
		defer outer.Close()

		var (
			innerCancel context.CancelFunc
			innerDone   chan struct{}
		)
		// cancelInner supersedes the active inner; waitInner lets it run
		// to completion.
		cancelInner := func() {
			if innerCancel != nil {
				innerCancel()
				<-innerDone
				innerCancel = nil
			}
		}
		waitInner := func() {
			if innerCancel != nil {
				<-innerDone
				innerCancel()
				innerCancel = nil
			}
		}

		for {
			v, ok, err := outer.Next(ctx)
			if err != nil {
				cancelInner()
				if !errors.Is(err, context.Canceled) {
					src.Finish(err)
				}
				return
			}
			if !ok {
				waitInner()
				return
			}

			cancelInner()
			ictx, icancel := context.WithCancel(ctx)
			innerCancel = icancel
			innerDone = make(chan struct{})
			go pumpInner(ictx, project(v), src.Clone(), innerDone)
		}
	}()

	return &pumpedSeq[R]{it: ch.Iterator(), ch: ch, cancel: cancel, done: done}
}

// pumpInner forwards one inner sequence into the shared channel until the
// inner completes, fails, or its context is cancelled by a newer outer
// element.
func pumpInner[R any](ctx context.Context, inner Seq[R], src *channel.Source[R], innerDone chan<- struct{}) {
	defer close(innerDone)
	defer inner.Close()
	defer src.Close()

	for {
		v, ok, err := inner.Next(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				src.Finish(err)
			}
			return
		}
		if !ok {
			return
		}
		if err := src.Send(ctx, v); err != nil {
			return
		}
	}
}
