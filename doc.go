/*
Package seqflow provides composable asynchronous sequences and concurrency
primitives for Go, built around a backpressure-controlled multi-producer /
single-consumer channel.

Streaming (pkg/streaming):
  - channel: Watermark-based backpressure channel (many producers, one consumer)
  - seq: Pull-based sequence operators (chain, merge, zip, reductions, ...)
  - distributed: Redis-backed sequence transport
  - schedule: Cron and interval timer sequences

Concurrency (pkg/taskgroup):
  - Group: Structured task groups with fail-fast cancellation
  - Race, Retry, WithTimeout: Composition helpers for suspending operations

Example usage:

	import (
		"github.com/vnykmshr/seqflow/pkg/streaming/channel"
		"github.com/vnykmshr/seqflow/pkg/streaming/seq"
	)

	ch, src, _ := channel.New[int](channel.Config[int]{Low: 2, High: 4})

	go func() {
		defer src.Close()
		for i := 0; i < 100; i++ {
			src.Send(ctx, i) // suspends past the high watermark
		}
	}()

	it := ch.Iterator()
	defer it.Close()
	for {
		v, ok, err := it.Next(ctx)
		if !ok || err != nil {
			break
		}
		process(v)
	}
*/
package seqflow
