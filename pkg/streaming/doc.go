/*
Package streaming groups seqflow's asynchronous streaming components.

This package provides four main streaming components:

  - channel: multi-producer, single-consumer channel with watermark backpressure
  - seq: composable pull-based sequence sources, combinators, and terminals
  - distributed: Redis-backed sequence transport between processes
  - schedule: cron- and interval-driven time sequences

Basic usage:

	// Create a backpressured channel
	ch, src, err := channel.New(channel.Config[int]{Low: 16, High: 32})
	defer ch.Close()

	// Produce with suspension at the high watermark
	go func() {
		defer src.Close()
		src.Send(ctx, 42)
	}()

	// Consume through the seq combinators
	s := seq.FromIterator(ch.Iterator())
	values, err := seq.ToSlice(ctx, s)

All components support cancellation through context.Context, deliver a
terminal error after buffered elements are drained, and release their
resources through idempotent Close methods.
*/
package streaming
