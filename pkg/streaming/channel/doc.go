/*
Package channel provides a backpressure-controlled multi-producer,
single-consumer channel with watermark flow control.

Unlike Go's built-in channels, capacity is not a fixed element count: flow
control is driven by a low/high watermark pair over the cumulative weight of
buffered elements. Producers keep sending while the water level is below the
high watermark; once the level reaches it, further sends are deferred until
a consumer drains the level down to the low watermark. The gap between the
two watermarks provides hysteresis, so producers and consumer do not
thrash around a single threshold.

Construction returns two capability handles over one shared state:

	ch, src, err := channel.New[int](channel.Config[int]{Low: 2, High: 4})
	if err != nil {
		// invalid watermark configuration
	}

Producing:

The Source is cheap to clone and safe to share across goroutines. The
suspending form is what most producers want:

	go func() {
		defer src.Close()
		for _, v := range inputs {
			if err := src.Send(ctx, v); err != nil {
				return // channel finished or ctx cancelled
			}
		}
	}()

The non-suspending form exposes the flow-control machinery directly. When a
send is deferred, the element is not admitted; register the returned token
and retry after the callback resolves:

	res, err := src.TrySend(v)
	if err == nil {
		if token, deferred := res.Token(); deferred {
			src.EnqueueCallback(token, func(err error) {
				// err == nil: water level reached the low watermark,
				// send v again
			})
		}
	}

Consuming:

	it := ch.Iterator()
	defer it.Close()
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			// terminal error from Finish, delivered exactly once
			break
		}
		if !ok {
			break // clean completion
		}
		process(v)
	}

Ordering:

Element delivery is FIFO by the order sends commit inside the channel's
critical section, and suspended producers resume FIFO by suspension order.
Per-producer send order is always preserved.

Lifecycle:

Finish(err) stops the channel: no further sends are accepted, the buffer
drains, and the terminal result (nil or err) is delivered to the consumer
exactly once. Dropping the last Source via Close finishes the channel
cleanly; dropping every handle tears the channel down and fires the
OnTermination callback, which runs exactly once per channel in every
ordering of explicit finish versus handle drops.

Weights:

Config.Weight assigns each element a non-negative cost, so the watermarks
can bound bytes or rows rather than element count:

	cfg := channel.Config[[]byte]{
		Low:    4 << 10,
		High:   64 << 10,
		Weight: func(b []byte) int { return len(b) },
	}

Note that a send admitted below the high watermark may carry the level past
it; memory is bounded by High plus one element's weight, not by High.

The single consumer contract:

One Iterator at a time should drive Next. Concurrent Next calls on the same
Iterator panic; a second iterator attempting to wait while another wait is
pending panics as well. This is a deliberate runtime guard rather than an
unguarded race.
*/
package channel
