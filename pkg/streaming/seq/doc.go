/*
Package seq provides composable pull-based asynchronous sequences.

A Seq yields elements one at a time through Next, which suspends on the
supplied context until an element, clean completion (ok == false), or a
terminal error is available:

	s := seq.FromSlice([]int{1, 2, 3})
	for {
		v, ok, err := s.Next(ctx)
		if err != nil || !ok {
			break
		}
		process(v)
	}

Sequences are single-consumer: calling Next concurrently from multiple
goroutines is a protocol violation. Fan-in and fan-out are done with the
combinators instead. Merge and SwitchLatest run their upstreams
concurrently and meter delivery through a watermark channel, so slow
consumers propagate backpressure to every upstream producer.

Transforming combinators (Chain, Zip2, Intersperse, DropDuplicates,
Reductions, Throttle) are synchronous wrappers that pull on demand and
spawn no goroutines. Terminals (ToSlice, Each, Drain) consume a sequence
to completion and close it.
*/
package seq
