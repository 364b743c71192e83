/*
Package distributed provides Redis-backed sequence transport.

A Queue is a named Redis list carrying JSON-encoded elements. Push appends
on one process; Seq yields on another, blocking on BLPOP so consumers see
elements promptly without busy polling:

	q, err := distributed.NewQueue[Event](distributed.Config{
		Client: redisClient,
		Key:    "events",
	})
	...
	s := q.Seq()
	defer s.Close()
	for {
		ev, ok, err := s.Next(ctx)
		...
	}

Forward bridges a queue into a local watermark channel, so elements pulled
from Redis obey the consumer's backpressure before they reach application
code.
*/
package distributed
