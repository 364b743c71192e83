/*
Package taskgroup provides structured concurrency helpers used throughout
seqflow: task groups with fail-fast cancellation, first-success racing,
retry with exponential backoff, and deadline wrappers.

A Group ties a set of goroutines to one context. The first task failure
cancels the rest; Wait returns that first error:

	g, ctx := taskgroup.New(ctx)
	g.Go(func(ctx context.Context) error { return produce(ctx) })
	g.Go(func(ctx context.Context) error { return consume(ctx) })
	if err := g.Wait(); err != nil {
		// first failure, or a PanicError if a task panicked
	}

Race runs tasks concurrently and returns the first success, cancelling the
losers. Retry re-runs an operation with doubling delays. WithTimeout bounds
one suspending operation, surfacing errors.ErrTimeout on expiry so callers
can compose the channel's suspending operations with deadlines.
*/
package taskgroup
