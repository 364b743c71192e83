package taskgroup

import (
	"context"
	"sync"
)

// Race runs all tasks concurrently and returns the result of the first one
// to succeed. The contexts of the remaining tasks are cancelled immediately
// upon the first success.
//
// If every task fails, Race returns the zero value and the last error
// observed. If ctx is cancelled before any task succeeds, Race returns
// ctx.Err(). An empty task list returns the zero value and nil.
func Race[T any](ctx context.Context, tasks ...func(context.Context) (T, error)) (T, error) {
	var zero T
	if len(tasks) == 0 {
		return zero, nil
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		val T
		err error
	}

	// Buffered so losers can report without blocking after the winner is
	// picked up.
	results := make(chan outcome, len(tasks))

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for _, fn := range tasks {
		go func(fn func(context.Context) (T, error)) {
			defer wg.Done()
			val, err := fn(raceCtx)
			results <- outcome{val: val, err: err}
		}(fn)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var lastErr error
	for res := range results {
		if res.err == nil {
			cancel()
			// Drain remaining outcomes so the closer goroutine exits.
			go func() {
				for range results { //nolint:revive
				}
			}()
			return res.val, nil
		}
		lastErr = res.err
	}

	if ctx.Err() != nil {
		return zero, ctx.Err()
	}
	return zero, lastErr
}
