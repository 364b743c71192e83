package distributed

import (
	"context"
	"errors"

	"github.com/vnykmshr/seqflow/pkg/streaming/channel"
)

// Forward pumps queue elements into dst until ctx is cancelled or the
// channel finishes. Elements only leave Redis as fast as the channel's
// consumer drains, so remote producers are throttled by local
// backpressure plus the queue's own depth.
//
// Forward returns nil on cancellation and on channel shutdown; any other
// queue or send failure is returned as-is.
func Forward[T any](ctx context.Context, q *Queue[T], dst *channel.Source[T]) error {
	s := q.Seq()
	defer s.Close()

	for {
		v, ok, err := s.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
		if !ok {
			return nil
		}
		if err := dst.Send(ctx, v); err != nil {
			if errors.Is(err, channel.ErrAlreadyFinished) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}
