package distributed

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	gferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/streaming/seq"
)

// Config describes a Redis-backed queue.
type Config struct {
	// Client is the Redis connection. Required.
	Client redis.UniversalClient
	// Key is the Redis list holding the queue. Required.
	Key string
	// PollTimeout bounds each BLPOP call so a closed consumer stops
	// within one poll interval. Defaults to 1s.
	PollTimeout time.Duration
}

func (c Config) validate() error {
	if c.Client == nil {
		return gferrors.NewValidationError("distributed", "Client", nil, "must not be nil").
			WithHint("pass a connected redis.UniversalClient")
	}
	if c.Key == "" {
		return gferrors.NewValidationError("distributed", "Key", c.Key, "must not be empty")
	}
	if c.PollTimeout < 0 {
		return gferrors.NewValidationError("distributed", "PollTimeout", c.PollTimeout, "must not be negative")
	}
	return nil
}

// Queue is a Redis-list-backed hand-off for elements of type T. Elements
// are JSON-encoded, so T must marshal cleanly.
type Queue[T any] struct {
	cfg Config
}

// NewQueue validates cfg and returns a queue handle. The handle is cheap
// and stateless; any number of processes may push to and consume from the
// same key.
func NewQueue[T any](cfg Config) (*Queue[T], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.PollTimeout == 0 {
		cfg.PollTimeout = time.Second
	}
	return &Queue[T]{cfg: cfg}, nil
}

// Push appends v to the queue.
func (q *Queue[T]) Push(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return gferrors.NewOperationError("distributed", "Push", err)
	}
	if err := q.cfg.Client.RPush(ctx, q.cfg.Key, data).Err(); err != nil {
		return gferrors.NewOperationError("distributed", "Push", err).WithContext(q.cfg.Key)
	}
	return nil
}

// PushAll appends each value in order.
func (q *Queue[T]) PushAll(ctx context.Context, values ...T) error {
	for _, v := range values {
		if err := q.Push(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

// Len reports the number of queued elements.
func (q *Queue[T]) Len(ctx context.Context) (int64, error) {
	n, err := q.cfg.Client.LLen(ctx, q.cfg.Key).Result()
	if err != nil {
		return 0, gferrors.NewOperationError("distributed", "Len", err).WithContext(q.cfg.Key)
	}
	return n, nil
}

// Seq returns a sequence of queue elements. The sequence never completes
// on its own; it blocks (via BLPOP) until an element arrives, the context
// is cancelled, or the sequence is closed. Close takes effect within one
// PollTimeout.
func (q *Queue[T]) Seq() seq.Seq[T] {
	return &queueSeq[T]{q: q}
}

type queueSeq[T any] struct {
	q      *Queue[T]
	closed atomic.Bool
}

func (s *queueSeq[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for {
		if s.closed.Load() {
			return zero, false, nil
		}
		if err := ctx.Err(); err != nil {
			return zero, false, err
		}

		res, err := s.q.cfg.Client.BLPop(ctx, s.q.cfg.PollTimeout, s.q.cfg.Key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return zero, false, ctx.Err()
			}
			return zero, false, gferrors.NewOperationError("distributed", "Next", err).WithContext(s.q.cfg.Key)
		}

		// BLPOP returns [key, value].
		var v T
		if err := json.Unmarshal([]byte(res[1]), &v); err != nil {
			return zero, false, gferrors.NewOperationError("distributed", "Next", err).WithContext(s.q.cfg.Key)
		}
		return v, true, nil
	}
}

func (s *queueSeq[T]) Close() error {
	s.closed.Store(true)
	return nil
}
