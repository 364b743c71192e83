package distributed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	gferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/streaming/channel"
)

type event struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestConfigValidation(t *testing.T) {
	_, err := NewQueue[event](Config{Key: "k"})
	require.Error(t, err)
	require.True(t, gferrors.IsValidationError(err))

	client := redis.NewClient(&redis.Options{})
	defer client.Close()

	_, err = NewQueue[event](Config{Client: client})
	require.Error(t, err)
	require.True(t, errors.Is(err, gferrors.ErrInvalidConfiguration))

	_, err = NewQueue[event](Config{Client: client, Key: "k", PollTimeout: -time.Second})
	require.Error(t, err)

	q, err := NewQueue[event](Config{Client: client, Key: "k"})
	require.NoError(t, err)
	require.Equal(t, time.Second, q.cfg.PollTimeout)
}

// testQueue connects to the Redis at REDIS_ADDR, skipping the test when
// none is configured.
func testQueue(t *testing.T) (*Queue[event], *redis.Client) {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping Redis integration test")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err(), "redis ping")

	key := fmt.Sprintf("seqflow:test:%s:%d", t.Name(), time.Now().UnixNano())
	q, err := NewQueue[event](Config{
		Client:      client,
		Key:         key,
		PollTimeout: 200 * time.Millisecond,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Del(context.Background(), key).Err()
		_ = client.Close()
	})
	return q, client
}

func TestQueuePushAndConsume(t *testing.T) {
	q, _ := testQueue(t)
	ctx := context.Background()

	require.NoError(t, q.PushAll(ctx,
		event{ID: 1, Name: "first"},
		event{ID: 2, Name: "second"},
	))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	s := q.Seq()
	defer s.Close()

	v, ok, err := s.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, event{ID: 1, Name: "first"}, v)

	v, ok, err = s.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, event{ID: 2, Name: "second"}, v)
}

func TestQueueBlockingConsume(t *testing.T) {
	q, _ := testQueue(t)
	ctx := context.Background()

	s := q.Seq()
	defer s.Close()

	got := make(chan event, 1)
	go func() {
		v, ok, err := s.Next(ctx)
		if err == nil && ok {
			got <- v
		}
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, q.Push(ctx, event{ID: 7, Name: "late"}))

	select {
	case v := <-got:
		require.Equal(t, event{ID: 7, Name: "late"}, v)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not receive pushed element")
	}
}

func TestQueueSeqClose(t *testing.T) {
	q, _ := testQueue(t)
	ctx := context.Background()

	s := q.Seq()
	require.NoError(t, s.Close())

	_, ok, err := s.Next(ctx)
	require.NoError(t, err)
	require.False(t, ok, "closed sequence completes cleanly")
}

func TestQueueContextCancellation(t *testing.T) {
	q, _ := testQueue(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := q.Seq()
	defer s.Close()

	_, _, err := s.Next(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestForward(t *testing.T) {
	q, _ := testQueue(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, q.PushAll(ctx,
		event{ID: 1, Name: "a"},
		event{ID: 2, Name: "b"},
		event{ID: 3, Name: "c"},
	))

	ch, src, err := channel.New(channel.DefaultConfig[event]())
	require.NoError(t, err)
	defer ch.Close()

	fwdDone := make(chan error, 1)
	go func() {
		fwdDone <- Forward(ctx, q, src)
	}()

	it := ch.Iterator()
	defer it.Close()

	var got []event
	for i := 0; i < 3; i++ {
		v, ok, err := it.Next(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		got = append(got, v)
	}
	require.Equal(t, "a", got[0].Name)
	require.Equal(t, "c", got[2].Name)

	cancel()
	src.Close()
	require.NoError(t, <-fwdDone)
}
