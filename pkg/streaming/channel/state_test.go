package channel

import (
	"testing"

	"github.com/vnykmshr/seqflow/internal/testutil"
)

// The tests in this file drive the shared state machine directly to pin
// down ordering rules that are awkward to reach through the public API.

func TestProducerResumptionIsFIFO(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	ch, src, err := New[int](Config[int]{Low: 0, High: 1})
	testutil.AssertNoError(t, err)
	defer ch.Close()
	defer src.Close()

	_, err = src.TrySend(0)
	testutil.AssertNoError(t, err)

	// Three producers defer in a known order.
	var order []int
	for i := 1; i <= 3; i++ {
		res, err := src.TrySend(i)
		testutil.AssertNoError(t, err)
		token, deferred := res.Token()
		testutil.AssertEqual(t, deferred, true)
		i := i
		src.EnqueueCallback(token, func(err error) {
			if err == nil {
				order = append(order, i)
			}
		})
	}
	testutil.AssertEqual(t, ch.Suspended(), 3)

	it := ch.Iterator()
	defer it.Close()

	// Each dequeue that lands at or below the low watermark resumes
	// exactly the head of the queue. The resumed producer re-sends, so
	// the cycle repeats in registration order.
	_, _, err = it.Next(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(order), 1)
	testutil.AssertEqual(t, order[0], 1)

	_, err = src.TrySend(1)
	testutil.AssertNoError(t, err)
	_, _, err = it.Next(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(order), 2)
	testutil.AssertEqual(t, order[1], 2)

	_, err = src.TrySend(2)
	testutil.AssertNoError(t, err)
	_, _, err = it.Next(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(order), 3)
	testutil.AssertEqual(t, order[2], 3)
}

func TestResumeOnlyAfterDequeue(t *testing.T) {
	ch, src, err := New[int](Config[int]{Low: 2, High: 2})
	testutil.AssertNoError(t, err)
	defer ch.Close()
	defer src.Close()

	_, err = src.TrySend(1)
	testutil.AssertNoError(t, err)
	_, err = src.TrySend(2)
	testutil.AssertNoError(t, err)

	res, err := src.TrySend(3)
	testutil.AssertNoError(t, err)
	token, deferred := res.Token()
	testutil.AssertEqual(t, deferred, true)

	fired := false
	src.EnqueueCallback(token, func(error) { fired = true })

	// Level 2 >= high keeps the producer parked even though level == low.
	// Only a dequeue triggers the resume check.
	testutil.AssertEqual(t, fired, false)
	testutil.AssertEqual(t, ch.Suspended(), 1)
}

func TestTerminationAfterAllHandlesDroppedMidBuffer(t *testing.T) {
	ch, src, err := New[int](Config[int]{Low: 2, High: 8})
	testutil.AssertNoError(t, err)

	fired := 0
	src.OnTermination(func() { fired++ })

	// Buffered elements exist, but once every handle is gone nobody can
	// consume them; teardown must still fire exactly once.
	_, err = src.TrySend(1)
	testutil.AssertNoError(t, err)
	_, err = src.TrySend(2)
	testutil.AssertNoError(t, err)

	it := ch.Iterator()
	src.Close()
	it.Close()
	testutil.AssertEqual(t, fired, 0)
	ch.Close()
	testutil.AssertEqual(t, fired, 1)
}

func TestOnTerminationInstalledAfterTeardown(t *testing.T) {
	ch, src, err := New[int](Config[int]{Low: 0, High: 4})
	testutil.AssertNoError(t, err)

	ch.Close()
	src.Close()

	fired := 0
	src.OnTermination(func() { fired++ })
	testutil.AssertEqual(t, fired, 1)
}
