package testutil

import (
	"context"
	"testing"
	"time"
)

// TestTimeout is the default timeout for tests
const TestTimeout = 5 * time.Second

// WithTimeout creates a context with the default test timeout
func WithTimeout(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), TestTimeout)
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error, msg ...string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%sunexpected error: %v", prefix(msg), err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error, msg ...string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%sexpected error, got nil", prefix(msg))
	}
}

// AssertEqual fails the test if the two values differ
func AssertEqual[T comparable](t *testing.T, expected, actual T, msg ...string) {
	t.Helper()
	if expected != actual {
		t.Fatalf("%sexpected %v, got %v", prefix(msg), expected, actual)
	}
}

// Eventually polls cond until it returns true or the deadline passes.
func Eventually(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func prefix(msg []string) string {
	if len(msg) == 0 {
		return ""
	}
	return msg[0] + ": "
}
