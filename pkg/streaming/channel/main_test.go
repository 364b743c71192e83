package channel

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain enables goroutine leak detection for all tests in this package.
// This catches suspended producers or consumers that never resolve.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
