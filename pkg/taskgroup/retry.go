package taskgroup

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/seqflow/pkg/metrics"
)

// RetryConfig controls Retry's backoff schedule.
type RetryConfig struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int
	// InitialDelay is the pause after the first failure. Each subsequent
	// pause doubles, capped at MaxDelay.
	InitialDelay time.Duration
	MaxDelay     time.Duration
	// RetryIf decides whether an error is worth another attempt. Nil means
	// retry everything; errors.IsRetryable is a common choice.
	RetryIf func(error) bool
	// Metrics and Operation attach a Prometheus attempt counter, labelled
	// by Operation.
	Metrics   metrics.Config
	Operation string
}

// DefaultRetryConfig retries up to 3 times with delays of 100ms and 200ms.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     5 * time.Second,
	}
}

// Retry runs fn until it succeeds, the attempts are exhausted, or ctx is
// cancelled. It returns nil on success, ctx.Err() on cancellation, and
// otherwise the error from the final attempt.
func Retry(ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) error) error {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	var attempts prometheus.Counter
	if cfg.Metrics.Enabled {
		op := cfg.Operation
		if op == "" {
			op = "retry"
		}
		attempts = metrics.ForConfig(cfg.Metrics).RetryAttempts.WithLabelValues(op)
	}

	delay := cfg.InitialDelay
	var err error
	for attempt := 1; ; attempt++ {
		if attempts != nil {
			attempts.Inc()
		}
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt >= cfg.MaxAttempts {
			return err
		}
		if cfg.RetryIf != nil && !cfg.RetryIf(err) {
			return err
		}
		if serr := sleep(ctx, delay); serr != nil {
			return serr
		}
		delay *= 2
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
}

// RetryValue is Retry for operations that produce a value.
func RetryValue[T any](ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) (T, error)) (T, error) {
	var val T
	err := Retry(ctx, cfg, func(ctx context.Context) error {
		var ferr error
		val, ferr = fn(ctx)
		return ferr
	})
	return val, err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
