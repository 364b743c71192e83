package seq

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/seqflow/pkg/metrics"
)

// Instrumented wraps src with Prometheus counters for yielded elements and
// terminal errors, labelled by name. With metrics disabled src is returned
// unchanged.
func Instrumented[T any](src Seq[T], config metrics.Config, name string) Seq[T] {
	if !config.Enabled {
		return src
	}

	registry := metrics.ForConfig(config)
	return &countedSeq[T]{
		src:   src,
		items: registry.SeqItems.WithLabelValues(name),
		errs:  registry.SeqErrors.WithLabelValues(name),
	}
}

type countedSeq[T any] struct {
	src   Seq[T]
	items prometheus.Counter
	errs  prometheus.Counter
}

func (c *countedSeq[T]) Next(ctx context.Context) (T, bool, error) {
	v, ok, err := c.src.Next(ctx)
	switch {
	case err != nil:
		c.errs.Inc()
	case ok:
		c.items.Inc()
	}
	return v, ok, err
}

func (c *countedSeq[T]) Close() error {
	return c.src.Close()
}
