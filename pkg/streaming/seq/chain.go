package seq

import "context"

// Chain concatenates sequences, yielding all elements of the first, then
// the second, and so on. An error from any upstream terminates the chain.
func Chain[T any](seqs ...Seq[T]) Seq[T] {
	return &chainSeq[T]{seqs: seqs}
}

type chainSeq[T any] struct {
	seqs []Seq[T]
	pos  int
}

func (c *chainSeq[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for c.pos < len(c.seqs) {
		v, ok, err := c.seqs[c.pos].Next(ctx)
		if err != nil {
			return zero, false, err
		}
		if ok {
			return v, true, nil
		}
		c.seqs[c.pos].Close()
		c.pos++
	}
	return zero, false, nil
}

func (c *chainSeq[T]) Close() error {
	for ; c.pos < len(c.seqs); c.pos++ {
		c.seqs[c.pos].Close()
	}
	return nil
}
