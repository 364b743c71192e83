package seq

import "context"

// Reductions yields the running accumulation of src: for every upstream
// element it applies fn to the accumulator and emits the new value. The
// initial accumulator itself is not emitted.
func Reductions[T, R any](src Seq[T], initial R, fn func(acc R, v T) R) Seq[R] {
	return &reductionsSeq[T, R]{src: src, acc: initial, fn: fn}
}

type reductionsSeq[T, R any] struct {
	src Seq[T]
	acc R
	fn  func(R, T) R
}

func (r *reductionsSeq[T, R]) Next(ctx context.Context) (R, bool, error) {
	var zero R
	v, ok, err := r.src.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	r.acc = r.fn(r.acc, v)
	return r.acc, true, nil
}

func (r *reductionsSeq[T, R]) Close() error {
	return r.src.Close()
}
