package seq

import "context"

// Pair holds one element from each side of a zipped sequence.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip2 pairs elements of a and b positionally. The zipped sequence
// completes as soon as either side completes; an error from either side
// terminates it.
func Zip2[A, B any](a Seq[A], b Seq[B]) Seq[Pair[A, B]] {
	return &zipSeq[A, B]{a: a, b: b}
}

// Zip is Zip2 for two sequences of the same element type.
func Zip[T any](a, b Seq[T]) Seq[Pair[T, T]] {
	return Zip2(a, b)
}

type zipSeq[A, B any] struct {
	a Seq[A]
	b Seq[B]
}

func (z *zipSeq[A, B]) Next(ctx context.Context) (Pair[A, B], bool, error) {
	var zero Pair[A, B]

	av, ok, err := z.a.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	bv, ok, err := z.b.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	return Pair[A, B]{First: av, Second: bv}, true, nil
}

func (z *zipSeq[A, B]) Close() error {
	z.a.Close()
	z.b.Close()
	return nil
}
