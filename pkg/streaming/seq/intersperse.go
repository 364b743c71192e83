package seq

import "context"

// Intersperse yields sep between every two consecutive elements of src.
// Empty and single-element sequences pass through unchanged.
func Intersperse[T any](src Seq[T], sep T) Seq[T] {
	return &intersperseSeq[T]{src: src, sep: sep}
}

type intersperseSeq[T any] struct {
	src Seq[T]
	sep T

	started    bool
	pending    T
	hasPending bool
}

func (s *intersperseSeq[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if s.hasPending {
		s.hasPending = false
		return s.pending, true, nil
	}

	v, ok, err := s.src.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	if !s.started {
		s.started = true
		return v, true, nil
	}

	// Hold the element; emit the separator first.
	s.pending, s.hasPending = v, true
	return s.sep, true, nil
}

func (s *intersperseSeq[T]) Close() error {
	return s.src.Close()
}
