package converter

import "iter"

// MapSeq lazily converts every element of seq with convert.
func MapSeq[E any, R any](seq iter.Seq2[E, error], convert func(*E) *R) iter.Seq2[R, error] {
	return func(yield func(R, error) bool) {
		for item, err := range seq {
			if err != nil {
				var zero R
				yield(zero, err)
				return
			}
			if !yield(*convert(&item), nil) {
				return
			}
		}
	}
}

// Collect drains seq into a slice, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	items := make([]T, 0)
	for item, err := range seq {
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
