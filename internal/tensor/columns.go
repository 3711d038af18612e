package tensor

import (
	"fmt"
	"iter"
)

// ColumnLen returns the length of one column: the last dimension, 1 for a scalar.
func (a *Array[T]) ColumnLen() int {
	if len(a.shape) == 0 {
		return 1
	}
	return a.shape[len(a.shape)-1]
}

// NumColumns returns the number of columns.
func (a *Array[T]) NumColumns() int {
	return len(a.data) / a.ColumnLen()
}

// Columns yields every contiguous run along the last axis, in row-major
// order, with its position. The slices alias the array and are capped to the
// column, so appending to one never overwrites the next.
//
// The sequence is lazy and can be ranged over any number of times.
func (a *Array[T]) Columns() iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		w := a.ColumnLen()
		for i := range len(a.data) / w {
			if !yield(i, a.data[i*w:(i+1)*w:(i+1)*w]) {
				return
			}
		}
	}
}

// Column returns the column addressed by the coordinates of every axis but
// the last.
func (a *Array[T]) Column(leading ...int) ([]T, error) {
	if len(a.shape) == 0 {
		if len(leading) != 0 {
			return nil, fmt.Errorf("%w: scalar has no leading axes, got %d coordinates", ErrIndexOutOfBounds, len(leading))
		}
		return a.data[:1:1], nil
	}

	r := len(a.shape) - 1
	start, err := Index(a.shape[:r], a.shape.Strides()[:r], leading)
	if err != nil {
		return nil, err
	}
	w := a.shape[r]
	return a.data[start : start+w : start+w], nil
}
