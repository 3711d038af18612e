package tensor

import (
	"github.com/born-ml/ndarray/internal/parallel"
)

// ArgMax collapses the last axis to the index of its largest element.
// Ties resolve to the first index. The result has the leading dimensions
// of a; a vector or scalar yields a scalar.
func (a *Array[T]) ArgMax() (*Array[int64], error) {
	return a.argReduce(func(best, v T) bool { return v > best })
}

// ArgMin collapses the last axis to the index of its smallest element.
// Ties resolve to the first index.
func (a *Array[T]) ArgMin() (*Array[int64], error) {
	return a.argReduce(func(best, v T) bool { return v < best })
}

func (a *Array[T]) argReduce(better func(best, v T) bool) (*Array[int64], error) {
	if len(a.data) == 0 {
		return nil, ErrEmptyArray
	}

	var shape Shape
	if len(a.shape) > 0 {
		shape = a.shape[:len(a.shape)-1].Clone()
	}

	w := a.ColumnLen()
	out := make([]int64, len(a.data)/w)
	parallel.For(len(out), func(i int) {
		col := a.data[i*w : (i+1)*w]
		best := 0
		for j, v := range col {
			if better(col[best], v) {
				best = j
			}
		}
		out[i] = int64(best)
	}, parallel.DefaultConfig().WithMinChunk(64))

	return &Array[int64]{shape: shape, data: out}, nil
}
