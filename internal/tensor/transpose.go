package tensor

import (
	"github.com/born-ml/ndarray/internal/backend/cpu"
	"github.com/born-ml/ndarray/internal/parallel"
)

// Transpose returns a new array with the last two axes swapped and the data
// physically reordered. Leading axes are batches and keep their order.
// Scalars and vectors are returned as copies.
func (a *Array[T]) Transpose() *Array[T] {
	if len(a.shape) < 2 {
		return a.Clone()
	}

	r := len(a.shape)
	rows, cols := a.shape[r-2], a.shape[r-1]
	shape := a.shape.Clone()
	shape[r-2], shape[r-1] = cols, rows

	out := make([]T, len(a.data))
	plane := rows * cols
	parallel.ForBatch(len(a.data)/plane, rows, func(b, i int) {
		src := a.data[b*plane+i*cols : b*plane+(i+1)*cols]
		dst := out[b*plane : (b+1)*plane]
		for j, v := range src {
			dst[j*rows+i] = v
		}
	}, cpu.RowConfig())

	return &Array[T]{shape: shape, data: out}
}
