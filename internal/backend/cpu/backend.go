// Package cpu implements the CPU matmul kernels.
//
// The kernels work on flat row-major slices and know nothing about shapes or
// broadcasting; the tensor package maps arrays onto them, and the GPU engine
// uses MatMulRegion for the cells its shader cannot reach.
package cpu

import "github.com/born-ml/ndarray/internal/parallel"

// Number is the set of element types the kernels accept.
type Number interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint32
}

// RowConfig returns the parallel config used when whole output rows are the
// unit of work.
func RowConfig() parallel.Config {
	return parallel.DefaultConfig().WithMinChunk(4)
}
