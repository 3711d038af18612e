package cpu

import (
	"fmt"

	"github.com/born-ml/ndarray/internal/parallel"
)

// Batch holds the element offsets of one batch slice in A, B and C.
// Broadcast operands repeat the same A or B offset across batches.
type Batch struct {
	A, B, C int
}

// BatchMatMul performs one [m,k] @ [k,n] product per entry of batches.
// Work is split over batch*m output rows, so broadcasting across a large
// batch and a single large matrix both parallelize.
func BatchMatMul[T Number](c, a, b []T, batches []Batch, m, k, n int, cfg parallel.Config) {
	for i, bt := range batches {
		if bt.A < 0 || bt.B < 0 || bt.C < 0 ||
			bt.A+m*k > len(a) || bt.B+k*n > len(b) || bt.C+m*n > len(c) {
			panic(fmt.Sprintf("BatchMatMul: batch %d offsets %+v out of range for [%d,%d] @ [%d,%d]", i, bt, m, k, k, n))
		}
	}

	parallel.ForBatch(len(batches), m, func(bi, i int) {
		bt := batches[bi]
		cRow := c[bt.C+i*n : bt.C+(i+1)*n]
		aRow := a[bt.A+i*k : bt.A+(i+1)*k]
		rowKernel(cRow, aRow, b[bt.B:bt.B+k*n], n, 0, n)
	}, cfg)
}
