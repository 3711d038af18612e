package cpu

import (
	"fmt"

	"github.com/born-ml/ndarray/internal/parallel"
)

// Region is a half-open rectangle of output cells: rows [Row0, Row1), cols [Col0, Col1).
type Region struct {
	Row0, Row1 int
	Col0, Col1 int
}

// Empty reports whether the region has no cells.
func (r Region) Empty() bool {
	return r.Row0 >= r.Row1 || r.Col0 >= r.Col1
}

// Cells returns the number of cells in the region.
func (r Region) Cells() int {
	if r.Empty() {
		return 0
	}
	return (r.Row1 - r.Row0) * (r.Col1 - r.Col0)
}

// MatMul computes C = A @ B for row-major A [m,k], B [k,n], C [m,n].
// C is fully overwritten.
func MatMul[T Number](c, a, b []T, m, k, n int) {
	checkOperands(len(c), len(a), len(b), m, k, n)

	for i := 0; i < m; i++ {
		rowKernel(c[i*n:(i+1)*n], a[i*k:(i+1)*k], b, n, 0, n)
	}
}

// MatMulRegion computes only the cells of C inside r, leaving every other cell untouched.
// Rows of the region are spread over goroutines.
func MatMulRegion[T Number](c, a, b []T, m, k, n int, r Region, cfg parallel.Config) {
	checkOperands(len(c), len(a), len(b), m, k, n)
	if r.Row0 < 0 || r.Col0 < 0 || r.Row1 > m || r.Col1 > n {
		panic(fmt.Sprintf("matmul: region %+v outside [%d,%d]", r, m, n))
	}
	if r.Empty() {
		return
	}

	parallel.For(r.Row1-r.Row0, func(di int) {
		i := r.Row0 + di
		rowKernel(c[i*n:(i+1)*n], a[i*k:(i+1)*k], b, n, r.Col0, r.Col1)
	}, cfg)
}

// rowKernel fills cRow[col0:col1] with the dot products of aRow and the columns of b.
// aRow and cRow are pre-sliced so the inner loop indexes validated views.
func rowKernel[T Number](cRow, aRow, b []T, n, col0, col1 int) {
	for j := col0; j < col1; j++ {
		var sum T
		for l, av := range aRow {
			sum += av * b[l*n+j]
		}
		cRow[j] = sum
	}
}

func checkOperands(lc, la, lb, m, k, n int) {
	if m < 0 || k < 0 || n < 0 {
		panic(fmt.Sprintf("matmul: negative dimension [%d,%d,%d]", m, k, n))
	}
	if la < m*k || lb < k*n || lc < m*n {
		panic(fmt.Sprintf("matmul: operands too short for [%d,%d] @ [%d,%d]: len(a)=%d len(b)=%d len(c)=%d",
			m, k, k, n, la, lb, lc))
	}
}
