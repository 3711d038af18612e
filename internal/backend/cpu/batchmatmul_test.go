package cpu

import (
	"math"
	"testing"

	"github.com/born-ml/ndarray/internal/parallel"
)

// TestBatchMatMul_3D_Basic tests basic batched matmul with distinct slices.
func TestBatchMatMul_3D_Basic(t *testing.T) {
	// [2, 3, 4] @ [2, 4, 5] -> [2, 3, 5]
	const batch, m, k, n = 2, 3, 4, 5
	a := make([]float32, batch*m*k)
	b := make([]float32, batch*k*n)
	for i := range a {
		a[i] = float32(i + 1)
	}
	for i := range b {
		b[i] = float32(i + 1)
	}

	batches := []Batch{
		{A: 0, B: 0, C: 0},
		{A: m * k, B: k * n, C: m * n},
	}
	c := make([]float32, batch*m*n)
	BatchMatMul(c, a, b, batches, m, k, n, RowConfig())

	want := make([]float32, m*n)
	for bi, bt := range batches {
		MatMul(want, a[bt.A:bt.A+m*k], b[bt.B:bt.B+k*n], m, k, n)
		for i, v := range want {
			if got := c[bt.C+i]; got != v {
				t.Errorf("batch %d element %d: expected %f, got %f", bi, i, v, got)
			}
		}
	}
}

// TestBatchMatMul_BroadcastRight reuses one right operand for every batch.
func TestBatchMatMul_BroadcastRight(t *testing.T) {
	const m, k, n = 8, 16, 8
	a := make([]float64, 4*m*k)
	for i := range a {
		a[i] = 1.0
	}
	b := make([]float64, k*n)
	for i := range b {
		b[i] = 1.0
	}

	batches := make([]Batch, 4)
	for i := range batches {
		batches[i] = Batch{A: i * m * k, B: 0, C: i * m * n}
	}
	c := make([]float64, 4*m*n)
	BatchMatMul(c, a, b, batches, m, k, n, parallel.Config{Enabled: true, NumWorkers: 3, MinChunkSize: 1})

	// For all 1s input, each output element should be sum of K elements = 16
	for i, val := range c {
		if math.Abs(val-16.0) > 1e-12 {
			t.Errorf("Element %d: expected 16, got %f", i, val)
		}
	}
}

// TestBatchMatMul_OffsetOutOfRange tests offset validation.
func TestBatchMatMul_OffsetOutOfRange(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for out-of-range batch offset")
		}
	}()

	a := make([]int64, 4)
	b := make([]int64, 4)
	c := make([]int64, 4)
	BatchMatMul(c, a, b, []Batch{{A: 1, B: 0, C: 0}}, 2, 2, 2, RowConfig())
}
