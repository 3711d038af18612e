package tensor

import (
	"fmt"
	"unsafe"

	"github.com/born-ml/ndarray/internal/backend/cpu"
	"github.com/born-ml/ndarray/internal/compute"
	"github.com/born-ml/ndarray/internal/envconfig"
	"github.com/born-ml/ndarray/internal/gpu"
)

// matmulPlan maps a broadcast matmul onto per-batch [m,k] @ [k,n] products.
type matmulPlan struct {
	m, k, n int
	batches []cpu.Batch
	shape   Shape
}

func (p *matmulPlan) work() int {
	return p.m * p.k * p.n * len(p.batches)
}

// planMatMul derives the product of shapes a and b.
//
// A vector on the left is a single row and one on the right a single column;
// the corresponding axis is dropped from the result. Axes before the last
// two are batch axes, broadcast against each other from the right, so a
// vector or matrix operand repeats across every batch of a tensor operand.
func planMatMul(a, b Shape) (*matmulPlan, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, fmt.Errorf("%w: matmul of %v and %v: scalar operand", ErrShapeMismatch, []int(a), []int(b))
	}

	aMat, bMat := a, b
	if len(a) == 1 {
		aMat = Shape{1, a[0]}
	}
	if len(b) == 1 {
		bMat = Shape{b[0], 1}
	}

	m, k := aMat[len(aMat)-2], aMat[len(aMat)-1]
	n := bMat[len(bMat)-1]
	if bk := bMat[len(bMat)-2]; bk != k {
		return nil, fmt.Errorf("%w: matmul of %v and %v: inner dimensions %d and %d",
			ErrShapeMismatch, []int(a), []int(b), k, bk)
	}

	aBatch, bBatch := aMat[:len(aMat)-2], bMat[:len(bMat)-2]
	batch, err := BroadcastShapes(aBatch, bBatch)
	if err != nil {
		return nil, fmt.Errorf("matmul of %v and %v: batch axes: %w", []int(a), []int(b), err)
	}

	shape := batch.Clone()
	if len(a) > 1 {
		shape = append(shape, m)
	}
	if len(b) > 1 {
		shape = append(shape, n)
	}

	p := &matmulPlan{m: m, k: k, n: n, shape: shape, batches: make([]cpu.Batch, batch.Span())}
	aStrides, bStrides := broadcastStrides(aBatch, batch), broadcastStrides(bBatch, batch)
	coords := make([]int, len(batch))
	for i := range p.batches {
		var ai, bi int
		for d, c := range coords {
			ai += c * aStrides[d]
			bi += c * bStrides[d]
		}
		p.batches[i] = cpu.Batch{A: ai * m * k, B: bi * k * n, C: i * m * n}

		for d := len(coords) - 1; d >= 0; d-- {
			if coords[d]++; coords[d] < batch[d] {
				break
			}
			coords[d] = 0
		}
	}
	return p, nil
}

// broadcastStrides returns the batch strides of s aligned to target, with
// zero for axes s lacks or holds at size 1.
func broadcastStrides(s, target Shape) []int {
	strides := make([]int, len(target))
	own := s.Strides()
	off := len(target) - len(s)
	for i, dim := range s {
		if dim != 1 {
			strides[off+i] = own[i]
		}
	}
	return strides
}

// MatMul computes a @ b into out, on the GPU when the default executor is
// available and the product is a large enough float32 one, otherwise on the
// CPU. See MatMulOn for how failures leave out.
func (a *Array[T]) MatMul(b, out *Array[T]) error {
	p, err := planMatMul(a.shape, b.shape)
	if err != nil {
		return err
	}

	exec, err := gpu.Default()
	if err != nil || DataTypeOf[T]() != Float32 || p.work() < int(envconfig.GPUMinWork()) {
		exec = nil
	}
	return a.matmul(p, b, out, exec)
}

// MatMul returns a @ b in a new array. See Array.MatMul.
func MatMul[T DType](a, b *Array[T]) (*Array[T], error) {
	out := &Array[T]{}
	if err := a.MatMul(b, out); err != nil {
		return nil, err
	}
	return out, nil
}

// MatMulOn computes a @ b into out on exec.
//
// Products whose element type has float32 as its underlying type run every
// batch on the GPU engine; other element types run on the CPU. A nil exec fails with compute.ErrNoExecutor.
//
// out is reshaped to the result. On any error, including ErrShapeMismatch and
// device failures, out is left untouched.
func MatMulOn[T DType](exec *gpu.Executor, a, b, out *Array[T]) error {
	if exec == nil {
		return fmt.Errorf("%w: no executor given", compute.ErrNoExecutor)
	}
	p, err := planMatMul(a.shape, b.shape)
	if err != nil {
		return err
	}
	return a.matmul(p, b, out, exec)
}

// MatMulCPU computes a @ b into out on the CPU.
func MatMulCPU[T DType](a, b, out *Array[T]) error {
	p, err := planMatMul(a.shape, b.shape)
	if err != nil {
		return err
	}
	return a.matmul(p, b, out, nil)
}

func (a *Array[T]) matmul(p *matmulPlan, b, out *Array[T], exec *gpu.Executor) error {
	scratch := make([]T, p.shape.Span())

	if exec != nil && DataTypeOf[T]() == Float32 {
		af, bf, cf := asFloat32(a.data), asFloat32(b.data), asFloat32(scratch)
		for _, bt := range p.batches {
			err := exec.MatMul(p.m, p.k, p.n, af[bt.A:bt.A+p.m*p.k], bf[bt.B:bt.B+p.k*p.n], cf[bt.C:bt.C+p.m*p.n])
			if err != nil {
				return err
			}
		}
	} else {
		cpu.BatchMatMul(scratch, a.data, b.data, p.batches, p.m, p.k, p.n, cpu.RowConfig())
	}

	out.shape = p.shape
	if len(out.data) == len(scratch) {
		copy(out.data, scratch)
	} else {
		out.data = scratch
	}
	return nil
}

// asFloat32 views s as []float32. T must have float32 as its underlying type.
func asFloat32[T DType](s []T) []float32 {
	return unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(s))), len(s))
}
