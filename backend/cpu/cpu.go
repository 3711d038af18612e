// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu exposes the CPU matmul kernels on flat row-major slices.
//
// The kernels know nothing about shapes; tensor.MatMulCPU maps arrays onto
// them. Use this package when the data already lives in plain slices.
//
// Example:
//
//	c := make([]float64, m*n)
//	cpu.MatMul(c, a, b, m, k, n)
package cpu

import (
	"github.com/born-ml/ndarray/internal/backend/cpu"
)

// Number is the set of element types the kernels accept.
type Number = cpu.Number

// Region is a half-open rectangle of output cells.
type Region = cpu.Region

// Batch holds the element offsets of one batch slice in A, B and C.
type Batch = cpu.Batch

// MatMul computes c = a @ b for a [m,k] and b [k,n]. c must hold m*n elements
// and is overwritten.
func MatMul[T Number](c, a, b []T, m, k, n int) {
	cpu.MatMul(c, a, b, m, k, n)
}

// MatMulRegion computes the cells of c inside r only.
func MatMulRegion[T Number](c, a, b []T, m, k, n int, r Region) {
	cpu.MatMulRegion(c, a, b, m, k, n, r, cpu.RowConfig())
}

// BatchMatMul performs one [m,k] @ [k,n] product per batch.
func BatchMatMul[T Number](c, a, b []T, batches []Batch, m, k, n int) {
	cpu.BatchMatMul(c, a, b, batches, m, k, n, cpu.RowConfig())
}
