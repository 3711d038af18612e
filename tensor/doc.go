// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides dense n-dimensional arrays with a matrix
// multiplication that runs on the GPU when it pays off.
//
// # Overview
//
// An Array[T] is a shape plus a contiguous row-major buffer. Arrays support:
//   - Coordinate access (At, Ref, Set) and whole-buffer replacement (SetSlice)
//   - Reshape, Transpose (trailing two axes, leading axes as batches)
//   - Column iteration along the last axis
//   - Sum, Mean, Inner, ArgMax, ArgMin
//   - MatMul with broadcasting over batch axes
//
// # Basic Usage
//
//	a, _ := tensor.NewWithValues([]int{2, 3}, []float32{1, 2, -1, 2, 0, 1})
//	b, _ := tensor.NewWithValues([]int{3, 2}, []float32{3, 1, 0, -1, -2, 3})
//
//	c, err := tensor.MatMul(a, b) // [[5 -4] [4 5]]
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Matrix Multiplication
//
// Shapes combine as follows:
//   - [k] @ [k,n] → [n], [m,k] @ [k] → [m], [k] @ [k] → scalar
//   - [m,k] @ [k,n] → [m,n]
//   - [..., m,k] @ [..., k,n] → [..., m,n], batch axes broadcast from the right
//
// A vector or matrix operand repeats across every batch of a tensor operand,
// so [4] @ [4,4,4] → [4,4] and [2,3] @ [2,3,2] → [2,2,2].
//
// MatMul sends float32 products of at least ND_GPU_MIN_WORK multiply-adds to
// the default GPU executor and computes everything else on the CPU. MatMulOn
// forces a given executor and MatMulCPU forces the CPU. Errors never leave a
// partially written output.
//
// # Environment
//
//   - ND_GPU_BACKEND: webgpu (default), emulator or none
//   - ND_ROW_SPLIT: rows per GPU chunk (default 512)
//   - ND_GPU_MIN_WORK: smallest m*k*n sent to the GPU by MatMul (default 32768)
//   - ND_NUM_THREADS: CPU workers (default runtime.NumCPU())
//   - ND_DEBUG: 1 enables debug logging
package tensor
