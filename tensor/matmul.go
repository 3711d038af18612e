// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/ndarray/internal/tensor"
)

// MatMul returns a @ b in a new array, on the GPU when it pays off.
func MatMul[T DType](a, b *Array[T]) (*Array[T], error) {
	return tensor.MatMul(a, b)
}

// MatMulOn computes a @ b into out on exec. float32 products run on the
// device; a nil exec fails with ErrNoExecutor. out is untouched on error.
//
// Example:
//
//	exec, err := webgpu.Open()
//	if err != nil {
//	    return err
//	}
//	defer exec.Release()
//
//	out := new(tensor.Array[float32])
//	err = tensor.MatMulOn(exec, a, b, out)
func MatMulOn[T DType](exec *Executor, a, b, out *Array[T]) error {
	return tensor.MatMulOn(exec, a, b, out)
}

// MatMulCPU computes a @ b into out on the CPU.
func MatMulCPU[T DType](a, b, out *Array[T]) error {
	return tensor.MatMulCPU(a, b, out)
}
