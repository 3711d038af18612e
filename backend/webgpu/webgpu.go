// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu opens executors on a WebGPU device.
//
// Open works on Windows, Linux and macOS when the wgpu-native library is
// installed. Elsewhere, or without the library, Open fails with
// tensor.ErrNoExecutor.
//
// Example:
//
//	exec, err := webgpu.Open()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer exec.Release()
//
//	out := new(tensor.Array[float32])
//	err = tensor.MatMulOn(exec, a, b, out)
package webgpu

import (
	"github.com/born-ml/ndarray/internal/backend/webgpu"
	"github.com/born-ml/ndarray/internal/gpu"
	"github.com/born-ml/ndarray/tensor"
)

// Open creates an executor on the first high-performance WebGPU adapter.
// Call Release on the executor when done.
func Open() (*tensor.Executor, error) {
	return gpu.Open(webgpu.Open)
}

// IsAvailable reports whether a WebGPU adapter can be opened.
func IsAvailable() bool {
	return webgpu.IsAvailable()
}
