// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/ndarray/internal/compute"
	"github.com/born-ml/ndarray/internal/gpu"
	"github.com/born-ml/ndarray/internal/tensor"
)

// DType is the set of element types an Array can hold:
// float32, float64, int32, int64 and uint32.
type DType = tensor.DType

// DataType identifies an element type at runtime.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint32  DataType = tensor.Uint32
)

// Shape holds the dimensions of an array.
type Shape = tensor.Shape

// Kind classifies a shape by rank.
type Kind = tensor.Kind

// Shape kinds.
const (
	Scalar Kind = tensor.Scalar
	Vector Kind = tensor.Vector
	Matrix Kind = tensor.Matrix
	Tensor Kind = tensor.Tensor
)

// Array is a dense n-dimensional array stored row-major.
type Array[T DType] = tensor.Array[T]

// Executor runs float32 matmuls on a compute device.
type Executor = gpu.Executor

// Errors. Match them with errors.Is.
var (
	ErrInvalidShape     = tensor.ErrInvalidShape
	ErrIndexOutOfBounds = tensor.ErrIndexOutOfBounds
	ErrLengthMismatch   = tensor.ErrLengthMismatch
	ErrShapeMismatch    = tensor.ErrShapeMismatch
	ErrEmptyArray       = tensor.ErrEmptyArray

	// ErrNoExecutor reports that no compute device is available.
	ErrNoExecutor = compute.ErrNoExecutor

	// ErrNoShader reports that the matmul pipeline could not be built.
	ErrNoShader = compute.ErrNoShader
)

// MakeShape validates dims and returns them as a Shape.
func MakeShape(dims ...int) (Shape, error) {
	return tensor.MakeShape(dims...)
}

// Index returns the flat row-major offset of coords.
func Index(dims, strides, coords []int) (int, error) {
	return tensor.Index(dims, strides, coords)
}

// New creates a zeroed array.
func New[T DType](dims ...int) (*Array[T], error) {
	return tensor.New[T](dims...)
}

// NewWithValues creates an array from row-major values.
func NewWithValues[T DType](dims []int, values []T) (*Array[T], error) {
	return tensor.NewWithValues(dims, values)
}

// NewScalar creates a rank-0 array.
func NewScalar[T DType](v T) *Array[T] {
	return tensor.NewScalar(v)
}

// NewVector creates a vector from values.
func NewVector[T DType](values []T) (*Array[T], error) {
	return tensor.NewVector(values)
}

// Full creates an array with every element set to v.
func Full[T DType](v T, dims ...int) (*Array[T], error) {
	return tensor.Full(v, dims...)
}

// Ones creates an array of ones.
func Ones[T DType](dims ...int) (*Array[T], error) {
	return tensor.Ones[T](dims...)
}

// Eye creates the n×n identity matrix.
func Eye[T DType](n int) (*Array[T], error) {
	return tensor.Eye[T](n)
}

// Diagflat creates a square matrix with the elements of a on its diagonal.
func Diagflat[T DType](a *Array[T]) (*Array[T], error) {
	return tensor.Diagflat(a)
}

// DefaultExecutor returns the process-wide executor selected by
// ND_GPU_BACKEND. It is created on first use; a failure is remembered.
func DefaultExecutor() (*Executor, error) {
	return gpu.Default()
}
