package tensor

import (
	"fmt"
	"slices"
)

// NewScalar creates a rank-0 array holding v.
func NewScalar[T DType](v T) *Array[T] {
	return &Array[T]{shape: Shape{}, data: []T{v}}
}

// NewVector creates a vector from values.
func NewVector[T DType](values []T) (*Array[T], error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: vector of length 0", ErrInvalidShape)
	}
	return &Array[T]{shape: Shape{len(values)}, data: slices.Clone(values)}, nil
}

// Full creates an array with every element set to v.
func Full[T DType](v T, dims ...int) (*Array[T], error) {
	a, err := New[T](dims...)
	if err != nil {
		return nil, err
	}
	for i := range a.data {
		a.data[i] = v
	}
	return a, nil
}

// Ones creates an array of ones.
func Ones[T DType](dims ...int) (*Array[T], error) {
	return Full[T](1, dims...)
}

// Eye creates the n×n identity matrix.
func Eye[T DType](n int) (*Array[T], error) {
	a, err := New[T](n, n)
	if err != nil {
		return nil, err
	}
	for i := range n {
		a.data[i*n+i] = 1
	}
	return a, nil
}

// Diagflat creates a square matrix with the elements of a, taken in
// row-major order, on its diagonal.
func Diagflat[T DType](a *Array[T]) (*Array[T], error) {
	n := len(a.data)
	if n == 0 {
		return nil, ErrEmptyArray
	}

	out := &Array[T]{shape: Shape{n, n}, data: make([]T, n*n)}
	for i, v := range a.data {
		out.data[i*n+i] = v
	}
	return out, nil
}
