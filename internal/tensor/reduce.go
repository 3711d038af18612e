package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Sum returns the sum of all elements. The sum of no elements is zero.
func (a *Array[T]) Sum() T {
	if d, ok := any(a.data).([]float64); ok {
		return any(floats.Sum(d)).(T)
	}

	var s T
	for _, v := range a.data {
		s += v
	}
	return s
}

// Mean returns the arithmetic mean of all elements. Integer arrays use
// integer division.
func (a *Array[T]) Mean() (T, error) {
	if len(a.data) == 0 {
		var zero T
		return zero, ErrEmptyArray
	}
	return a.Sum() / T(len(a.data)), nil
}

// Inner returns the dot product of the two buffers taken as flat vectors,
// whatever their ranks. The spans must match.
func (a *Array[T]) Inner(other *Array[T]) (T, error) {
	if len(a.data) != len(other.data) {
		var zero T
		return zero, fmt.Errorf("%w: inner product of %v and %v", ErrShapeMismatch, []int(a.shape), []int(other.shape))
	}

	if x, ok := any(a.data).([]float64); ok {
		return any(floats.Dot(x, any(other.data).([]float64))).(T), nil
	}

	var s T
	for i, v := range a.data {
		s += v * other.data[i]
	}
	return s, nil
}
