package tensor

import (
	"fmt"
	"slices"
	"strings"
)

// Array is a dense n-dimensional array of T stored row-major.
// The buffer holds exactly Shape().Span() elements and is owned by the array;
// constructors copy the slices they are given.
type Array[T DType] struct {
	shape Shape
	data  []T
}

// New creates a zeroed array with the given dimensions.
// No dimensions make a scalar.
func New[T DType](dims ...int) (*Array[T], error) {
	shape, err := MakeShape(dims...)
	if err != nil {
		return nil, err
	}
	return &Array[T]{shape: shape, data: make([]T, shape.Span())}, nil
}

// NewWithValues creates an array from row-major values.
// It fails with ErrLengthMismatch when len(values) is not the span of dims.
func NewWithValues[T DType](dims []int, values []T) (*Array[T], error) {
	shape, err := MakeShape(dims...)
	if err != nil {
		return nil, err
	}
	if len(values) != shape.Span() {
		return nil, fmt.Errorf("%w: shape %v needs %d values, got %d", ErrLengthMismatch, dims, shape.Span(), len(values))
	}
	return &Array[T]{shape: shape, data: slices.Clone(values)}, nil
}

// Shape returns a copy of the array's shape.
func (a *Array[T]) Shape() Shape {
	return a.shape.Clone()
}

// Kind returns the rank classification of the array.
func (a *Array[T]) Kind() Kind {
	return a.shape.Kind()
}

// Len returns the number of elements.
func (a *Array[T]) Len() int {
	return len(a.data)
}

// DType returns the element type.
func (a *Array[T]) DType() DataType {
	return DataTypeOf[T]()
}

// Data returns the row-major buffer. The slice aliases the array.
func (a *Array[T]) Data() []T {
	return a.data
}

func (a *Array[T]) offset(coords []int) (int, error) {
	return Index(a.shape, a.shape.Strides(), coords)
}

// At returns the element at coords.
func (a *Array[T]) At(coords ...int) (T, error) {
	i, err := a.offset(coords)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.data[i], nil
}

// Ref returns a pointer to the element at coords.
func (a *Array[T]) Ref(coords ...int) (*T, error) {
	i, err := a.offset(coords)
	if err != nil {
		return nil, err
	}
	return &a.data[i], nil
}

// Set stores v at coords.
func (a *Array[T]) Set(v T, coords ...int) error {
	i, err := a.offset(coords)
	if err != nil {
		return err
	}
	a.data[i] = v
	return nil
}

// SetSlice replaces the whole buffer with values.
func (a *Array[T]) SetSlice(values []T) error {
	if len(values) != len(a.data) {
		return fmt.Errorf("%w: array holds %d elements, got %d", ErrLengthMismatch, len(a.data), len(values))
	}
	copy(a.data, values)
	return nil
}

// Reshape changes the dimensions without touching the data.
// The new shape must have the same span.
func (a *Array[T]) Reshape(dims ...int) error {
	shape, err := MakeShape(dims...)
	if err != nil {
		return err
	}
	if shape.Span() != len(a.data) {
		return fmt.Errorf("%w: cannot reshape %v (%d elements) to %v", ErrShapeMismatch, []int(a.shape), len(a.data), dims)
	}
	a.shape = shape
	return nil
}

// Clone returns a deep copy.
func (a *Array[T]) Clone() *Array[T] {
	return &Array[T]{shape: a.shape.Clone(), data: slices.Clone(a.data)}
}

// String renders the array with nested brackets, one level per axis.
func (a *Array[T]) String() string {
	if len(a.shape) == 0 {
		if len(a.data) == 0 {
			return "[]"
		}
		return fmt.Sprint(a.data[0])
	}

	var sb strings.Builder
	writeNested(&sb, a.shape, a.data)
	return sb.String()
}

func writeNested[T DType](sb *strings.Builder, shape Shape, data []T) {
	sb.WriteByte('[')
	if len(shape) == 1 {
		for i, v := range data {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprint(sb, v)
		}
	} else {
		step := len(data) / shape[0]
		for i := range shape[0] {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeNested(sb, shape[1:], data[i*step:(i+1)*step])
		}
	}
	sb.WriteByte(']')
}
