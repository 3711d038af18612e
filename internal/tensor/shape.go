package tensor

import (
	"fmt"
	"slices"
)

// Kind classifies a shape by rank.
type Kind int

// Shape kinds.
const (
	Scalar Kind = iota // rank 0
	Vector             // rank 1
	Matrix             // rank 2
	Tensor             // rank 3 and above
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Vector:
		return "vector"
	case Matrix:
		return "matrix"
	case Tensor:
		return "tensor"
	default:
		return "unknown"
	}
}

// Shape holds the dimensions of an array. The empty shape is a scalar.
type Shape []int

// MakeShape validates dims and returns them as a Shape.
// Every dimension must be positive.
func MakeShape(dims ...int) (Shape, error) {
	s := Shape(slices.Clone(dims))
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that every dimension is positive.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("%w: dimension %d of %v is %d", ErrInvalidShape, i, []int(s), dim)
		}
	}
	return nil
}

// Kind returns the rank classification.
func (s Shape) Kind() Kind {
	return Kind(min(len(s), int(Tensor)))
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// Dims returns a copy of the dimensions.
func (s Shape) Dims() []int {
	return slices.Clone(s)
}

// Span returns the number of elements: the product of the dimensions, 1 for a scalar.
func (s Shape) Span() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Strides returns the row-major strides.
// stride[i] is the product of all dimensions after i; the last stride is 1.
func (s Shape) Strides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// Equal reports whether two shapes have the same dimensions.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	return slices.Clone(s)
}

// Index returns the flat offset of coords: the sum of coords[i]*strides[i].
// It fails with ErrIndexOutOfBounds when the rank differs or a coordinate
// falls outside its dimension.
func Index(dims, strides, coords []int) (int, error) {
	if len(coords) != len(dims) || len(strides) != len(dims) {
		return 0, fmt.Errorf("%w: %d coordinates for rank %d", ErrIndexOutOfBounds, len(coords), len(dims))
	}

	offset := 0
	for i, c := range coords {
		if c < 0 || c >= dims[i] {
			return 0, fmt.Errorf("%w: coordinate %d is %d, dimension is %d", ErrIndexOutOfBounds, i, c, dims[i])
		}
		offset += c * strides[i]
	}
	return offset, nil
}

// BroadcastShapes returns the shape two shapes broadcast to.
//
// Shapes are aligned from the right; missing dimensions count as 1, and two
// dimensions are compatible when they are equal or one of them is 1.
//
//	(3, 1) and (3, 5) → (3, 5)
//	(5)    and (2, 5) → (2, 5)
//	(3, 4) and (3, 5) → ErrShapeMismatch
func BroadcastShapes(a, b Shape) (Shape, error) {
	n := max(len(a), len(b))
	result := make(Shape, n)

	for i := range n {
		aDim, bDim := 1, 1
		if j := len(a) - 1 - i; j >= 0 {
			aDim = a[j]
		}
		if j := len(b) - 1 - i; j >= 0 {
			bDim = b[j]
		}

		switch {
		case aDim == bDim, bDim == 1:
			result[n-1-i] = aDim
		case aDim == 1:
			result[n-1-i] = bDim
		default:
			return nil, fmt.Errorf("%w: %v and %v do not broadcast (axis %d: %d vs %d)",
				ErrShapeMismatch, []int(a), []int(b), n-1-i, aDim, bDim)
		}
	}
	return result, nil
}
