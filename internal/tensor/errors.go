package tensor

import "errors"

// Errors returned by array construction, indexing and arithmetic.
// Callers match them with errors.Is; returned errors carry detail.
var (
	// ErrInvalidShape is returned for a zero or negative dimension.
	ErrInvalidShape = errors.New("tensor: invalid shape")

	// ErrIndexOutOfBounds is returned for coordinates outside the shape.
	ErrIndexOutOfBounds = errors.New("tensor: index out of bounds")

	// ErrLengthMismatch is returned when a value slice does not match the span.
	ErrLengthMismatch = errors.New("tensor: length mismatch")

	// ErrShapeMismatch is returned when operands cannot be combined.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrEmptyArray is returned by reductions over zero elements.
	ErrEmptyArray = errors.New("tensor: empty array")
)
