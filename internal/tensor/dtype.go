// Package tensor implements dense n-dimensional arrays stored row-major in a
// contiguous buffer, with a matmul that broadcasts over batch axes and
// routes large float32 products to the GPU engine.
package tensor

import (
	"reflect"

	"github.com/born-ml/ndarray/internal/backend/cpu"
)

// DType is the set of element types an Array can hold.
type DType interface {
	cpu.Number
}

// DataType identifies an element type at runtime.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint32
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32, Uint32:
		return 4
	case Float64, Int64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint32:
		return "uint32"
	default:
		return "unknown"
	}
}

// DataTypeOf returns the DataType of T, resolving named types by their
// underlying kind.
func DataTypeOf[T DType]() DataType {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	case reflect.Int32:
		return Int32
	case reflect.Int64:
		return Int64
	case reflect.Uint32:
		return Uint32
	default:
		panic("unsupported type")
	}
}
