package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ZeroFilled(t *testing.T) {
	for _, dims := range [][]int{nil, {1}, {6}, {2, 3}, {2, 3, 4}} {
		a, err := New[float32](dims...)
		require.NoError(t, err)
		s, _ := MakeShape(dims...)
		assert.Equal(t, s.Span(), a.Len(), "%v", dims)
		for _, v := range a.Data() {
			assert.Zero(t, v)
		}
	}

	_, err := New[int32](2, 0)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestNewWithValues(t *testing.T) {
	values := []int64{1, 2, 3, 4, 5, 6}
	a, err := NewWithValues([]int{2, 3}, values)
	require.NoError(t, err)
	assert.Equal(t, values, a.Data())
	assert.Equal(t, Shape{2, 3}, a.Shape())
	assert.Equal(t, Int64, a.DType())

	values[0] = 100
	assert.Equal(t, int64(1), a.Data()[0], "values are copied")

	_, err = NewWithValues([]int{2, 3}, []int64{1, 2})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestArray_AtSetRef(t *testing.T) {
	a, err := NewWithValues([]int{2, 3}, []float64{0, 1, 2, 3, 4, 5})
	require.NoError(t, err)

	v, err := a.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	require.NoError(t, a.Set(-1, 0, 1))
	p, err := a.Ref(0, 1)
	require.NoError(t, err)
	assert.Equal(t, -1.0, *p)

	*p = 42
	v, _ = a.At(0, 1)
	assert.Equal(t, 42.0, v)

	_, err = a.At(2, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = a.Ref(0)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	assert.ErrorIs(t, a.Set(1, 0, 3), ErrIndexOutOfBounds)
	assert.Equal(t, []float64{0, 42, 2, 3, 4, 5}, a.Data(), "failed writes change nothing")
}

func TestArray_SetSlice(t *testing.T) {
	a, err := New[uint32](2, 2)
	require.NoError(t, err)

	assert.ErrorIs(t, a.SetSlice([]uint32{1, 2, 3}), ErrLengthMismatch)
	assert.Equal(t, []uint32{0, 0, 0, 0}, a.Data())

	in := []uint32{4, 3, 2, 1}
	require.NoError(t, a.SetSlice(in))
	assert.Equal(t, in, a.Data())
}

func TestArray_Reshape(t *testing.T) {
	a, err := NewWithValues([]int{2, 3}, []int32{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	require.NoError(t, a.Reshape(3, 2))
	assert.Equal(t, Shape{3, 2}, a.Shape())
	assert.Equal(t, []int32{1, 2, 3, 4, 5, 6}, a.Data())

	require.NoError(t, a.Reshape(6))
	assert.Equal(t, Vector, a.Kind())

	assert.ErrorIs(t, a.Reshape(4, 2), ErrShapeMismatch)
	assert.ErrorIs(t, a.Reshape(6, 0), ErrInvalidShape)
	assert.Equal(t, Shape{6}, a.Shape())
}

func TestArray_Scalar(t *testing.T) {
	s := NewScalar[float32](2.5)
	assert.Equal(t, Scalar, s.Kind())

	v, err := s.At()
	require.NoError(t, err)
	assert.Equal(t, float32(2.5), v)
	assert.Equal(t, "2.5", s.String())
}

func TestArray_Clone(t *testing.T) {
	a, _ := NewWithValues([]int{2}, []int32{1, 2})
	c := a.Clone()
	require.NoError(t, c.Set(9, 0))

	v, _ := a.At(0)
	assert.Equal(t, int32(1), v)
}

func TestArray_String(t *testing.T) {
	v, _ := NewVector([]int32{1, 2, 3})
	assert.Equal(t, "[1 2 3]", v.String())

	m, _ := NewWithValues([]int{2, 2}, []int32{1, 2, 3, 4})
	assert.Equal(t, "[[1 2] [3 4]]", m.String())

	tt, _ := NewWithValues([]int{2, 1, 2}, []int32{1, 2, 3, 4})
	assert.Equal(t, "[[[1 2]] [[3 4]]]", tt.String())
}

func TestDataTypeOf(t *testing.T) {
	type celsius float32

	assert.Equal(t, Float32, DataTypeOf[float32]())
	assert.Equal(t, Float32, DataTypeOf[celsius]())
	assert.Equal(t, Float64, DataTypeOf[float64]())
	assert.Equal(t, Int32, DataTypeOf[int32]())
	assert.Equal(t, Uint32, DataTypeOf[uint32]())
	assert.Equal(t, 8, Int64.Size())
	assert.Equal(t, "uint32", Uint32.String())
}
