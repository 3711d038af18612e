package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArray_SumMean(t *testing.T) {
	f, _ := NewWithValues([]int{2, 2}, []float64{1, 2, 3, 4})
	assert.Equal(t, 10.0, f.Sum())
	mean, err := f.Mean()
	require.NoError(t, err)
	assert.Equal(t, 2.5, mean)

	i, _ := NewVector([]int32{1, 2, 4})
	assert.Equal(t, int32(7), i.Sum())
	imean, err := i.Mean()
	require.NoError(t, err)
	assert.Equal(t, int32(2), imean)

	var empty Array[float32]
	assert.Zero(t, empty.Sum())
	_, err = empty.Mean()
	assert.ErrorIs(t, err, ErrEmptyArray)
}

func TestArray_Inner(t *testing.T) {
	a, _ := NewVector([]float32{1, 2, 3})
	b, _ := NewVector([]float32{4, 5, 6})
	got, err := a.Inner(b)
	require.NoError(t, err)
	assert.Equal(t, float32(32), got)

	// Matrices are treated as flat vectors.
	m1, _ := NewWithValues([]int{2, 2}, []float64{1, 2, 3, 4})
	m2, _ := NewWithValues([]int{4}, []float64{1, 1, 1, 1})
	dot, err := m1.Inner(m2)
	require.NoError(t, err)
	assert.Equal(t, 10.0, dot)

	c, _ := NewVector([]float32{1, 2})
	_, err = a.Inner(c)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestArray_ArgMaxArgMin(t *testing.T) {
	a, err := NewWithValues([]int{2, 2, 3}, []float32{
		1, 9, 3,
		4, 4, 2,

		-1, -5, 0,
		7, 8, 8,
	})
	require.NoError(t, err)

	amax, err := a.ArgMax()
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, amax.Shape())
	assert.Equal(t, []int64{1, 0, 2, 1}, amax.Data(), "ties take the first index")

	amin, err := a.ArgMin()
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 2, 1, 0}, amin.Data())

	v, _ := NewVector([]int32{3, 7, 1})
	idx, err := v.ArgMax()
	require.NoError(t, err)
	assert.Equal(t, Scalar, idx.Kind())
	got, _ := idx.At()
	assert.Equal(t, int64(1), got)

	var empty Array[int32]
	_, err = empty.ArgMin()
	assert.ErrorIs(t, err, ErrEmptyArray)
}
