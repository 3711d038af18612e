package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullOnes(t *testing.T) {
	f, err := Full[int32](7, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int32{7, 7, 7, 7}, f.Data())

	o, err := Ones[float64](3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, o.Data())

	_, err = Ones[float64](3, 0)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestEye(t *testing.T) {
	e, err := Eye[float32](3)
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 3}, e.Shape())
	assert.Equal(t, []float32{1, 0, 0, 0, 1, 0, 0, 0, 1}, e.Data())

	_, err = Eye[float32](0)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestDiagflat(t *testing.T) {
	m, _ := NewWithValues([]int{2, 1}, []int64{4, 5})
	d, err := Diagflat(m)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, d.Shape())
	assert.Equal(t, []int64{4, 0, 0, 5}, d.Data())

	_, err = Diagflat(&Array[int64]{})
	assert.ErrorIs(t, err, ErrEmptyArray)
}

func TestNewVector(t *testing.T) {
	v, err := NewVector([]uint32{1, 2})
	require.NoError(t, err)
	assert.Equal(t, Vector, v.Kind())

	_, err = NewVector[uint32](nil)
	assert.ErrorIs(t, err, ErrInvalidShape)
}
