package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArray_Columns(t *testing.T) {
	a, err := NewWithValues([]int{2, 2, 3}, []int32{
		1, 2, 3,
		4, 5, 6,

		7, 8, 9,
		10, 11, 12,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, a.NumColumns())
	assert.Equal(t, 3, a.ColumnLen())

	var got [][]int32
	for i, col := range a.Columns() {
		assert.Equal(t, len(got), i)
		got = append(got, col)
	}
	assert.Equal(t, [][]int32{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12}}, got)

	// Restartable, and stops early when asked.
	n := 0
	for range a.Columns() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestArray_ColumnsAlias(t *testing.T) {
	a, _ := NewWithValues([]int{2, 2}, []float32{1, 2, 3, 4})

	for _, col := range a.Columns() {
		col[0] = 0
		assert.Equal(t, 2, cap(col))
	}
	assert.Equal(t, []float32{0, 2, 0, 4}, a.Data())
}

func TestArray_Column(t *testing.T) {
	a, _ := NewWithValues([]int{2, 2, 2}, []int64{1, 2, 3, 4, 5, 6, 7, 8})

	col, err := a.Column(1, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 6}, col)

	_, err = a.Column(2, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = a.Column(1)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)

	v, _ := NewVector([]int64{3, 1})
	col, err = v.Column()
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, col)

	s := NewScalar[int64](7)
	col, err = s.Column()
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, col)
}
