package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeShape(t *testing.T) {
	tests := []struct {
		dims []int
		kind Kind
		span int
	}{
		{nil, Scalar, 1},
		{[]int{7}, Vector, 7},
		{[]int{2, 3}, Matrix, 6},
		{[]int{2, 3, 4}, Tensor, 24},
		{[]int{2, 1, 3, 4, 5}, Tensor, 120},
	}

	for _, tt := range tests {
		s, err := MakeShape(tt.dims...)
		require.NoError(t, err)
		assert.Equal(t, tt.kind, s.Kind(), "%v", tt.dims)
		assert.Equal(t, tt.span, s.Span(), "%v", tt.dims)
		assert.Equal(t, len(tt.dims), s.Rank())
	}
}

func TestMakeShape_Invalid(t *testing.T) {
	for _, dims := range [][]int{{0}, {3, 0}, {2, -1, 4}} {
		_, err := MakeShape(dims...)
		assert.ErrorIs(t, err, ErrInvalidShape, "%v", dims)
	}
}

func TestMakeShape_CopiesDims(t *testing.T) {
	dims := []int{2, 3}
	s, err := MakeShape(dims...)
	require.NoError(t, err)

	dims[0] = 9
	assert.Equal(t, Shape{2, 3}, s)
}

func TestShape_Strides(t *testing.T) {
	assert.Equal(t, []int{}, Shape{}.Strides())
	assert.Equal(t, []int{1}, Shape{5}.Strides())
	assert.Equal(t, []int{3, 1}, Shape{2, 3}.Strides())
	assert.Equal(t, []int{20, 5, 1}, Shape{3, 4, 5}.Strides())
}

func TestIndex_MatchesRowMajorFormula(t *testing.T) {
	s := Shape{3, 4, 5}
	strides := s.Strides()

	want := 0
	for i := range s[0] {
		for j := range s[1] {
			for k := range s[2] {
				got, err := Index(s, strides, []int{i, j, k})
				require.NoError(t, err)
				require.Equal(t, i*20+j*5+k, got)
				require.Equal(t, want, got, "offsets are visited in row-major order")
				want++
			}
		}
	}
}

func TestIndex_OutOfBounds(t *testing.T) {
	s := Shape{3, 4}
	strides := s.Strides()

	tests := []struct {
		name   string
		coords []int
	}{
		{"row past end", []int{3, 0}},
		{"column past end", []int{0, 4}},
		{"negative", []int{-1, 0}},
		{"too few coordinates", []int{1}},
		{"too many coordinates", []int{1, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Index(s, strides, tt.coords)
			assert.ErrorIs(t, err, ErrIndexOutOfBounds)
		})
	}
}

func TestIndex_Scalar(t *testing.T) {
	got, err := Index(nil, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b, want Shape
	}{
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}},
		{Shape{5}, Shape{2, 5}, Shape{2, 5}},
		{Shape{}, Shape{4}, Shape{4}},
		{Shape{2, 1, 4}, Shape{3, 1}, Shape{2, 3, 4}},
		{Shape{}, Shape{}, Shape{}},
	}

	for _, tt := range tests {
		got, err := BroadcastShapes(tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%v and %v", tt.a, tt.b)
	}

	_, err := BroadcastShapes(Shape{3, 4}, Shape{3, 5})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}
