// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"errors"
	"testing"

	"github.com/born-ml/ndarray/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicAPI_MatMul(t *testing.T) {
	a, err := tensor.NewWithValues([]int{2, 3}, []float32{1, 2, -1, 2, 0, 1})
	require.NoError(t, err)
	b, err := tensor.NewWithValues([]int{3, 2}, []float32{3, 1, 0, -1, -2, 3})
	require.NoError(t, err)

	c, err := tensor.MatMul(a, b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Matrix, c.Kind())
	assert.Equal(t, "[[5 -4] [4 5]]", c.String())

	cpu := new(tensor.Array[float32])
	require.NoError(t, tensor.MatMulCPU(a, b, cpu))
	assert.Equal(t, c.Data(), cpu.Data())
}

func TestPublicAPI_Errors(t *testing.T) {
	_, err := tensor.New[float64](0)
	assert.True(t, errors.Is(err, tensor.ErrInvalidShape))

	a, _ := tensor.Ones[float32](2, 2)
	err = tensor.MatMulOn(nil, a, a, new(tensor.Array[float32]))
	assert.ErrorIs(t, err, tensor.ErrNoExecutor)

	v, _ := tensor.NewVector([]float32{1, 2, 3})
	_, err = tensor.MatMul(v, a)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestPublicAPI_Index(t *testing.T) {
	s, err := tensor.MakeShape(2, 3, 4)
	require.NoError(t, err)

	off, err := tensor.Index(s, s.Strides(), []int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 23, off)
}

func TestPublicAPI_Creation(t *testing.T) {
	eye, err := tensor.Eye[int32](2)
	require.NoError(t, err)
	d, err := tensor.Diagflat(eye)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, 4}, d.Shape())

	f, err := tensor.Full[uint32](3, 2)
	require.NoError(t, err)
	assert.Equal(t, uint32(6), f.Sum())
	assert.Equal(t, tensor.Uint32, f.DType())

	s := tensor.NewScalar(1.5)
	assert.Equal(t, tensor.Scalar, s.Kind())
}
