// SPDX-License-Identifier: MIT
// Package array_test contains unit tests for Array3 storage, views and validators.
package array_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pibble/array"
)

// mustArray allocates an r×c×n array filled with v(i,j,k) or fails the test.
func mustArray(t *testing.T, r, c, n int, v func(i, j, k int) float64) *array.Array3 {
	t.Helper()
	a, err := array.New(r, c, n)
	require.NoError(t, err)
	var i, j, k int
	for k = 0; k < n; k++ {
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				require.NoError(t, a.Set(i, j, k, v(i, j, k)))
			}
		}
	}

	return a
}

func TestNew_BadShape(t *testing.T) {
	for _, tc := range []struct{ r, c, n int }{
		{0, 1, 1},
		{1, 0, 1},
		{1, 1, 0},
		{-1, 2, 2},
	} {
		t.Run(fmt.Sprintf("%dx%dx%d", tc.r, tc.c, tc.n), func(t *testing.T) {
			_, err := array.New(tc.r, tc.c, tc.n)
			require.ErrorIs(t, err, array.ErrBadShape)
		})
	}
}

func TestNew_ZeroFilled(t *testing.T) {
	a, err := array.New(2, 3, 4)
	require.NoError(t, err)
	r, c, n := a.Dims()
	require.Equal(t, [3]int{2, 3, 4}, [3]int{r, c, n})
	for _, v := range a.Values() {
		require.Zero(t, v)
	}
}

func TestAtSet_OutOfRangeAndNaN(t *testing.T) {
	a := mustArray(t, 2, 2, 2, func(i, j, k int) float64 { return 0 })

	_, err := a.At(2, 0, 0)
	require.ErrorIs(t, err, array.ErrOutOfRange)
	_, err = a.At(0, 0, -1)
	require.ErrorIs(t, err, array.ErrOutOfRange)
	require.ErrorIs(t, a.Set(0, 2, 0, 1), array.ErrOutOfRange)
	require.ErrorIs(t, a.Set(0, 0, 0, math.NaN()), array.ErrNaNInf)
	require.ErrorIs(t, a.Set(0, 0, 0, math.Inf(-1)), array.ErrNaNInf)
}

func TestSlice_SharesStorage(t *testing.T) {
	a := mustArray(t, 2, 3, 3, func(i, j, k int) float64 { return float64(100*k + 10*i + j) })

	s, err := a.Slice(1)
	require.NoError(t, err)
	assert.Equal(t, 112.0, s.At(1, 2))

	s.Set(0, 0, -7)
	v, err := a.At(0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, -7.0, v, "write through view must reach the array")

	// neighbouring slices are untouched
	v, _ = a.At(0, 0, 0)
	assert.Equal(t, 0.0, v)
	v, _ = a.At(0, 0, 2)
	assert.Equal(t, 200.0, v)

	_, err = a.Slice(3)
	require.ErrorIs(t, err, array.ErrOutOfRange)
}

func TestSetSlice_ShapeChecked(t *testing.T) {
	a := mustArray(t, 2, 2, 2, func(i, j, k int) float64 { return 0 })

	require.ErrorIs(t, a.SetSlice(0, mat.NewDense(3, 2, nil)), array.ErrDimensionMismatch)
	require.ErrorIs(t, a.SetSlice(5, mat.NewDense(2, 2, nil)), array.ErrOutOfRange)

	require.NoError(t, a.SetSlice(1, mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	v, _ := a.At(1, 0, 1)
	assert.Equal(t, 3.0, v)
}

func TestFromSlicesAndColumn(t *testing.T) {
	a, err := array.FromSlices(
		mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6}),
		mat.NewDense(3, 2, []float64{7, 8, 9, 10, 11, 12}),
	)
	require.NoError(t, err)
	require.Equal(t, 2, a.Iterations())

	col, err := a.Column(nil, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{8, 10, 12}, col)

	_, err = a.Column(nil, 2, 0)
	require.ErrorIs(t, err, array.ErrOutOfRange)

	_, err = array.FromSlices()
	require.ErrorIs(t, err, array.ErrBadShape)
}

func TestHead(t *testing.T) {
	a := mustArray(t, 1, 1, 5, func(i, j, k int) float64 { return float64(k) })
	h, err := a.Head(3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, h.Values())

	_, err = a.Head(6)
	require.ErrorIs(t, err, array.ErrOutOfRange)
	_, err = a.Head(0)
	require.ErrorIs(t, err, array.ErrOutOfRange)
}

func TestWithNames(t *testing.T) {
	a := mustArray(t, 2, 3, 1, func(i, j, k int) float64 { return 0 })

	_, err := a.WithNames([]string{"a"}, nil)
	require.ErrorIs(t, err, array.ErrDimensionMismatch)
	_, err = a.WithNames(nil, []string{"x", "y"})
	require.ErrorIs(t, err, array.ErrDimensionMismatch)

	named, err := a.WithNames([]string{"a", "b"}, []string{"x", "y", "z"})
	require.NoError(t, err)
	rows, cols := named.Names()
	assert.Equal(t, []string{"a", "b"}, rows)
	assert.Equal(t, []string{"x", "y", "z"}, cols)

	rows, cols = a.Names()
	assert.Nil(t, rows)
	assert.Nil(t, cols)

	// storage is shared between the named and the bare array
	require.NoError(t, named.Set(1, 1, 0, 4))
	v, _ := a.At(1, 1, 0)
	assert.Equal(t, 4.0, v)
}

func TestValidateSymmetricAndPD(t *testing.T) {
	gen := func(i, j, k int) float64 {
		if i == j {
			return 2 + float64(k)
		}
		return 0.5
	}
	spd := mustArray(t, 2, 2, 2, gen)
	require.NoError(t, array.ValidateSymmetric(spd, 1e-12))
	require.NoError(t, array.ValidatePositiveDefinite(spd))

	asym := mustArray(t, 2, 2, 2, gen)
	require.NoError(t, asym.Set(0, 1, 1, 0.9))
	err := array.ValidateSymmetric(asym, 1e-12)
	require.True(t, errors.Is(err, array.ErrAsymmetry))

	indef := mustArray(t, 2, 2, 1, func(i, j, k int) float64 {
		if i == j {
			return 1
		}
		return 3
	})
	require.ErrorIs(t, array.ValidatePositiveDefinite(indef), array.ErrNotPositiveDefinite)

	rect := mustArray(t, 2, 3, 1, func(i, j, k int) float64 { return 0 })
	require.ErrorIs(t, array.ValidateSymmetric(rect, 0), array.ErrDimensionMismatch)
	require.ErrorIs(t, array.ValidateShape(rect, 2, 2, 1), array.ErrDimensionMismatch)
	require.ErrorIs(t, array.ValidateShape(nil, 2, 2, 1), array.ErrNilArray)
	require.NoError(t, array.ValidateShape(rect, 2, -1, 1))
}
