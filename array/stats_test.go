// SPDX-License-Identifier: MIT
package array_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pibble/array"
)

func TestColSums(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	assert.Equal(t, []float64{5, 7, 9}, array.ColSums(m))
}

func TestMedian(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   []float64
		want float64
	}{
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"single", []float64{7}, 7},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, array.Median(tc.in))
		})
	}
	assert.True(t, math.IsNaN(array.Median(nil)))

	in := []float64{3, 1, 2}
	_ = array.Median(in)
	assert.Equal(t, []float64{3, 1, 2}, in, "Median must not reorder its input")
}

func TestQuantileSorted(t *testing.T) {
	x := make([]float64, 101)
	for i := range x {
		x[i] = float64(i)
	}
	assert.Equal(t, 25.0, array.QuantileSorted(0.25, x))
	assert.Equal(t, 97.5, array.QuantileSorted(0.975, x))
	assert.Equal(t, 0.0, array.QuantileSorted(-1, x))
	assert.Equal(t, 100.0, array.QuantileSorted(1, x))
	assert.Equal(t, 2.5, array.QuantileSorted(0.5, []float64{1, 2, 3, 4}))
	assert.Equal(t, 7.0, array.QuantileSorted(0.9, []float64{7}))
	assert.True(t, math.IsNaN(array.QuantileSorted(0.5, nil)))
}

func TestSliceSumsAndAllClose(t *testing.T) {
	gen := func(i, j, k int) float64 { return float64(i + j + k) }
	a := mustArray(t, 3, 2, 2, gen)
	sums := array.SliceSums(a)
	r, c := sums.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 2, c)
	// column j, iteration k: sum_i (i+j+k) = 3 + 3j + 3k
	assert.Equal(t, 3.0, sums.At(0, 0))
	assert.Equal(t, 9.0, sums.At(1, 1))

	b := mustArray(t, 3, 2, 2, gen)
	assert.True(t, array.AllClose(a, b, 0, 0))
	require.NoError(t, b.Set(0, 0, 0, 1e-12))
	assert.False(t, array.AllClose(a, b, 0, 0))
	assert.True(t, array.AllClose(a, b, 0, 1e-9))
	assert.False(t, array.AllClose(a, nil, 0, 0))
}
