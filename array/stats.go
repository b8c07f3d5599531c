// SPDX-License-Identifier: MIT
// Package: array
//
// Purpose:
//   - Small deterministic reductions used across the engines: column sums of a
//     design or count matrix, medians of count totals, and closeness checks
//     between arrays.
//   - Fixed i→j→k traversal; no map iteration.

package array

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ColSums returns the per-column sums of m (len == columns of m).
func ColSums(m mat.Matrix) []float64 {
	r, c := m.Dims()
	sums := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, m)
		sums[j] = floats.Sum(col)
	}

	return sums
}

// Median returns the sample median of x; the mean of the two middle values
// for even lengths. x is not modified. Median of an empty slice is NaN.
func Median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return math.NaN()
	}
	s := make([]float64, n)
	copy(s, x)
	sort.Float64s(s)
	if n%2 == 1 {
		return s[n/2]
	}

	return 0.5 * (s[n/2-1] + s[n/2])
}

// QuantileSorted returns the p-quantile of the ascending slice sorted by
// linear interpolation between the closest ranks: position h = (n-1)p, value
// sorted[⌊h⌋] + (h-⌊h⌋)(sorted[⌊h⌋+1] - sorted[⌊h⌋]). p is clamped to [0, 1];
// an empty slice yields NaN.
func QuantileSorted(p float64, sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	p = math.Min(math.Max(p, 0), 1)
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}

	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// AllClose reports whether a and b share a shape and every pair of entries
// satisfies |x - y| <= atol + rtol*|y|.
func AllClose(a, b *Array3, rtol, atol float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.r != b.r || a.c != b.c || a.n != b.n {
		return false
	}
	for i, y := range b.data {
		if math.Abs(a.data[i]-y) > atol+rtol*math.Abs(y) {
			return false
		}
	}

	return true
}

// SliceSums returns, for every (column, iteration) pair, the sum over the
// row axis as a cols × iter matrix. Used to check simplex closure and count
// conservation.
func SliceSums(a *Array3) *mat.Dense {
	out := mat.NewDense(a.c, a.n, nil)
	var i, j, k int
	for k = 0; k < a.n; k++ {
		base := k * a.r * a.c
		for j = 0; j < a.c; j++ {
			var s float64
			for i = 0; i < a.r; i++ {
				s += a.data[base+i*a.c+j]
			}
			out.Set(j, k, s)
		}
	}

	return out
}
