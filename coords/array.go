// SPDX-License-Identifier: MIT

package coords

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pibble/array"
)

// ALRArray applies ALR(·, ref) to every iteration slice of a.
func ALRArray(a *array.Array3, ref int) (*array.Array3, error) {
	return mapPrimitive(a, func(m mat.Matrix) (*mat.Dense, error) { return ALR(m, ref) })
}

// ALRInverseArray applies ALRInverse(·, ref) to every iteration slice of a.
// For every (column, iteration) pair the output sums to 1.
func ALRInverseArray(a *array.Array3, ref int) (*array.Array3, error) {
	return mapPrimitive(a, func(m mat.Matrix) (*mat.Dense, error) { return ALRInverse(m, ref) })
}

// CLRArray applies CLR to every iteration slice of a.
func CLRArray(a *array.Array3) (*array.Array3, error) {
	return mapPrimitive(a, CLR)
}

// CLRInverseArray applies CLRInverse to every iteration slice of a.
func CLRInverseArray(a *array.Array3) (*array.Array3, error) {
	return mapPrimitive(a, CLRInverse)
}

// ILRArray applies ILR with the given basis (nil: default) to every slice.
func ILRArray(a *array.Array3, basis mat.Matrix) (*array.Array3, error) {
	return mapPrimitive(a, func(m mat.Matrix) (*mat.Dense, error) { return ILR(m, basis) })
}

// ILRInverseArray applies ILRInverse with the given basis (nil: default) to every slice.
func ILRInverseArray(a *array.Array3, basis mat.Matrix) (*array.Array3, error) {
	return mapPrimitive(a, func(m mat.Matrix) (*mat.Dense, error) { return ILRInverse(m, basis) })
}

// mapPrimitive runs fn on every slice with the default worker limit.
func mapPrimitive(a *array.Array3, fn func(mat.Matrix) (*mat.Dense, error)) (*array.Array3, error) {
	if err := array.ValidateNotNil(a); err != nil {
		return nil, err
	}

	return mapSlices(a, 0, fn)
}
