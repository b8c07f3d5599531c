// SPDX-License-Identifier: MIT
// Package: array
//
// Purpose:
//  - Single source of truth for shape, symmetry and definiteness checks on Array3.
//  - Return sentinel errors wrapped with the validator tag so call sites can match via errors.Is.

package array

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the array reference is non-nil.
func ValidateNotNil(a *Array3) error {
	if a == nil {
		return validatorErrorf("ValidateNotNil", ErrNilArray)
	}

	return nil
}

// ValidateShape checks a against the expected axis lengths.
// A negative expectation skips that axis.
func ValidateShape(a *Array3, rows, cols, iter int) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if rows >= 0 && a.r != rows {
		return validatorErrorf("ValidateShape: Rows", ErrDimensionMismatch)
	}
	if cols >= 0 && a.c != cols {
		return validatorErrorf("ValidateShape: Cols", ErrDimensionMismatch)
	}
	if iter >= 0 && a.n != iter {
		return validatorErrorf("ValidateShape: Iterations", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSymmetric checks every slice for |a[i,j,k] - a[j,i,k]| <= eps.
// Only the upper triangle is visited.
func ValidateSymmetric(a *Array3, eps float64) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if a.r != a.c {
		return validatorErrorf("ValidateSymmetric", ErrDimensionMismatch)
	}
	var i, j, k int
	for k = 0; k < a.n; k++ {
		base := k * a.r * a.c
		for i = 0; i < a.r; i++ {
			for j = i + 1; j < a.c; j++ {
				if math.Abs(a.data[base+i*a.c+j]-a.data[base+j*a.c+i]) > eps {
					return validatorErrorf(fmt.Sprintf("ValidateSymmetric: slice %d", k), ErrAsymmetry)
				}
			}
		}
	}

	return nil
}

// ValidatePositiveDefinite attempts a Cholesky factorization of every slice.
// Slices are symmetrized from their upper triangle before factorizing.
func ValidatePositiveDefinite(a *Array3) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if a.r != a.c {
		return validatorErrorf("ValidatePositiveDefinite", ErrDimensionMismatch)
	}
	var ch mat.Cholesky
	for k := 0; k < a.n; k++ {
		if ok := ch.Factorize(SymView(a.slice(k))); !ok {
			return validatorErrorf(fmt.Sprintf("ValidatePositiveDefinite: slice %d", k), ErrNotPositiveDefinite)
		}
	}

	return nil
}

// SymView copies the upper triangle of a square matrix into a SymDense.
func SymView(m mat.Matrix) *mat.SymDense {
	n, _ := m.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, m.At(i, j))
		}
	}

	return s
}
