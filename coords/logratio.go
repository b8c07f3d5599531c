// SPDX-License-Identifier: MIT
// Package: coords
//
// Purpose:
//   - Column-wise log-ratio primitives on gonum matrices: ALR, CLR, ILR and
//     their inverses, plus Closure.
//   - Rows are categories; every column is one composition.
//
// Determinism & numerics:
//   - Fixed column-then-row traversal.
//   - Inverses subtract the column maximum before exponentiating so large
//     log-ratios never overflow; closure removes the shift exactly.

package coords

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	opALR        = "ALR"
	opALRInverse = "ALRInverse"
	opCLR        = "CLR"
	opCLRInverse = "CLRInverse"
	opILR        = "ILR"
	opILRInverse = "ILRInverse"
	opClosure    = "Closure"
)

func coordsErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// logColumn fills dst with log(col) or reports ErrNonPositive.
func logColumn(dst, col []float64) error {
	for i, v := range col {
		if !(v > 0) {
			return ErrNonPositive
		}
		dst[i] = math.Log(v)
	}

	return nil
}

// expClose replaces z with closure(exp(z)) using a max shift.
func expClose(z []float64) {
	shift := floats.Max(z)
	for i, v := range z {
		z[i] = math.Exp(v - shift)
	}
	floats.Scale(1/floats.Sum(z), z)
}

// ALR maps proportions x (D × m) to additive log-ratios (D-1 × m) against
// category ref: y_i = log(x_i / x_ref) for i ≠ ref, in category order.
func ALR(x mat.Matrix, ref int) (*mat.Dense, error) {
	D, m := x.Dims()
	if D < 2 {
		return nil, coordsErrorf(opALR, ErrTooFewCategories)
	}
	if ref < 0 || ref >= D {
		return nil, coordsErrorf(opALR, ErrInvalidReference)
	}
	out := mat.NewDense(D-1, m, nil)
	col := make([]float64, D)
	lg := make([]float64, D)
	var i, j, row int
	for j = 0; j < m; j++ {
		mat.Col(col, j, x)
		if err := logColumn(lg, col); err != nil {
			return nil, coordsErrorf(opALR, err)
		}
		row = 0
		for i = 0; i < D; i++ {
			if i == ref {
				continue
			}
			out.Set(row, j, lg[i]-lg[ref])
			row++
		}
	}

	return out, nil
}

// ALRInverse maps additive log-ratios y (D-1 × m) back to proportions (D × m):
// a zero coordinate is inserted at ref, then each column is exponentiated and
// closed. Every output column sums to 1.
func ALRInverse(y mat.Matrix, ref int) (*mat.Dense, error) {
	k, m := y.Dims()
	D := k + 1
	if ref < 0 || ref >= D {
		return nil, coordsErrorf(opALRInverse, ErrInvalidReference)
	}
	out := mat.NewDense(D, m, nil)
	col := make([]float64, k)
	z := make([]float64, D)
	var i, j, row int
	for j = 0; j < m; j++ {
		mat.Col(col, j, y)
		row = 0
		for i = 0; i < D; i++ {
			if i == ref {
				z[i] = 0
				continue
			}
			z[i] = col[row]
			row++
		}
		expClose(z)
		out.SetCol(j, z)
	}

	return out, nil
}

// CLR maps proportions x (D × m) to centered log-ratios: log x minus the
// per-column mean of log x. The category axis stays D.
func CLR(x mat.Matrix) (*mat.Dense, error) {
	D, m := x.Dims()
	if D < 2 {
		return nil, coordsErrorf(opCLR, ErrTooFewCategories)
	}
	out := mat.NewDense(D, m, nil)
	col := make([]float64, D)
	lg := make([]float64, D)
	for j := 0; j < m; j++ {
		mat.Col(col, j, x)
		if err := logColumn(lg, col); err != nil {
			return nil, coordsErrorf(opCLR, err)
		}
		floats.AddConst(-floats.Sum(lg)/float64(D), lg)
		out.SetCol(j, lg)
	}

	return out, nil
}

// CLRInverse maps centered log-ratios z (D × m) to proportions by
// exponentiating and closing each column.
func CLRInverse(z mat.Matrix) (*mat.Dense, error) {
	D, m := z.Dims()
	if D < 2 {
		return nil, coordsErrorf(opCLRInverse, ErrTooFewCategories)
	}
	out := mat.NewDense(D, m, nil)
	col := make([]float64, D)
	for j := 0; j < m; j++ {
		mat.Col(col, j, z)
		expClose(col)
		out.SetCol(j, col)
	}

	return out, nil
}

// ILR maps proportions x (D × m) to isometric log-ratios Vᵀ clr(x) (D-1 × m).
// A nil basis selects DefaultILRBasis(D).
func ILR(x mat.Matrix, basis mat.Matrix) (*mat.Dense, error) {
	D, _ := x.Dims()
	V, err := resolveBasis(basis, D)
	if err != nil {
		return nil, coordsErrorf(opILR, err)
	}
	z, err := CLR(x)
	if err != nil {
		return nil, coordsErrorf(opILR, err)
	}
	var out mat.Dense
	out.Mul(V.T(), z)

	return &out, nil
}

// ILRInverse maps isometric log-ratios y (D-1 × m) to proportions
// closure(exp(V y)). A nil basis selects DefaultILRBasis(D).
func ILRInverse(y mat.Matrix, basis mat.Matrix) (*mat.Dense, error) {
	k, _ := y.Dims()
	V, err := resolveBasis(basis, k+1)
	if err != nil {
		return nil, coordsErrorf(opILRInverse, err)
	}
	var z mat.Dense
	z.Mul(V, y)

	return CLRInverse(&z)
}

// Closure rescales every column of x to sum to 1. Columns must have a
// positive sum.
func Closure(x mat.Matrix) (*mat.Dense, error) {
	D, m := x.Dims()
	out := mat.NewDense(D, m, nil)
	col := make([]float64, D)
	for j := 0; j < m; j++ {
		mat.Col(col, j, x)
		s := floats.Sum(col)
		if !(s > 0) {
			return nil, coordsErrorf(opClosure, ErrNonPositive)
		}
		floats.Scale(1/s, col)
		out.SetCol(j, col)
	}

	return out, nil
}

func resolveBasis(basis mat.Matrix, D int) (*mat.Dense, error) {
	if D < 2 {
		return nil, ErrTooFewCategories
	}
	if basis == nil {
		return DefaultILRBasis(D), nil
	}
	V := mat.DenseCopyOf(basis)
	if err := validateBasis(V, D); err != nil {
		return nil, err
	}

	return V, nil
}
