// SPDX-License-Identifier: MIT
// Package: sampling
//
// Purpose:
//   - Random matrix primitives over gonum: standard normal fills, matrix
//     normal draws, Wishart / inverse-Wishart covariance draws and
//     multinomial counts.
//
// Contracts:
//   - Every function consumes only the rand.Source it is given; the same
//     source state yields the same draw.
//   - Factors are upper triangular (gonum Cholesky convention): a covariance
//     S is represented by U with S = UᵀU, or by L with S = L Lᵀ.

package sampling

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmat"
	"gonum.org/v1/gonum/stat/distuv"
)

// StdNormal returns an r×c matrix of iid N(0, 1) draws, filled row-major.
func StdNormal(r, c int, src rand.Source) *mat.Dense {
	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	data := make([]float64, r*c)
	for i := range data {
		data[i] = norm.Rand()
	}

	return mat.NewDense(r, c, data)
}

// MatrixNormal returns one draw M + A Z B where Z is a standard normal
// matrix shaped like M. A is the row factor (A Aᵀ is the row covariance) and
// B the column factor (Bᵀ B is the column covariance); a nil factor stands
// for the identity.
//
// Complexity:
//   - Time O(r²c + rc²), Space O(rc).
func MatrixNormal(M, A, B mat.Matrix, src rand.Source) *mat.Dense {
	r, c := M.Dims()
	z := StdNormal(r, c, src)
	if A != nil {
		var az mat.Dense
		az.Mul(A, z)
		z = &az
	}
	if B != nil {
		var zb mat.Dense
		zb.Mul(z, B)
		z = &zb
	}
	z.Add(z, M)

	return z
}

// WishartUpper draws W ~ Wishart(upsilon, scale) and returns its upper
// Cholesky factor U (W = UᵀU).
//
// Errors:
//   - ErrDegreesOfFreedom when upsilon <= k-1 for a k×k scale.
//   - ErrNotPositiveDefinite when scale has no Cholesky factorization.
func WishartUpper(upsilon float64, scale mat.Symmetric, src rand.Source) (*mat.TriDense, error) {
	k := scale.SymmetricDim()
	if math.IsNaN(upsilon) || upsilon <= float64(k-1) {
		return nil, fmt.Errorf("WishartUpper(upsilon=%g, k=%d): %w", upsilon, k, ErrDegreesOfFreedom)
	}
	w, ok := distmat.NewWishart(scale, upsilon, src)
	if !ok {
		return nil, fmt.Errorf("WishartUpper: scale: %w", ErrNotPositiveDefinite)
	}
	var chol mat.Cholesky
	w.RandCholTo(&chol)
	var u mat.TriDense
	chol.UTo(&u)

	return &u, nil
}

// InvWishart draws Σ ~ InverseWishart(upsilon, xi): Σ⁻¹ ~ Wishart(upsilon, xi⁻¹).
// It returns Σ together with the upper factor L = U⁻¹ (Σ = L Lᵀ), where U
// is the Cholesky factor of the Wishart draw.
func InvWishart(upsilon float64, xi mat.Symmetric, src rand.Source) (*mat.SymDense, *mat.TriDense, error) {
	scale, err := InverseSym(xi)
	if err != nil {
		return nil, nil, fmt.Errorf("InvWishart: %w", err)
	}

	return invWishartScaled(upsilon, scale, src)
}

// invWishartScaled is InvWishart with the Wishart scale xi⁻¹ precomputed.
func invWishartScaled(upsilon float64, scale mat.Symmetric, src rand.Source) (*mat.SymDense, *mat.TriDense, error) {
	u, err := WishartUpper(upsilon, scale, src)
	if err != nil {
		return nil, nil, err
	}
	var l mat.TriDense
	if err = l.InverseTri(u); err != nil && !isCondition(err) {
		return nil, nil, fmt.Errorf("InvWishart: %w", ErrNotPositiveDefinite)
	}
	var sigma mat.SymDense
	sigma.SymOuterK(1, &l)

	return &sigma, &l, nil
}

// InverseSym returns the inverse of a symmetric positive definite matrix.
func InverseSym(s mat.Symmetric) (*mat.SymDense, error) {
	var chol mat.Cholesky
	if ok := chol.Factorize(s); !ok {
		return nil, fmt.Errorf("InverseSym: %w", ErrNotPositiveDefinite)
	}
	var inv mat.SymDense
	if err := chol.InverseTo(&inv); err != nil && !isCondition(err) {
		return nil, fmt.Errorf("InverseSym: %w", ErrNotPositiveDefinite)
	}

	return &inv, nil
}

// UpperFactor returns U with s = UᵀU.
func UpperFactor(s mat.Symmetric) (*mat.TriDense, error) {
	var chol mat.Cholesky
	if ok := chol.Factorize(s); !ok {
		return nil, fmt.Errorf("UpperFactor: %w", ErrNotPositiveDefinite)
	}
	var u mat.TriDense
	chol.UTo(&u)

	return &u, nil
}

// LowerFactor returns L with s = L Lᵀ.
func LowerFactor(s mat.Symmetric) (*mat.TriDense, error) {
	var chol mat.Cholesky
	if ok := chol.Factorize(s); !ok {
		return nil, fmt.Errorf("LowerFactor: %w", ErrNotPositiveDefinite)
	}
	var l mat.TriDense
	chol.LTo(&l)

	return &l, nil
}

// Multinomial draws counts over len(p) categories summing exactly to n.
// p is normalized internally; it must be finite, non-negative and not all
// zero. n is rounded to the nearest integer and must be non-negative.
//
// Implementation:
//   - Stage 1: validate and normalize p.
//   - Stage 2: category i gets Binomial(remaining, p_i / mass_left); the last
//     category takes whatever remains, so the total is exact.
//
// Complexity:
//   - Time O(D) binomial draws, Space O(D).
func Multinomial(n float64, p []float64, src rand.Source) ([]float64, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("Multinomial: empty p: %w", ErrInvalidProbabilities)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return nil, fmt.Errorf("Multinomial(n=%g): %w", n, ErrInvalidProbabilities)
	}
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("Multinomial: entry %g: %w", v, ErrInvalidProbabilities)
		}
	}
	total := floats.Sum(p)
	if total <= 0 {
		return nil, fmt.Errorf("Multinomial: zero mass: %w", ErrInvalidProbabilities)
	}

	out := make([]float64, len(p))
	remaining := math.Round(n)
	mass := 1.0
	last := len(p) - 1
	for i := 0; i < last && remaining > 0; i++ {
		pi := p[i] / total
		var x float64
		switch q := pi / mass; {
		case pi <= 0:
			x = 0
		case mass <= 0 || q >= 1:
			x = remaining
		default:
			x = distuv.Binomial{N: remaining, P: q, Src: src}.Rand()
		}
		out[i] = x
		remaining -= x
		mass -= pi
	}
	out[last] += remaining

	return out, nil
}

// isCondition reports whether err only flags an ill-conditioned result.
func isCondition(err error) bool {
	var c mat.Condition

	return errors.As(err, &c)
}
