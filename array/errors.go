// SPDX-License-Identifier: MIT
// Package array: sentinel error set.
// Every exported function returns one of these sentinels, possibly wrapped
// with an operation tag via fmt.Errorf("Op: %w", ErrX). Callers match with
// errors.Is. Public accessors never panic on user-triggered conditions.

package array

import "errors"

var (
	// ErrBadShape is returned when a requested shape is invalid (any axis <= 0).
	ErrBadShape = errors.New("array: invalid shape")

	// ErrOutOfRange indicates that an index on any axis is outside valid bounds.
	ErrOutOfRange = errors.New("array: index out of range")

	// ErrDimensionMismatch indicates incompatible shapes between operands,
	// or a name vector whose length differs from its axis.
	ErrDimensionMismatch = errors.New("array: dimension mismatch")

	// ErrNilArray indicates that a nil *Array3 (receiver or argument) was used.
	ErrNilArray = errors.New("array: nil array")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("array: NaN or Inf encountered")

	// ErrAsymmetry signals that a slice expected to be symmetric is not within eps.
	ErrAsymmetry = errors.New("array: slice is not symmetric within eps")

	// ErrNotPositiveDefinite signals that a Cholesky factorization of a slice failed.
	ErrNotPositiveDefinite = errors.New("array: slice is not positive definite")
)
