// SPDX-License-Identifier: MIT
// Package coords: sentinel error set.
// Every message is prefixed with "coords: ..." for grep-ability. Call sites wrap
// with fmt.Errorf("Op: %w", ErrX); callers match with errors.Is.

package coords

import "errors"

var (
	// ErrUnsupportedTransform is returned when no mapping is defined for the
	// requested (source, target) pair, including any pair that involves an
	// uninitialized System, or when a covariance has to leave the simplex.
	ErrUnsupportedTransform = errors.New("coords: unsupported coordinate transform")

	// ErrInvalidReference indicates an ALR reference index outside [0, D).
	ErrInvalidReference = errors.New("coords: invalid alr reference index")

	// ErrInvalidBasis indicates an ILR basis that is not D × (D-1) with
	// orthonormal columns orthogonal to the ones vector.
	ErrInvalidBasis = errors.New("coords: invalid ilr basis")

	// ErrDimensionMismatch indicates that an input's category axis does not
	// match the size implied by its coordinate system.
	ErrDimensionMismatch = errors.New("coords: dimension mismatch")

	// ErrNonPositive indicates a zero or negative proportion where a logarithm is required.
	ErrNonPositive = errors.New("coords: non-positive proportion")

	// ErrTooFewCategories indicates fewer than two categories.
	ErrTooFewCategories = errors.New("coords: at least two categories required")
)
