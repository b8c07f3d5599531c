// SPDX-License-Identifier: MIT
// Package sampling: sentinel error set.
// Precondition failures reuse the fit sentinels (ErrMissingHyperparameter,
// ErrMissingData, ErrInvalidArgument); the errors below cover numeric
// failures inside a draw.

package sampling

import "errors"

var (
	// ErrNotPositiveDefinite indicates a covariance or scale matrix whose
	// Cholesky factorization failed.
	ErrNotPositiveDefinite = errors.New("sampling: matrix is not positive definite")

	// ErrDegreesOfFreedom indicates upsilon <= k-1 for a k×k Wishart scale.
	ErrDegreesOfFreedom = errors.New("sampling: degrees of freedom too small")

	// ErrInvalidProbabilities indicates a probability vector with a negative,
	// NaN or all-zero entry set.
	ErrInvalidProbabilities = errors.New("sampling: invalid probability vector")
)
