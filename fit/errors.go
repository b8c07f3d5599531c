// SPDX-License-Identifier: MIT
// Package fit: sentinel error set.
// All failures are precondition violations: fail fast, no partial results.
// Wrap with fmt.Errorf("Op: %w", ErrX) at the detection site; callers match
// with errors.Is.

package fit

import "errors"

var (
	// ErrMissingComponent indicates a required parameter array (Eta, Lambda,
	// Sigma) is absent from the fit.
	ErrMissingComponent = errors.New("fit: missing parameter component")

	// ErrMissingHyperparameter indicates one of upsilon, Theta, Gamma or Xi is absent.
	ErrMissingHyperparameter = errors.New("fit: missing prior hyperparameter")

	// ErrMissingData indicates the design matrix X (or counts Y) is needed but absent.
	ErrMissingData = errors.New("fit: missing data")

	// ErrInvalidArgument indicates an unrecognized option value or a name
	// vector whose length does not match its axis.
	ErrInvalidArgument = errors.New("fit: invalid argument")

	// ErrDimensionMismatch indicates an array or matrix that disagrees with
	// the fit's dimensions on a non-iteration axis, or with iter.
	ErrDimensionMismatch = errors.New("fit: dimension mismatch")
)
