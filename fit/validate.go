// SPDX-License-Identifier: MIT

package fit

import (
	"fmt"

	"github.com/katalvlaran/pibble/array"
	"github.com/katalvlaran/pibble/coords"
)

// DefaultSymmetryTolerance bounds |Σ[i,j] - Σ[j,i]| in Validate.
const DefaultSymmetryTolerance = 1e-8

// Validate checks the covariance invariant: every Sigma slice is symmetric
// within eps (<= 0: DefaultSymmetryTolerance) and positive definite.
// A CLR covariance has rank D-1, so under CLR the positive-definiteness check
// runs on its ALR image against the last category instead.
// Structural invariants are already guaranteed by New.
//
// Stage 1: symmetry of the stored slices.
// Stage 2: Cholesky of every slice (or of its ALR image under CLR).
//
// Complexity:
//   - Time O(iter·k³), Space O(k²) per slice (O(iter·k²) under CLR).
func (f *Fit) Validate(eps float64) error {
	if f.sigma == nil {
		return nil
	}
	if eps <= 0 {
		eps = DefaultSymmetryTolerance
	}
	if err := array.ValidateSymmetric(f.sigma, eps); err != nil {
		return fmt.Errorf("Validate(Sigma): %w", err)
	}

	sigma := f.sigma
	if f.coord.Kind() == coords.KindCLR {
		t, err := coords.NewTransition(f.coord, coords.NewALR(f.d-1), f.d)
		if err != nil {
			return fmt.Errorf("Validate(Sigma): %w", err)
		}
		if sigma, err = t.ApplyCovArray(f.sigma); err != nil {
			return fmt.Errorf("Validate(Sigma): %w", err)
		}
	}
	if err := array.ValidatePositiveDefinite(sigma); err != nil {
		return fmt.Errorf("Validate(Sigma): %w", err)
	}

	return nil
}
