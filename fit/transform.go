// SPDX-License-Identifier: MIT
// Package: fit
//
// Purpose:
//   - Lift the coords transform table to whole fits: composition-valued
//     arrays (Eta, Lambda, Theta) map column-wise, covariance-valued ones
//     (Sigma, Xi) map as M Σ Mᵀ.
//   - Leaving the log-ratio world drops Sigma and Xi (no simplex
//     representation). New rejects covariances on proportions fits, so the
//     way back never meets one.
//
// The summary cache is dropped by every non-identity transform.

package fit

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pibble/coords"
)

// Transform returns f expressed in the coordinate system dst.
// When dst equals the current system f itself is returned.
func Transform(f *Fit, dst coords.System) (*Fit, error) {
	t, err := coords.NewTransition(f.coord, dst, f.d)
	if err != nil {
		return nil, fmt.Errorf("Transform: %w", err)
	}
	if t.IsIdentity() {
		return f, nil
	}

	out := f.clone()
	out.coord = dst
	out.summary = nil

	if f.eta != nil {
		if out.eta, err = t.ApplyArray(f.eta); err != nil {
			return nil, fmt.Errorf("Transform(Eta): %w", err)
		}
	}
	if f.lambda != nil {
		if out.lambda, err = t.ApplyArray(f.lambda); err != nil {
			return nil, fmt.Errorf("Transform(Lambda): %w", err)
		}
	}
	if f.theta != nil {
		if out.theta, err = t.Apply(f.theta); err != nil {
			return nil, fmt.Errorf("Transform(Theta): %w", err)
		}
	}

	switch {
	case t.CovarianceDefined():
		if f.sigma != nil {
			if out.sigma, err = t.ApplyCovArray(f.sigma); err != nil {
				return nil, fmt.Errorf("Transform(Sigma): %w", err)
			}
		}
		if f.xi != nil {
			if out.xi, err = t.ApplyCov(f.xi); err != nil {
				return nil, fmt.Errorf("Transform(Xi): %w", err)
			}
		}
	case dst.Kind() == coords.KindProportions:
		out.sigma, out.xi = nil, nil
	}

	if err = out.check(); err != nil {
		return nil, fmt.Errorf("Transform: %w", err)
	}

	return out, nil
}

// ToALR expresses f in ALR coordinates against the zero-based reference
// category ref. A fit already in ALR(ref) is returned unchanged.
func ToALR(f *Fit, ref int) (*Fit, error) { return Transform(f, coords.NewALR(ref)) }

// ToCLR expresses f in CLR coordinates.
func ToCLR(f *Fit) (*Fit, error) { return Transform(f, coords.NewCLR()) }

// ToILR expresses f in ILR coordinates with basis V (nil: default basis).
func ToILR(f *Fit, V mat.Matrix) (*Fit, error) { return Transform(f, coords.NewILR(V)) }

// ToProportions expresses f on the simplex. Sigma and Xi are dropped.
func ToProportions(f *Fit) (*Fit, error) { return Transform(f, coords.NewProportions()) }

// StoreCoord captures the coordinate system of f for a later ReapplyCoord.
func StoreCoord(f *Fit) coords.System { return f.coord }

// ReapplyCoord transforms f back into the saved system.
func ReapplyCoord(f *Fit, saved coords.System) (*Fit, error) {
	out, err := Transform(f, saved)
	if err != nil {
		return nil, fmt.Errorf("ReapplyCoord: %w", err)
	}

	return out, nil
}
