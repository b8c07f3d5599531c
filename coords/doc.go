// Package coords converts compositional data between coordinate systems.
//
// A composition of D parts can be represented as
//
//   - proportions (the simplex; D rows summing to 1),
//   - CLR, centered log-ratios (D rows summing to 0),
//   - ALR, additive log-ratios against a reference part (D-1 rows),
//   - ILR, isometric log-ratios in an orthonormal basis (D-1 rows).
//
// Every primitive treats the ROWS of its input as categories and each column
// as one composition; the Array variants apply the same map to every
// iteration slice of an array.Array3.
//
// All log-ratio systems are linear images of CLR, so transitions between
// them are matrices (x ↦ M x for compositions, Σ ↦ M Σ Mᵀ for covariances).
// Transitions into or out of the simplex are nonlinear and have no
// covariance form. The complete set of (source, target) pairs is enumerated
// in a single table; see NewTransition.
//
//	t, err := coords.NewTransition(coords.NewCLR(), coords.NewALR(2), 3)
//	alr, err := t.ApplyArray(eta)
//	sigmaALR, err := t.ApplyCovArray(sigma)
package coords
