// SPDX-License-Identifier: MIT
// Package: coords
//
// Purpose:
//   - The transform table: every (source kind, target kind) pair is listed
//     explicitly with the route that realizes it.
//   - Transition values bind a route to concrete systems and a part count D,
//     precomputing the linear map once so it can be applied to many slices.
//
// Routes:
//   - identity     : same system (same ALR reference / same ILR basis).
//   - linear       : log-ratio → log-ratio, M = fromCLR(dst) · toCLR(src).
//   - fromSimplex  : proportions → log-ratio, x ↦ fromCLR(dst) · clr(x).
//   - toSimplex    : log-ratio → proportions, y ↦ closure(exp(toCLR(src) · y)).
//
// Covariances follow only identity and linear routes (Σ ↦ M Σ Mᵀ).

package coords

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pibble/array"
	"github.com/katalvlaran/pibble/internal/workers"
)

type route uint8

const (
	routeIdentity route = iota + 1
	routeLinear
	routeFromSimplex
	routeToSimplex
)

var routeNames = map[route]string{
	routeIdentity:    "identity",
	routeLinear:      "linear",
	routeFromSimplex: "from-simplex",
	routeToSimplex:   "to-simplex",
}

// transitionTable enumerates every defined (source, target) pair.
// Pairs absent from the table are unsupported.
var transitionTable = map[[2]Kind]route{
	{KindProportions, KindProportions}: routeIdentity,
	{KindProportions, KindCLR}:         routeFromSimplex,
	{KindProportions, KindALR}:         routeFromSimplex,
	{KindProportions, KindILR}:         routeFromSimplex,

	{KindCLR, KindProportions}: routeToSimplex,
	{KindCLR, KindCLR}:         routeIdentity,
	{KindCLR, KindALR}:         routeLinear,
	{KindCLR, KindILR}:         routeLinear,

	{KindALR, KindProportions}: routeToSimplex,
	{KindALR, KindCLR}:         routeLinear,
	{KindALR, KindALR}:         routeLinear, // identity when references match
	{KindALR, KindILR}:         routeLinear,

	{KindILR, KindProportions}: routeToSimplex,
	{KindILR, KindCLR}:         routeLinear,
	{KindILR, KindALR}:         routeLinear,
	{KindILR, KindILR}:         routeLinear, // identity when bases match
}

// Transition is a prepared mapping between two systems for D parts.
type Transition struct {
	src, dst System
	d        int
	route    route
	m        *mat.Dense
	// Workers bounds the parallel per-slice map of the Array methods (<= 0: GOMAXPROCS).
	Workers int
}

// NewTransition looks up (src, dst) in the transform table and prepares the
// map for D parts. Both systems are validated against D first.
//
// Returns ErrTooFewCategories, ErrInvalidReference, ErrInvalidBasis or
// ErrUnsupportedTransform.
// Complexity: O(D³) for linear routes, O(D²) otherwise.
func NewTransition(src, dst System, D int) (*Transition, error) {
	if err := src.Validate(D); err != nil {
		return nil, fmt.Errorf("NewTransition(src): %w", err)
	}
	if err := dst.Validate(D); err != nil {
		return nil, fmt.Errorf("NewTransition(dst): %w", err)
	}
	r, ok := transitionTable[[2]Kind{src.kind, dst.kind}]
	if !ok {
		return nil, fmt.Errorf("NewTransition(%s→%s): %w", src, dst, ErrUnsupportedTransform)
	}
	if src.Equal(dst, D) {
		r = routeIdentity
	}
	t := &Transition{src: src, dst: dst, d: D, route: r}
	switch r {
	case routeLinear:
		t.m = new(mat.Dense)
		t.m.Mul(fromCLR(dst, D), toCLR(src, D))
	case routeFromSimplex:
		t.m = fromCLR(dst, D)
	case routeToSimplex:
		t.m = toCLR(src, D)
	}

	return t, nil
}

// Source returns the system the transition maps from.
func (t *Transition) Source() System { return t.src }

// Target returns the system the transition maps to.
func (t *Transition) Target() System { return t.dst }

// Route names the route taken ("identity", "linear", "from-simplex", "to-simplex").
func (t *Transition) Route() string { return routeNames[t.route] }

// IsIdentity reports whether the transition leaves values unchanged.
func (t *Transition) IsIdentity() bool { return t.route == routeIdentity }

// CovarianceDefined reports whether ApplyCov can map covariances.
func (t *Transition) CovarianceDefined() bool {
	return t.route == routeIdentity || t.route == routeLinear
}

// Apply maps every column of x (source axis × m) to the target system.
// Complexity: O(D²·m).
func (t *Transition) Apply(x mat.Matrix) (*mat.Dense, error) {
	if r, _ := x.Dims(); r != t.src.Axis(t.d) {
		return nil, fmt.Errorf("Transition.Apply(rows=%d): %w", r, ErrDimensionMismatch)
	}
	switch t.route {
	case routeIdentity:
		return mat.DenseCopyOf(x), nil
	case routeLinear:
		var out mat.Dense
		out.Mul(t.m, x)
		return &out, nil
	case routeFromSimplex:
		z, err := CLR(x)
		if err != nil {
			return nil, fmt.Errorf("Transition.Apply: %w", err)
		}
		var out mat.Dense
		out.Mul(t.m, z)
		return &out, nil
	case routeToSimplex:
		var z mat.Dense
		z.Mul(t.m, x)
		return CLRInverse(&z)
	}

	return nil, fmt.Errorf("Transition.Apply: %w", ErrUnsupportedTransform)
}

// ApplyCov maps a covariance matrix (source axis square) as M Σ Mᵀ.
// The result is exactly symmetric. Routes through the simplex return
// ErrUnsupportedTransform.
//
// Complexity: O(D³).
func (t *Transition) ApplyCov(s mat.Matrix) (*mat.Dense, error) {
	n := t.src.Axis(t.d)
	if r, c := s.Dims(); r != n || c != n {
		return nil, fmt.Errorf("Transition.ApplyCov(%dx%d): %w", r, c, ErrDimensionMismatch)
	}
	switch t.route {
	case routeIdentity:
		return mat.DenseCopyOf(s), nil
	case routeLinear:
		var ms, out mat.Dense
		ms.Mul(t.m, s)
		out.Mul(&ms, t.m.T())
		symmetrize(&out)
		return &out, nil
	}

	return nil, fmt.Errorf("Transition.ApplyCov(%s→%s): %w", t.src, t.dst, ErrUnsupportedTransform)
}

// ApplyArray maps every slice of a with Apply. Column labels are kept; row
// labels are dropped since the category axis changes meaning.
func (t *Transition) ApplyArray(a *array.Array3) (*array.Array3, error) {
	return t.mapArray(a, t.Apply)
}

// ApplyCovArray maps every slice of a with ApplyCov.
func (t *Transition) ApplyCovArray(a *array.Array3) (*array.Array3, error) {
	if !t.CovarianceDefined() {
		return nil, fmt.Errorf("Transition.ApplyCovArray(%s→%s): %w", t.src, t.dst, ErrUnsupportedTransform)
	}

	return t.mapArray(a, t.ApplyCov)
}

func (t *Transition) mapArray(a *array.Array3, fn func(mat.Matrix) (*mat.Dense, error)) (*array.Array3, error) {
	if err := array.ValidateNotNil(a); err != nil {
		return nil, err
	}
	return mapSlices(a, t.Workers, fn)
}

// mapSlices applies fn to every iteration slice in parallel; slice k of the
// result is fn(slice k of a). All outputs must share one shape.
//
// Stage 1: map slice 0 to learn the output shape and allocate the result.
// Stage 2: map the remaining slices on the worker pool, each writing its own
// slice; SetSlice rejects a shape that differs from slice 0.
func mapSlices(a *array.Array3, limit int, fn func(mat.Matrix) (*mat.Dense, error)) (*array.Array3, error) {
	first, err := a.Slice(0)
	if err != nil {
		return nil, err
	}
	head, err := fn(first)
	if err != nil {
		return nil, err
	}
	r, c := head.Dims()
	out, err := array.New(r, c, a.Iterations())
	if err != nil {
		return nil, err
	}
	if err = out.SetSlice(0, head); err != nil {
		return nil, err
	}
	err = workers.ForEach(a.Iterations()-1, limit, func(i int) error {
		k := i + 1
		s, err := a.Slice(k)
		if err != nil {
			return err
		}
		m, err := fn(s)
		if err != nil {
			return err
		}
		return out.SetSlice(k, m)
	})
	if err != nil {
		return nil, err
	}
	_, cols := a.Names()

	return out.WithNames(nil, cols)
}

// toCLR returns the D × axis matrix mapping coordinates of s to CLR.
func toCLR(s System, D int) *mat.Dense {
	switch s.kind {
	case KindALR:
		// center · embed: insert a zero row at ref, then subtract the column mean.
		m := mat.NewDense(D, D-1, nil)
		var i, row int
		for i = 0; i < D; i++ {
			if i == s.ref {
				continue
			}
			for r := 0; r < D; r++ {
				v := -1 / float64(D)
				if r == i {
					v += 1
				}
				m.Set(r, row, v)
			}
			row++
		}
		return m
	case KindILR:
		return s.Basis(D)
	}

	return eye(D)
}

// fromCLR returns the axis × D matrix mapping CLR (or any log vector, for
// ALR/ILR) to coordinates of s.
func fromCLR(s System, D int) *mat.Dense {
	switch s.kind {
	case KindALR:
		m := mat.NewDense(D-1, D, nil)
		row := 0
		for i := 0; i < D; i++ {
			if i == s.ref {
				continue
			}
			m.Set(row, i, 1)
			m.Set(row, s.ref, -1)
			row++
		}
		return m
	case KindILR:
		return mat.DenseCopyOf(s.Basis(D).T())
	}

	return eye(D)
}

// symmetrize replaces m with (m + mᵀ)/2 in place.
func symmetrize(m *mat.Dense) {
	n, _ := m.Dims()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := 0.5 * (m.At(i, j) + m.At(j, i))
			m.Set(i, j, v)
			m.Set(j, i, v)
		}
	}
}
