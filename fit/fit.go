// SPDX-License-Identifier: MIT

// Package fit - the fit object: dimensions, optional posterior draws, prior
// hyperparameters, training data, coordinate metadata, names and the summary
// cache.
//
// Purpose:
//   - Make field presence explicit: every optional part is a nil-able field
//     behind an accessor that fails with a sentinel when absent.
//   - Keep values immutable: every "update" returns a new *Fit sharing the
//     untouched arrays with the old one; arrays are never written after
//     construction.
//
// Invariants enforced by New:
//   - every array's iteration axis equals Iterations();
//   - category axis is D-1 under ALR/ILR and D otherwise;
//   - X is Q×N, Y is D×N, Theta is k×Q, Xi is k×k, Gamma is Q×Q;
//   - a proportions fit carries neither Sigma nor Xi;
//   - each name vector is either nil or exactly as long as its axis.

package fit

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pibble/array"
	"github.com/katalvlaran/pibble/coords"
)

// Fit is an immutable snapshot of a fitted (or prior-sampled) model.
type Fit struct {
	d, n, q, iter int

	eta, lambda, sigma *array.Array3

	upsilon    float64
	hasUpsilon bool
	xi, theta  *mat.Dense
	gamma      *mat.Dense

	x, y *mat.Dense

	coord coords.System

	categoryNames  []string
	covariateNames []string
	sampleNames    []string

	summary map[Parameter]*SummaryTable
}

// New builds a fit with D categories, N samples, Q covariates and iter
// posterior draws. Without WithCoord the fit is tagged ALR against the last
// category (index D-1).
//
// Stage 1: reject non-positive dimensions.
// Stage 2: apply opts in order, later options overwriting earlier ones.
// Stage 3: check shapes, names and coordinate metadata.
//
// Returns ErrInvalidArgument, ErrDimensionMismatch or a coords error.
// Complexity: O(len(opts)).
func New(D, N, Q, iter int, opts ...Option) (*Fit, error) {
	if D < 2 || N < 1 || Q < 1 || iter < 1 {
		return nil, fmt.Errorf("fit.New(D=%d, N=%d, Q=%d, iter=%d): %w", D, N, Q, iter, ErrInvalidArgument)
	}
	f := &Fit{d: D, n: N, q: Q, iter: iter, coord: coords.NewALR(D - 1)}
	for _, opt := range opts {
		opt(f)
	}
	if err := f.check(); err != nil {
		return nil, fmt.Errorf("fit.New: %w", err)
	}

	return f, nil
}

// check enforces the structural invariants listed in the file header.
// It reports the first violation found, in header order.
func (f *Fit) check() error {
	if err := f.coord.Validate(f.d); err != nil {
		return err
	}
	if f.coord.Kind() == coords.KindProportions && (f.sigma != nil || f.xi != nil) {
		return fmt.Errorf("covariance under %s: %w", f.coord, ErrInvalidArgument)
	}
	k := f.coord.Axis(f.d)
	arrays := []struct {
		p          Parameter
		a          *array.Array3
		rows, cols int
	}{
		{ParamEta, f.eta, k, f.n},
		{ParamLambda, f.lambda, k, f.q},
		{ParamSigma, f.sigma, k, k},
	}
	for _, e := range arrays {
		if e.a == nil {
			continue
		}
		if err := array.ValidateShape(e.a, e.rows, e.cols, f.iter); err != nil {
			return fmt.Errorf("%s: %w: %w", e.p, ErrDimensionMismatch, err)
		}
	}
	matrices := []struct {
		name       string
		m          *mat.Dense
		rows, cols int
	}{
		{"X", f.x, f.q, f.n},
		{"Y", f.y, f.d, f.n},
		{"Theta", f.theta, k, f.q},
		{"Xi", f.xi, k, k},
		{"Gamma", f.gamma, f.q, f.q},
	}
	for _, e := range matrices {
		if e.m == nil {
			continue
		}
		if r, c := e.m.Dims(); r != e.rows || c != e.cols {
			return fmt.Errorf("%s is %dx%d, want %dx%d: %w", e.name, r, c, e.rows, e.cols, ErrDimensionMismatch)
		}
	}
	names := []struct {
		axis string
		v    []string
		want int
	}{
		{"categories", f.categoryNames, f.d},
		{"covariates", f.covariateNames, f.q},
		{"samples", f.sampleNames, f.n},
	}
	for _, e := range names {
		if e.v != nil && len(e.v) != e.want {
			return fmt.Errorf("%s names: got %d, want %d: %w", e.axis, len(e.v), e.want, ErrInvalidArgument)
		}
	}

	return nil
}

// clone returns a shallow copy with its own summary map.
// Complexity: O(|summary|).
func (f *Fit) clone() *Fit {
	out := *f
	if f.summary != nil {
		out.summary = make(map[Parameter]*SummaryTable, len(f.summary))
		for k, v := range f.summary {
			out.summary[k] = v
		}
	}

	return &out
}

// Categories returns D, the number of composition parts.
func (f *Fit) Categories() int { return f.d }

// Samples returns N, the number of observations.
func (f *Fit) Samples() int { return f.n }

// Covariates returns Q, the number of covariates.
func (f *Fit) Covariates() int { return f.q }

// Iterations returns the number of posterior draws.
func (f *Fit) Iterations() int { return f.iter }

// Coord returns the coordinate system of the stored arrays.
func (f *Fit) Coord() coords.System { return f.coord }

// CategoryAxis returns the category-axis size of the stored arrays.
func (f *Fit) CategoryAxis() int { return f.coord.Axis(f.d) }

// Eta returns the latent linear predictor draws or ErrMissingComponent.
func (f *Fit) Eta() (*array.Array3, error) { return f.param(ParamEta) }

// Lambda returns the coefficient draws or ErrMissingComponent.
func (f *Fit) Lambda() (*array.Array3, error) { return f.param(ParamLambda) }

// Sigma returns the covariance draws or ErrMissingComponent.
func (f *Fit) Sigma() (*array.Array3, error) { return f.param(ParamSigma) }

// Param returns the draws of p or ErrMissingComponent.
func (f *Fit) Param(p Parameter) (*array.Array3, error) { return f.param(p) }

// param resolves p to its backing array. Unknown names are
// ErrInvalidArgument, absent draws ErrMissingComponent.
func (f *Fit) param(p Parameter) (*array.Array3, error) {
	var a *array.Array3
	switch p {
	case ParamEta:
		a = f.eta
	case ParamLambda:
		a = f.lambda
	case ParamSigma:
		a = f.sigma
	default:
		return nil, fmt.Errorf("Param(%q): %w", p, ErrInvalidArgument)
	}
	if a == nil {
		return nil, fmt.Errorf("Param(%s): %w", p, ErrMissingComponent)
	}

	return a, nil
}

// Has reports whether draws of p are present.
func (f *Fit) Has(p Parameter) bool {
	a, err := f.param(p)

	return err == nil && a != nil
}

// Present lists the parameters with draws, in canonical order
// (Eta, Lambda, Sigma). The slice is fresh on every call.
func (f *Fit) Present() []Parameter {
	out := make([]Parameter, 0, len(AllParameters))
	for _, p := range AllParameters {
		if f.Has(p) {
			out = append(out, p)
		}
	}

	return out
}

// Upsilon returns the prior degrees of freedom or ErrMissingHyperparameter.
func (f *Fit) Upsilon() (float64, error) {
	if !f.hasUpsilon {
		return 0, fmt.Errorf("Upsilon: %w", ErrMissingHyperparameter)
	}

	return f.upsilon, nil
}

// Xi returns a copy of the prior covariance scale or ErrMissingHyperparameter.
// Complexity: O(k²).
func (f *Fit) Xi() (*mat.Dense, error) { return copyOrErr("Xi", f.xi, ErrMissingHyperparameter) }

// Theta returns a copy of the prior mean of Lambda or ErrMissingHyperparameter.
func (f *Fit) Theta() (*mat.Dense, error) {
	return copyOrErr("Theta", f.theta, ErrMissingHyperparameter)
}

// Gamma returns a copy of the covariate prior covariance or ErrMissingHyperparameter.
func (f *Fit) Gamma() (*mat.Dense, error) {
	return copyOrErr("Gamma", f.gamma, ErrMissingHyperparameter)
}

// X returns a copy of the Q×N design matrix or ErrMissingData.
// Complexity: O(Q·N).
func (f *Fit) X() (*mat.Dense, error) { return copyOrErr("X", f.x, ErrMissingData) }

// Y returns a copy of the D×N count matrix or ErrMissingData.
func (f *Fit) Y() (*mat.Dense, error) { return copyOrErr("Y", f.y, ErrMissingData) }

// HasX reports whether a design matrix is present.
func (f *Fit) HasX() bool { return f.x != nil }

// HasY reports whether observed counts are present.
func (f *Fit) HasY() bool { return f.y != nil }

// RequireHyperparameters fails with ErrMissingHyperparameter naming the
// first of upsilon, Theta, Gamma, Xi that is absent. Prior sampling calls
// it before drawing anything.
func (f *Fit) RequireHyperparameters() error {
	switch {
	case !f.hasUpsilon:
		return fmt.Errorf("upsilon: %w", ErrMissingHyperparameter)
	case f.theta == nil:
		return fmt.Errorf("Theta: %w", ErrMissingHyperparameter)
	case f.gamma == nil:
		return fmt.Errorf("Gamma: %w", ErrMissingHyperparameter)
	case f.xi == nil:
		return fmt.Errorf("Xi: %w", ErrMissingHyperparameter)
	}

	return nil
}

// Without returns a fit with the draws of the given parameters (and their
// cached summaries) removed. Unknown names are ignored. The receiver is
// untouched and the remaining arrays are shared.
//
// Complexity: O(|summary| + len(params)).
func (f *Fit) Without(params ...Parameter) *Fit {
	out := f.clone()
	for _, p := range params {
		switch p {
		case ParamEta:
			out.eta = nil
		case ParamLambda:
			out.lambda = nil
		case ParamSigma:
			out.sigma = nil
		}
		delete(out.summary, p)
	}

	return out
}

// WithoutY returns a fit with the observed counts removed.
func (f *Fit) WithoutY() *Fit {
	out := f.clone()
	out.y = nil

	return out
}

// Derive builds a new fit that keeps this fit's D, Q, coordinate system,
// category and covariate names and hyperparameters, but has n samples and
// iter draws and no parameter arrays or summaries. X, Y and sample names are
// carried over only when n equals Samples(). opts are applied last.
//
// Stage 1: copy the shape-independent metadata.
// Stage 2: carry data matrices when the sample axis is unchanged.
// Stage 3: apply opts and re-check the result as New does.
//
// Returns ErrInvalidArgument for n<1 or iter<1, or any error New would report.
func (f *Fit) Derive(n, iter int, opts ...Option) (*Fit, error) {
	if n < 1 || iter < 1 {
		return nil, fmt.Errorf("Derive(n=%d, iter=%d): %w", n, iter, ErrInvalidArgument)
	}
	out := &Fit{
		d:              f.d,
		n:              n,
		q:              f.q,
		iter:           iter,
		upsilon:        f.upsilon,
		hasUpsilon:     f.hasUpsilon,
		xi:             f.xi,
		theta:          f.theta,
		gamma:          f.gamma,
		coord:          f.coord,
		categoryNames:  f.categoryNames,
		covariateNames: f.covariateNames,
	}
	if n == f.n {
		out.x, out.y, out.sampleNames = f.x, f.y, f.sampleNames
	}
	for _, opt := range opts {
		opt(out)
	}
	if err := out.check(); err != nil {
		return nil, fmt.Errorf("Derive: %w", err)
	}

	return out, nil
}

// copyOrErr wraps sentinel with name when m is absent.
func copyOrErr(name string, m *mat.Dense, sentinel error) (*mat.Dense, error) {
	if m == nil {
		return nil, fmt.Errorf("%s: %w", name, sentinel)
	}

	return mat.DenseCopyOf(m), nil
}

// HasEta reports whether Eta draws are present.
func (f *Fit) HasEta() bool { return f.eta != nil }

// HasLambda reports whether Lambda draws are present.
func (f *Fit) HasLambda() bool { return f.lambda != nil }

// HasSigma reports whether Sigma draws are present.
func (f *Fit) HasSigma() bool { return f.sigma != nil }
