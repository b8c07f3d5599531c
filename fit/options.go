// SPDX-License-Identifier: MIT

package fit

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pibble/array"
	"github.com/katalvlaran/pibble/coords"
)

// Option configures a Fit under construction (New or Derive).
type Option func(*Fit)

// WithEta sets the latent predictor draws. The fit takes ownership of a;
// callers must not mutate it afterwards.
func WithEta(a *array.Array3) Option { return func(f *Fit) { f.eta = a } }

// WithLambda sets the coefficient draws. The fit takes ownership of a.
func WithLambda(a *array.Array3) Option { return func(f *Fit) { f.lambda = a } }

// WithSigma sets the covariance draws. The fit takes ownership of a.
func WithSigma(a *array.Array3) Option { return func(f *Fit) { f.sigma = a } }

// WithParam sets the draws of p; unknown parameters are ignored.
func WithParam(p Parameter, a *array.Array3) Option {
	switch p {
	case ParamEta:
		return WithEta(a)
	case ParamLambda:
		return WithLambda(a)
	case ParamSigma:
		return WithSigma(a)
	}

	return func(*Fit) {}
}

// WithX sets a copy of the Q×N design matrix.
func WithX(m mat.Matrix) Option { return func(f *Fit) { f.x = denseOrNil(m) } }

// WithY sets a copy of the D×N count matrix.
func WithY(m mat.Matrix) Option { return func(f *Fit) { f.y = denseOrNil(m) } }

// WithUpsilon sets the prior degrees of freedom.
func WithUpsilon(v float64) Option {
	return func(f *Fit) { f.upsilon, f.hasUpsilon = v, true }
}

// WithXi sets a copy of the prior covariance scale (category axis square).
func WithXi(m mat.Matrix) Option { return func(f *Fit) { f.xi = denseOrNil(m) } }

// WithTheta sets a copy of the prior mean of Lambda (category axis × Q).
func WithTheta(m mat.Matrix) Option { return func(f *Fit) { f.theta = denseOrNil(m) } }

// WithGamma sets a copy of the covariate prior covariance (Q×Q).
func WithGamma(m mat.Matrix) Option { return func(f *Fit) { f.gamma = denseOrNil(m) } }

// WithCoord tags the stored arrays with the coordinate system s.
func WithCoord(s coords.System) Option { return func(f *Fit) { f.coord = s } }

// WithCategoryNames labels the D categories.
func WithCategoryNames(names ...string) Option {
	return func(f *Fit) { f.categoryNames = cloneNames(names) }
}

// WithCovariateNames labels the Q covariates.
func WithCovariateNames(names ...string) Option {
	return func(f *Fit) { f.covariateNames = cloneNames(names) }
}

// WithSampleNames labels the N samples.
func WithSampleNames(names ...string) Option {
	return func(f *Fit) { f.sampleNames = cloneNames(names) }
}

func denseOrNil(m mat.Matrix) *mat.Dense {
	if m == nil {
		return nil
	}
	if d, ok := m.(*mat.Dense); ok && d == nil {
		return nil
	}

	return mat.DenseCopyOf(m)
}

func cloneNames(names []string) []string {
	if names == nil {
		return nil
	}
	out := make([]string, len(names))
	copy(out, names)

	return out
}
