// SPDX-License-Identifier: MIT
package sampling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/pibble/array"
	"github.com/katalvlaran/pibble/coords"
	"github.com/katalvlaran/pibble/fit"
	"github.com/katalvlaran/pibble/sampling"
)

// priorFit is a D=3, N=5, Q=2 fit carrying only hyperparameters and data.
func priorFit(t *testing.T, opts ...fit.Option) *fit.Fit {
	t.Helper()
	base := []fit.Option{
		fit.WithUpsilon(10),
		fit.WithTheta(mat.NewDense(2, 2, []float64{0.5, -1, 0, 2})),
		fit.WithGamma(mat.NewDense(2, 2, []float64{1, 0.2, 0.2, 0.5})),
		fit.WithXi(mat.NewDense(2, 2, []float64{1, 0.4, 0.4, 1})),
		fit.WithX(mat.NewDense(2, 5, []float64{
			1, 1, 1, 1, 1,
			-2, -1, 0, 1, 2,
		})),
		fit.WithY(mat.NewDense(3, 5, []float64{
			10, 20, 30, 40, 50,
			5, 5, 5, 5, 5,
			1, 2, 3, 4, 5,
		})),
		fit.WithCategoryNames("a", "b", "c"),
	}
	f, err := fit.New(3, 5, 2, 1, append(base, opts...)...)
	require.NoError(t, err)

	return f
}

func TestSamplePrior_SigmaOnly(t *testing.T) {
	f := priorFit(t)
	prior, err := sampling.SamplePrior(f, 50, sampling.WithPars(fit.ParamSigma))
	require.NoError(t, err)

	sigma, err := prior.Sigma()
	require.NoError(t, err)
	r, c, n := sigma.Dims()
	assert.Equal(t, [3]int{2, 2, 50}, [3]int{r, c, n})
	assert.False(t, prior.HasLambda())
	assert.False(t, prior.HasEta())
	assert.Equal(t, 50, prior.Iterations())
	require.NoError(t, prior.Validate(0), "every Sigma slice must be symmetric positive definite")
	assert.Equal(t, []string{"a", "b", "c"}, prior.CategoryNames())

	clr, err := fit.ToCLR(prior)
	require.NoError(t, err)
	require.NoError(t, clr.Validate(0), "the clr image of a valid prior stays valid")
}

func TestSamplePrior_AllParameters(t *testing.T) {
	f := priorFit(t)
	prior, err := sampling.SamplePrior(f, 20, sampling.WithSeed(7))
	require.NoError(t, err)
	assert.Equal(t, []fit.Parameter{fit.ParamEta, fit.ParamLambda, fit.ParamSigma}, prior.Present())

	eta, err := prior.Eta()
	require.NoError(t, err)
	require.NoError(t, array.ValidateShape(eta, 2, 5, 20))
	lambda, err := prior.Lambda()
	require.NoError(t, err)
	require.NoError(t, array.ValidateShape(lambda, 2, 2, 20))
	assert.True(t, prior.HasY(), "data survives prior sampling")
}

func TestSamplePrior_LambdaCentersOnTheta(t *testing.T) {
	const draws = 3000
	f := priorFit(t)
	prior, err := sampling.SamplePrior(f, draws, sampling.WithPars(fit.ParamLambda), sampling.WithSeed(21))
	require.NoError(t, err)
	lambda, err := prior.Lambda()
	require.NoError(t, err)
	theta, err := f.Theta()
	require.NoError(t, err)

	vals := make([]float64, draws)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < draws; k++ {
				vals[k], _ = lambda.At(i, j, k)
			}
			assert.InDelta(t, theta.At(i, j), stat.Mean(vals, nil), 0.05, "Lambda[%d,%d]", i, j)
		}
	}
}

func TestSamplePrior_WorkerCountIndependent(t *testing.T) {
	f := priorFit(t)
	one, err := sampling.SamplePrior(f, 16, sampling.WithSeed(99), sampling.WithWorkers(1))
	require.NoError(t, err)
	many, err := sampling.SamplePrior(f, 16, sampling.WithSeed(99), sampling.WithWorkers(8))
	require.NoError(t, err)
	for _, p := range fit.AllParameters {
		a, err := one.Param(p)
		require.NoError(t, err)
		b, err := many.Param(p)
		require.NoError(t, err)
		require.True(t, array.AllClose(a, b, 0, 0), "%s differs across worker counts", p)
	}

	other, err := sampling.SamplePrior(f, 16, sampling.WithSeed(100))
	require.NoError(t, err)
	a, _ := one.Sigma()
	b, _ := other.Sigma()
	assert.False(t, array.AllClose(a, b, 0, 0), "different seeds must give different draws")
}

func TestSamplePrior_SigmaStreamIgnoresRequestedSet(t *testing.T) {
	f := priorFit(t)
	all, err := sampling.SamplePrior(f, 5, sampling.WithSeed(4))
	require.NoError(t, err)
	only, err := sampling.SamplePrior(f, 5, sampling.WithSeed(4), sampling.WithPars(fit.ParamSigma))
	require.NoError(t, err)
	a, _ := all.Sigma()
	b, _ := only.Sigma()
	assert.True(t, array.AllClose(a, b, 0, 0))
}

func TestSamplePrior_RestoresCoordinates(t *testing.T) {
	clr, err := fit.ToCLR(priorFit(t))
	require.NoError(t, err)
	prior, err := sampling.SamplePrior(clr, 10, sampling.WithPars(fit.ParamSigma, fit.ParamLambda))
	require.NoError(t, err)
	assert.Equal(t, coords.KindCLR, prior.Coord().Kind())
	sigma, err := prior.Sigma()
	require.NoError(t, err)
	assert.Equal(t, 3, sigma.Rows())
	require.NoError(t, array.ValidateSymmetric(sigma, 1e-12))
}

func TestSamplePrior_DropsPosteriorAndSummary(t *testing.T) {
	lambda, err := array.New(2, 2, 3)
	require.NoError(t, err)
	f, err := priorFit(t).Derive(5, 3, fit.WithLambda(lambda))
	require.NoError(t, err)
	f = f.WithSummary(map[fit.Parameter]*fit.SummaryTable{fit.ParamLambda: {Parameter: fit.ParamLambda}})

	prior, err := sampling.SamplePrior(f, 4, sampling.WithPars(fit.ParamSigma))
	require.NoError(t, err)
	assert.False(t, prior.HasLambda())
	assert.Empty(t, prior.Summary())
}

func TestSamplePrior_Preconditions(t *testing.T) {
	f := priorFit(t)

	_, err := sampling.SamplePrior(f, 0)
	require.ErrorIs(t, err, fit.ErrInvalidArgument)
	_, err = sampling.SamplePrior(f, 3, sampling.WithPars("Omega"))
	require.ErrorIs(t, err, fit.ErrInvalidArgument)

	bare, err := fit.New(3, 5, 2, 1)
	require.NoError(t, err)
	_, err = sampling.SamplePrior(bare, 3)
	require.ErrorIs(t, err, fit.ErrMissingHyperparameter)

	noX, err := fit.New(3, 5, 2, 1,
		fit.WithUpsilon(10),
		fit.WithTheta(mat.NewDense(2, 2, nil)),
		fit.WithGamma(mat.NewDense(2, 2, []float64{1, 0, 0, 1})),
		fit.WithXi(mat.NewDense(2, 2, []float64{1, 0, 0, 1})),
	)
	require.NoError(t, err)
	_, err = sampling.SamplePrior(noX, 3)
	require.ErrorIs(t, err, fit.ErrMissingData)
	_, err = sampling.SamplePrior(noX, 3, sampling.WithPars(fit.ParamSigma, fit.ParamLambda))
	require.NoError(t, err, "X is only needed for Eta")

	lowDF, err := fit.New(3, 5, 2, 1,
		fit.WithUpsilon(1),
		fit.WithTheta(mat.NewDense(2, 2, nil)),
		fit.WithGamma(mat.NewDense(2, 2, []float64{1, 0, 0, 1})),
		fit.WithXi(mat.NewDense(2, 2, []float64{1, 0, 0, 1})),
	)
	require.NoError(t, err)
	_, err = sampling.SamplePrior(lowDF, 3, sampling.WithPars(fit.ParamSigma))
	require.ErrorIs(t, err, sampling.ErrDegreesOfFreedom)

	assert.Panics(t, func() { sampling.WithWorkers(-1) })
}
