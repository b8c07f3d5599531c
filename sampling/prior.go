// SPDX-License-Identifier: MIT
// Package: sampling
//
// Purpose:
//   - SamplePrior replaces a fit's draws with draws from its prior:
//     Σ ~ InvWishart(υ, Ξ), Λ | Σ ~ MN(Θ, Σ, Γ), η | Λ, Σ ~ MN(ΛX, Σ, I).
//
// Flow:
//   - Stage 1: check arguments, hyperparameters and X before any allocation.
//   - Stage 2: remember the coordinate system and move the fit to ALR
//     against the last category.
//   - Stage 3: per iteration (parallel, one stream per iteration and stage)
//     draw Σ, then Λ, then η into disjoint slices.
//   - Stage 4: build the prior fit (requested parameters only, no summary)
//     and move it back to the remembered system.

package sampling

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pibble/array"
	"github.com/katalvlaran/pibble/fit"
	"github.com/katalvlaran/pibble/internal/rng"
	"github.com/katalvlaran/pibble/internal/workers"
)

// SamplePrior draws nSamples iterations from the prior of f.
//
// Errors:
//   - fit.ErrInvalidArgument: nSamples <= 0 or an unknown parameter.
//   - fit.ErrMissingHyperparameter: upsilon, Theta, Gamma or Xi absent.
//   - fit.ErrMissingData: Eta requested without X.
//   - ErrDegreesOfFreedom / ErrNotPositiveDefinite: unusable hyperparameters.
func SamplePrior(f *fit.Fit, nSamples int, opts ...Option) (*fit.Fit, error) {
	o := gatherOptions(opts...)

	// Stage 1: preconditions.
	if nSamples <= 0 {
		return nil, fmt.Errorf("SamplePrior(nSamples=%d): %w", nSamples, fit.ErrInvalidArgument)
	}
	want := make(map[fit.Parameter]bool, len(o.pars))
	for _, p := range o.pars {
		if _, err := fit.ParseParameter(string(p)); err != nil {
			return nil, fmt.Errorf("SamplePrior: %w", err)
		}
		want[p] = true
	}
	if len(want) == 0 {
		return nil, fmt.Errorf("SamplePrior: no parameters requested: %w", fit.ErrInvalidArgument)
	}
	if err := f.RequireHyperparameters(); err != nil {
		return nil, fmt.Errorf("SamplePrior: %w", err)
	}
	if want[fit.ParamEta] && !f.HasX() {
		return nil, fmt.Errorf("SamplePrior(Eta): X: %w", fit.ErrMissingData)
	}

	// Stage 2: ALR detour.
	saved := fit.StoreCoord(f)
	g, err := fit.ToALR(f.Without(fit.AllParameters...), f.Categories()-1)
	if err != nil {
		return nil, fmt.Errorf("SamplePrior: %w", err)
	}
	if !saved.Equal(g.Coord(), f.Categories()) {
		o.logger.Debug("prior sampling in alr", "from", saved.String())
	}

	k := g.CategoryAxis()
	upsilon, _ := g.Upsilon()
	theta, _ := g.Theta()
	gamma, _ := g.Gamma()
	xi, _ := g.Xi()
	if upsilon <= float64(k-1) {
		return nil, fmt.Errorf("SamplePrior(upsilon=%g, k=%d): %w", upsilon, k, ErrDegreesOfFreedom)
	}
	scale, err := InverseSym(array.SymView(xi))
	if err != nil {
		return nil, fmt.Errorf("SamplePrior(Xi): %w", err)
	}
	gammaU, err := UpperFactor(array.SymView(gamma))
	if err != nil {
		return nil, fmt.Errorf("SamplePrior(Gamma): %w", err)
	}
	var x *mat.Dense
	if want[fit.ParamEta] {
		x, _ = g.X()
	}

	// Stage 3: per-iteration draws.
	Q, N := g.Covariates(), g.Samples()
	var sigmaA, lambdaA, etaA *array.Array3
	if sigmaA, err = array.New(k, k, nSamples); err != nil {
		return nil, err
	}
	needLambda := want[fit.ParamLambda] || want[fit.ParamEta]
	if needLambda {
		if lambdaA, err = array.New(k, Q, nSamples); err != nil {
			return nil, err
		}
	}
	if want[fit.ParamEta] {
		if etaA, err = array.New(k, N, nSamples); err != nil {
			return nil, err
		}
	}

	err = workers.ForEach(nSamples, o.workers, func(i int) error {
		sigma, l, err := invWishartScaled(upsilon, scale, rng.Stream(o.seed, rng.StageSigma, i))
		if err != nil {
			return fmt.Errorf("iteration %d: %w", i, err)
		}
		if err = sigmaA.SetSlice(i, sigma); err != nil {
			return err
		}
		if !needLambda {
			return nil
		}
		lambda := MatrixNormal(theta, l, gammaU, rng.Stream(o.seed, rng.StageLambda, i))
		if err = lambdaA.SetSlice(i, lambda); err != nil {
			return err
		}
		if etaA == nil {
			return nil
		}
		var mean mat.Dense
		mean.Mul(lambda, x)

		return etaA.SetSlice(i, MatrixNormal(&mean, l, nil, rng.Stream(o.seed, rng.StageEta, i)))
	})
	if err != nil {
		return nil, fmt.Errorf("SamplePrior: %w", err)
	}

	// Stage 4: assemble and restore coordinates.
	keep := []fit.Option{}
	if want[fit.ParamSigma] {
		keep = append(keep, fit.WithSigma(sigmaA))
	}
	if want[fit.ParamLambda] {
		keep = append(keep, fit.WithLambda(lambdaA))
	}
	if want[fit.ParamEta] {
		keep = append(keep, fit.WithEta(etaA))
	}
	prior, err := g.Derive(N, nSamples, keep...)
	if err != nil {
		return nil, fmt.Errorf("SamplePrior: %w", err)
	}
	o.logger.Debug("prior sampled", "iterations", nSamples, "parameters", prior.Present())

	out, err := fit.ReapplyCoord(prior, saved)
	if err != nil {
		return nil, fmt.Errorf("SamplePrior: %w", err)
	}

	return out, nil
}
