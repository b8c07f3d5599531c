// SPDX-License-Identifier: MIT
// Package: predict
//
// Flow:
//   - Stage 1: resolve options and check every precondition (response,
//     Lambda / Sigma presence, iterations, design shape, size) before any
//     allocation.
//   - Stage 2: move the fit to ALR against the last category unless it is
//     already in ALR or ILR. Eta is dropped first (never read), and so is
//     Sigma for LambdaX. Only the first n draws are kept.
//   - Stage 3: per draw (parallel, disjoint slices) compute LambdaX, then
//     Eta when needed.
//   - Stage 4: for counts, rebuild a fit from the transformed one carrying
//     the predicted Eta, map it to proportions and draw one multinomial per
//     column.
//   - Stage 5: map LambdaX / Eta back to the stored system, attach names and
//     the optional summary.

package predict

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pibble/array"
	"github.com/katalvlaran/pibble/coords"
	"github.com/katalvlaran/pibble/fit"
	"github.com/katalvlaran/pibble/internal/rng"
	"github.com/katalvlaran/pibble/internal/workers"
	"github.com/katalvlaran/pibble/sampling"
	"github.com/katalvlaran/pibble/tidy"
)

// Result holds predictive draws.
//
// Draws is rows × N' × n: k coordinates of Coord for LambdaX and Eta, or D
// category counts for Y (Coord is then proportions). Size is the N' × n
// matrix of multinomial sizes for Y and nil otherwise. Summary is set under
// WithSummary.
type Result struct {
	Response Response
	Draws    *array.Array3
	Summary  *fit.SummaryTable
	Coord    coords.System
	Size     *mat.Dense
}

// Predict draws the selected response for every posterior iteration of f
// (or the first n under WithIterations).
//
// Errors:
//   - ErrInvalidResponse: unknown response.
//   - fit.ErrMissingComponent: Lambda absent, or Sigma absent for Eta / Y.
//   - fit.ErrInvalidArgument: iterations beyond the draws of f, bad size values.
//   - fit.ErrMissingData: no newdata and no X in f.
//   - fit.ErrDimensionMismatch: newdata rows != Q, size shape.
//   - ErrMissingSize: Y requested with no size and no observed counts.
//   - sampling.ErrNotPositiveDefinite: a Sigma draw without Cholesky factor.
func Predict(f *fit.Fit, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)

	// Stage 1: preconditions.
	if _, err := ParseResponse(string(o.response)); err != nil {
		return nil, fmt.Errorf("Predict: %w", err)
	}
	needEta := o.response != ResponseLambdaX
	if !f.HasLambda() {
		return nil, fmt.Errorf("Predict(%s): Lambda: %w", o.response, fit.ErrMissingComponent)
	}
	if needEta && !f.HasSigma() {
		return nil, fmt.Errorf("Predict(%s): Sigma: %w", o.response, fit.ErrMissingComponent)
	}
	n := f.Iterations()
	if o.iterations > 0 {
		if o.iterations > n {
			return nil, fmt.Errorf("Predict(iterations=%d, available=%d): %w", o.iterations, n, fit.ErrInvalidArgument)
		}
		n = o.iterations
	}
	x := o.newdata
	if x == nil {
		var err error
		if x, err = f.X(); err != nil {
			return nil, fmt.Errorf("Predict: %w", err)
		}
	}
	q, cols := x.Dims()
	if q != f.Covariates() {
		return nil, fmt.Errorf("Predict: newdata has %d rows, want Q=%d: %w", q, f.Covariates(), fit.ErrDimensionMismatch)
	}
	var size *mat.Dense
	if o.response == ResponseY {
		var err error
		if size, err = resolveSize(f, &o, cols, n); err != nil {
			return nil, fmt.Errorf("Predict(Y): %w", err)
		}
	}

	// Stage 2: coordinate detour.
	saved := fit.StoreCoord(f)
	g := f.Without(fit.ParamEta)
	if !needEta {
		g = g.Without(fit.ParamSigma)
	}
	transformed := false
	var err error
	if k := saved.Kind(); k != coords.KindALR && k != coords.KindILR {
		if g, err = fit.ToALR(g, f.Categories()-1); err != nil {
			return nil, fmt.Errorf("Predict: %w", err)
		}
		transformed = true
		o.logger.Debug("predicting in alr", "from", saved.String())
	}

	lambda, _ := g.Lambda()
	if lambda, err = lambda.Head(n); err != nil {
		return nil, fmt.Errorf("Predict: %w", err)
	}
	var sigma *array.Array3
	if needEta {
		sigma, _ = g.Sigma()
		if sigma, err = sigma.Head(n); err != nil {
			return nil, fmt.Errorf("Predict: %w", err)
		}
	}

	// Stage 3: LambdaX and Eta per draw.
	k := g.CategoryAxis()
	lambdaX, err := array.New(k, cols, n)
	if err != nil {
		return nil, err
	}
	var eta *array.Array3
	if needEta {
		if eta, err = array.New(k, cols, n); err != nil {
			return nil, err
		}
	}
	err = workers.ForEach(n, o.workers, func(i int) error {
		l, _ := lambda.Slice(i)
		var lx mat.Dense
		lx.Mul(l, x)
		if err := lambdaX.SetSlice(i, &lx); err != nil {
			return err
		}
		if eta == nil {
			return nil
		}
		s, _ := sigma.Slice(i)
		lower, err := sampling.LowerFactor(array.SymView(s))
		if err != nil {
			return fmt.Errorf("Sigma draw %d: %w", i, err)
		}

		return eta.SetSlice(i, sampling.MatrixNormal(&lx, lower, nil, rng.Stream(o.seed, rng.StageEta, i)))
	})
	if err != nil {
		return nil, fmt.Errorf("Predict: %w", err)
	}

	res := &Result{Response: o.response, Coord: g.Coord()}
	switch o.response {
	case ResponseLambdaX:
		res.Draws = lambdaX
	case ResponseEta:
		res.Draws = eta
	case ResponseY:
		// Stage 4: counts.
		if res.Draws, err = drawCounts(g, eta, size, cols, n, &o); err != nil {
			return nil, fmt.Errorf("Predict(Y): %w", err)
		}
		res.Coord = coords.NewProportions()
		res.Size = size
	}

	// Stage 5: back-transform, names, summary.
	if transformed && o.response != ResponseY {
		if res.Draws, err = coords.ALRInverseArray(res.Draws, f.Categories()-1); err != nil {
			return nil, fmt.Errorf("Predict: %w", err)
		}
		res.Coord = coords.NewProportions()
		if saved.Kind() == coords.KindCLR {
			if res.Draws, err = coords.CLRArray(res.Draws); err != nil {
				return nil, fmt.Errorf("Predict: %w", err)
			}
			res.Coord = saved
		}
	}
	if o.useNames {
		if res.Draws, err = nameDraws(f, res, o.newdata == nil); err != nil {
			return nil, fmt.Errorf("Predict: %w", err)
		}
	}
	if o.summary {
		topts := []tidy.Option{tidy.WithLogger(o.logger), tidy.WithWorkers(o.workers)}
		if o.useNames {
			topts = append(topts, tidy.WithUseNames())
		}
		if res.Summary, err = tidy.SummarizeArray(res.Draws, fit.Parameter(o.response), topts...); err != nil {
			return nil, fmt.Errorf("Predict: %w", err)
		}
	}

	return res, nil
}

// drawCounts maps the predicted Eta to proportions through a fit rebuilt
// from g (the transformed fit) and draws multinomial counts per column.
func drawCounts(g *fit.Fit, eta *array.Array3, size *mat.Dense, cols, n int, o *options) (*array.Array3, error) {
	h, err := g.Derive(cols, n, fit.WithEta(eta))
	if err != nil {
		return nil, err
	}
	if h, err = fit.ToProportions(h); err != nil {
		return nil, err
	}
	props, _ := h.Eta()

	D := g.Categories()
	counts, err := array.New(D, cols, n)
	if err != nil {
		return nil, err
	}
	err = workers.ForEach(n, o.workers, func(i int) error {
		src := rng.Stream(o.seed, rng.StageCounts, i)
		dst, _ := counts.Slice(i)
		col := make([]float64, D)
		for j := 0; j < cols; j++ {
			col, _ = props.Column(col, j, i)
			y, err := sampling.Multinomial(size.At(j, i), col, src)
			if err != nil {
				return fmt.Errorf("draw %d, column %d: %w", i, j, err)
			}
			dst.SetCol(j, y)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return counts, nil
}

// nameDraws labels rows with the coordinate (or category) names of f and
// columns with its sample names when the fit's own design was used.
func nameDraws(f *fit.Fit, res *Result, ownDesign bool) (*array.Array3, error) {
	rows := coords.Labels(res.Coord, f.CategoryNames())
	var cols []string
	if ownDesign {
		cols = f.SampleNames()
	}

	return res.Draws.WithNames(rows, cols)
}
