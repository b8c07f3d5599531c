// SPDX-License-Identifier: MIT
// Package: tidy
//
// Purpose:
//   - Flatten Eta (coord × sample), Lambda (coord × covariate) and
//     Sigma (coord × coord2) draws into one Record per entry and iteration.
//
// Ordering:
//   - parameters in canonical order (Eta, Lambda, Sigma);
//   - inside a parameter: iteration outermost, then column, then coordinate,
//     so the coordinate index varies fastest.

package tidy

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/pibble/array"
	"github.com/katalvlaran/pibble/fit"
)

// Key column names, in table order.
const (
	ColCoord     = "coord"
	ColCoord2    = "coord2"
	ColSample    = "sample"
	ColCovariate = "covariate"
)

var keyColumns = [4]string{ColCoord, ColCoord2, ColSample, ColCovariate}

// Record is one long-format value. Index fields that are not axes of
// Parameter hold -1; label fields are set only under WithUseNames.
type Record struct {
	Parameter fit.Parameter
	Coord     int
	Coord2    int
	Sample    int
	Covariate int
	Iteration int

	CoordLabel     string
	Coord2Label    string
	SampleLabel    string
	CovariateLabel string

	Value float64
}

func (r *Record) key() [4]int { return [4]int{r.Coord, r.Coord2, r.Sample, r.Covariate} }

func (r *Record) labels() [4]string {
	return [4]string{r.CoordLabel, r.Coord2Label, r.SampleLabel, r.CovariateLabel}
}

// Frame is the output of Samples. Levels is set under WithAsFactor and maps
// every label column in use to its level ordering.
type Frame struct {
	Records []Record
	Levels  map[string][]string
}

// Samples flattens every present parameter of f (or those selected with
// WithPars) into records. A selected parameter that is absent fails with
// fit.ErrMissingComponent.
func Samples(f *fit.Fit, opts ...Option) (*Frame, error) {
	o := gatherOptions(opts...)
	pars, err := resolvePars(f, o.pars)
	if err != nil {
		return nil, fmt.Errorf("Samples: %w", err)
	}

	return samples(f, pars, &o)
}

// resolvePars defaults to the present parameters and checks presence.
func resolvePars(f *fit.Fit, pars []fit.Parameter) ([]fit.Parameter, error) {
	if len(pars) == 0 {
		pars = f.Present()
		if len(pars) == 0 {
			return nil, fmt.Errorf("no parameter draws: %w", fit.ErrMissingComponent)
		}
		return pars, nil
	}
	for _, p := range pars {
		if _, err := f.Param(p); err != nil {
			return nil, err
		}
	}

	return pars, nil
}

// axisLayout names the key columns carried by the rows and columns of p.
func axisLayout(p fit.Parameter) (rowCol, colCol int) {
	switch p {
	case fit.ParamEta:
		return 0, 2
	case fit.ParamLambda:
		return 0, 3
	default: // Sigma
		return 0, 1
	}
}

// labeler resolves the label vectors of the four key columns.
type labeler [4][]string

func newLabeler(f *fit.Fit) labeler {
	coord := f.CoordLabels()
	if coord == nil {
		coord = indexLabels(f.CategoryAxis())
	}
	sample := f.SampleNames()
	if sample == nil {
		sample = indexLabels(f.Samples())
	}
	cov := f.CovariateNames()
	if cov == nil {
		cov = indexLabels(f.Covariates())
	}

	return labeler{coord, coord, sample, cov}
}

func indexLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}

	return out
}

func samples(f *fit.Fit, pars []fit.Parameter, o *options) (*Frame, error) {
	total := 0
	arrays := make([]*array.Array3, len(pars))
	for n, p := range pars {
		a, err := f.Param(p)
		if err != nil {
			return nil, err
		}
		arrays[n] = a
		r, c, it := a.Dims()
		total += r * c * it
	}

	lab := newLabeler(f)
	frame := &Frame{Records: make([]Record, 0, total)}
	var used [4]bool
	for n, p := range pars {
		a := arrays[n]
		rowCol, colCol := axisLayout(p)
		used[rowCol], used[colCol] = true, true
		r, c, iter := a.Dims()
		values := a.Values()
		var i, j, k int
		for k = 0; k < iter; k++ {
			for j = 0; j < c; j++ {
				for i = 0; i < r; i++ {
					idx := [4]int{-1, -1, -1, -1}
					idx[rowCol], idx[colCol] = i, j
					rec := Record{
						Parameter: p,
						Coord:     idx[0],
						Coord2:    idx[1],
						Sample:    idx[2],
						Covariate: idx[3],
						Iteration: k,
						Value:     values[k*r*c+i*c+j],
					}
					if o.useNames {
						var lbl [4]string
						lbl[rowCol], lbl[colCol] = lab[rowCol][i], lab[colCol][j]
						rec.CoordLabel, rec.Coord2Label = lbl[0], lbl[1]
						rec.SampleLabel, rec.CovariateLabel = lbl[2], lbl[3]
					}
					frame.Records = append(frame.Records, rec)
				}
			}
		}
	}
	if o.asFactor {
		frame.Levels = make(map[string][]string, 4)
		for c, ok := range used {
			if ok {
				frame.Levels[keyColumns[c]] = append([]string(nil), lab[c]...)
			}
		}
	}

	return frame, nil
}
