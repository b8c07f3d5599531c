// SPDX-License-Identifier: MIT
// Package: tidy
//
// Purpose:
//   - Group long-format records by every key column and reduce each group.
//   - Cache: Summarize returns the cached tables untouched when every
//     requested parameter is already summarized on the fit.
//
// Layout:
//   - wide (default): one row per group with mean, median, all intervals and
//     the extra statistics.
//   - long (WithGatherLong): one row per (group, width) with the mean and a
//     single interval; Median is NaN.

package tidy

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pibble/array"
	"github.com/katalvlaran/pibble/fit"
	"github.com/katalvlaran/pibble/internal/workers"
)

// group collects the draws sharing one key tuple.
type group struct {
	key    [4]int
	labels [4]string
	values []float64
}

// Summarize reduces the draws of the selected parameters (default: all
// present) and returns one table per parameter together with f carrying the
// tables in its summary cache.
//
// Stage 1: resolve the parameter set and serve it from the cache when every
// table is already present.
// Stage 2: flatten the draws to records and group them by key tuple.
// Stage 3: reduce each group on the worker pool.
//
// Errors:
//   - fit.ErrMissingComponent when a selected parameter has no draws.
//
// Complexity: O(R log I) for R records and I draws per group (sorting for
// the quantiles).
func Summarize(f *fit.Fit, opts ...Option) (map[fit.Parameter]*fit.SummaryTable, *fit.Fit, error) {
	o := gatherOptions(opts...)
	pars, err := resolvePars(f, o.pars)
	if err != nil {
		return nil, nil, fmt.Errorf("Summarize: %w", err)
	}
	if cached, ok := f.CachedSummary(pars); ok {
		return cached, f, nil
	}
	if f.Iterations() == 1 {
		o.logger.Warn("summarizing a single draw: intervals collapse to the draw itself")
	}

	frame, err := samples(f, pars, &o)
	if err != nil {
		return nil, nil, fmt.Errorf("Summarize: %w", err)
	}
	groups := groupRecords(frame.Records, pars)

	tables := make(map[fit.Parameter]*fit.SummaryTable, len(pars))
	for _, p := range pars {
		t, err := reduceGroups(p, groups[p], &o)
		if err != nil {
			return nil, nil, fmt.Errorf("Summarize(%s): %w", p, err)
		}
		if o.asFactor {
			t.Levels = make(map[string][]string, len(t.Columns))
			for _, c := range t.Columns {
				t.Levels[c] = frame.Levels[c]
			}
		}
		tables[p] = t
	}

	return tables, f.WithSummary(tables), nil
}

// SummarizeArray reduces a coord × sample × iteration array such as a
// prediction: one group per (coord, sample). Under WithUseNames the row and
// column names of a label the groups.
func SummarizeArray(a *array.Array3, p fit.Parameter, opts ...Option) (*fit.SummaryTable, error) {
	if err := array.ValidateNotNil(a); err != nil {
		return nil, fmt.Errorf("SummarizeArray: %w", err)
	}
	o := gatherOptions(opts...)
	r, c, iter := a.Dims()
	if iter == 1 {
		o.logger.Warn("summarizing a single draw: intervals collapse to the draw itself")
	}
	rowNames, colNames := a.Names()
	if rowNames == nil {
		rowNames = indexLabels(r)
	}
	if colNames == nil {
		colNames = indexLabels(c)
	}

	values := a.Values()
	groups := make([]*group, 0, r*c)
	var i, j, k int
	for j = 0; j < c; j++ {
		for i = 0; i < r; i++ {
			g := &group{key: [4]int{i, -1, j, -1}, values: make([]float64, iter)}
			if o.useNames {
				g.labels = [4]string{rowNames[i], "", colNames[j], ""}
			}
			for k = 0; k < iter; k++ {
				g.values[k] = values[k*r*c+i*c+j]
			}
			groups = append(groups, g)
		}
	}
	t, err := reduceGroups(p, groups, &o)
	if err != nil {
		return nil, fmt.Errorf("SummarizeArray: %w", err)
	}
	if o.asFactor {
		t.Levels = map[string][]string{ColCoord: rowNames, ColSample: colNames}
	}

	return t, nil
}

// groupRecords partitions records by parameter and key tuple, keeping the
// first-appearance order of groups.
// Complexity: O(R).
func groupRecords(recs []Record, pars []fit.Parameter) map[fit.Parameter][]*group {
	out := make(map[fit.Parameter][]*group, len(pars))
	index := make(map[fit.Parameter]map[[4]int]*group, len(pars))
	for _, p := range pars {
		index[p] = make(map[[4]int]*group)
	}
	for n := range recs {
		rec := &recs[n]
		key := rec.key()
		g, ok := index[rec.Parameter][key]
		if !ok {
			g = &group{key: key, labels: rec.labels()}
			index[rec.Parameter][key] = g
			out[rec.Parameter] = append(out[rec.Parameter], g)
		}
		g.values = append(g.values, rec.Value)
	}

	return out
}

// reduceGroups builds the table of one parameter. Key columns that are -1
// in every group are dropped. Groups are reduced in parallel and their rows
// appended in group order, so the table does not depend on the worker count.
func reduceGroups(p fit.Parameter, groups []*group, o *options) (*fit.SummaryTable, error) {
	var keep []int
	for c := range keyColumns {
		for _, g := range groups {
			if g.key[c] >= 0 {
				keep = append(keep, c)
				break
			}
		}
	}
	t := &fit.SummaryTable{Parameter: p, Long: o.gatherLong}
	for _, c := range keep {
		t.Columns = append(t.Columns, keyColumns[c])
	}
	for _, s := range o.extra {
		t.ExtraNames = append(t.ExtraNames, s.Name)
	}

	perGroup := make([][]fit.SummaryRow, len(groups))
	err := workers.ForEach(len(groups), o.workers, func(n int) error {
		perGroup[n] = summarizeGroup(groups[n], keep, o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, rows := range perGroup {
		t.Rows = append(t.Rows, rows...)
	}

	return t, nil
}

// summarizeGroup reduces one group to a single wide row or to one row per
// interval when the table is long. Reducers receive their own copy of the
// values since they sort in place.
func summarizeGroup(g *group, keep []int, o *options) []fit.SummaryRow {
	index := make([]int, len(keep))
	var labels []string
	if o.useNames {
		labels = make([]string, len(keep))
	}
	for n, c := range keep {
		index[n] = g.key[c]
		if labels != nil {
			labels[n] = g.labels[c]
		}
	}
	var extra []float64
	if len(o.extra) > 0 {
		extra = make([]float64, len(o.extra))
		for n, s := range o.extra {
			extra[n] = s.Fn(append([]float64(nil), g.values...))
		}
	}
	red := o.reducer.Reduce(append([]float64(nil), g.values...))

	if !o.gatherLong {
		return []fit.SummaryRow{{
			Index:     index,
			Labels:    labels,
			Mean:      red.Mean,
			Median:    red.Median,
			Intervals: red.Intervals,
			Extra:     extra,
		}}
	}
	rows := make([]fit.SummaryRow, len(red.Intervals))
	for n, iv := range red.Intervals {
		rows[n] = fit.SummaryRow{
			Index:     index,
			Labels:    labels,
			Mean:      red.Mean,
			Median:    math.NaN(),
			Intervals: []fit.Interval{iv},
			Extra:     extra,
		}
	}

	return rows
}
