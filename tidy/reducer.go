// SPDX-License-Identifier: MIT

package tidy

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/pibble/array"
	"github.com/katalvlaran/pibble/fit"
)

// Reduction is the summary of one group of draws.
type Reduction struct {
	Mean      float64
	Median    float64
	Intervals []fit.Interval
}

// Reducer summarizes the draws of one group. values is owned by the callee
// and may be reordered.
type Reducer interface {
	Reduce(values []float64) Reduction
}

// QuantileReducer reports the mean, the sample median and equal-tailed
// intervals at Widths: bounds are the (1-w)/2 and (1+w)/2 sample quantiles,
// interpolated linearly between closest ranks.
type QuantileReducer struct {
	Widths []float64
}

// Reduce implements Reducer.
func (q QuantileReducer) Reduce(values []float64) Reduction {
	red := Reduction{Mean: stat.Mean(values, nil)}
	sort.Float64s(values)
	red.Median = array.QuantileSorted(0.5, values)
	red.Intervals = make([]fit.Interval, len(q.Widths))
	for n, w := range q.Widths {
		red.Intervals[n] = fit.Interval{
			Width: w,
			Lower: array.QuantileSorted((1-w)/2, values),
			Upper: array.QuantileSorted((1+w)/2, values),
		}
	}

	return red
}
