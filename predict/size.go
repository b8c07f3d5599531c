// SPDX-License-Identifier: MIT

package predict

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pibble/array"
	"github.com/katalvlaran/pibble/fit"
)

// resolveSize returns the cols × n matrix of multinomial sizes.
//
// Resolution order:
//   - WithSizeMatrix: used as given (must be cols × n).
//   - WithSize: a scalar, or one value per column, replicated over draws.
//   - newdata omitted and Y present: the column sums of Y.
//   - newdata given and Y present: the median column sum of Y.
//   - otherwise ErrMissingSize.
func resolveSize(f *fit.Fit, o *options, cols, n int) (*mat.Dense, error) {
	out := mat.NewDense(cols, n, nil)
	fillRows := func(perCol []float64) {
		for j := 0; j < cols; j++ {
			v := perCol[0]
			if len(perCol) > 1 {
				v = perCol[j]
			}
			for i := 0; i < n; i++ {
				out.Set(j, i, v)
			}
		}
	}

	switch {
	case o.sizeMatrix != nil:
		if r, c := o.sizeMatrix.Dims(); r != cols || c != n {
			return nil, fmt.Errorf("size matrix %dx%d, want %dx%d: %w", r, c, cols, n, fit.ErrDimensionMismatch)
		}
		out.Copy(o.sizeMatrix)
	case o.size != nil:
		if len(o.size) != 1 && len(o.size) != cols {
			return nil, fmt.Errorf("size has %d values, want 1 or %d: %w", len(o.size), cols, fit.ErrDimensionMismatch)
		}
		fillRows(o.size)
	case !f.HasY():
		return nil, ErrMissingSize
	default:
		y, _ := f.Y()
		sums := array.ColSums(y)
		if o.newdata != nil {
			sums = []float64{array.Median(sums)}
		}
		fillRows(sums)
	}

	for _, v := range out.RawMatrix().Data {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, fmt.Errorf("size %g: %w", v, fit.ErrInvalidArgument)
		}
	}

	return out, nil
}
