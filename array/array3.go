// SPDX-License-Identifier: MIT

// Package array - Array3 storage (slice-major, row-major inside a slice) & safe accessors.
//
// Purpose:
//   - Hold a stack of equally shaped matrices indexed by posterior iteration.
//   - Guarantee safety at the public surface: At/Set/Slice return errors instead of panicking.
//   - Expose each iteration slice as a no-copy *mat.Dense view so gonum kernels
//     can read and write it directly.
//
// Layout:
//   - element (i, j, k) lives at offset k*rows*cols + i*cols + j.
//   - slice k is the contiguous window data[k*rows*cols : (k+1)*rows*cols].
//
// Complexity quicksheet:
//   - New: O(r*c*n) zero-init; At/Set: O(1); Slice, Head: O(1).

package array

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ---------- error context tags ----------

const (
	ctxNew       = "New"
	ctxAt        = "At"
	ctxSet       = "Set"
	ctxSlice     = "Slice"
	ctxSetSlice  = "SetSlice"
	ctxFromSlice = "FromSlices"
	ctxNames     = "WithNames"
	ctxHead      = "Head"
)

// arrayErrorf wraps an error with a uniform Array3 context and callsite indices.
func arrayErrorf(method string, i, j, k int, err error) error {
	return fmt.Errorf("Array3.%s(%d,%d,%d): %w", method, i, j, k, err)
}

// Array3 is a dense rows × cols × iterations array of float64 values.
//   - r, c, n hold the axis lengths.
//   - data is a flat buffer of length r*c*n (see layout above).
//   - rowNames / colNames are optional axis labels; each is either nil or
//     exactly as long as its axis.
type Array3 struct {
	r, c, n  int
	data     []float64
	rowNames []string
	colNames []string
}

// New allocates a zero-filled rows × cols × iter array.
// Returns ErrBadShape when any axis length is not positive.
func New(rows, cols, iter int) (*Array3, error) {
	if rows <= 0 || cols <= 0 || iter <= 0 {
		return nil, arrayErrorf(ctxNew, rows, cols, iter, ErrBadShape)
	}

	return &Array3{r: rows, c: cols, n: iter, data: make([]float64, rows*cols*iter)}, nil
}

// FromSlices stacks equally shaped matrices into a new array.
// Slice k of the result is a copy of slices[k].
func FromSlices(slices ...mat.Matrix) (*Array3, error) {
	if len(slices) == 0 {
		return nil, arrayErrorf(ctxFromSlice, 0, 0, 0, ErrBadShape)
	}
	r, c := slices[0].Dims()
	a, err := New(r, c, len(slices))
	if err != nil {
		return nil, err
	}
	for k, m := range slices {
		if err = a.SetSlice(k, m); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Rows returns the length of the first (category) axis.
func (a *Array3) Rows() int { return a.r }

// Cols returns the length of the second (sample or covariate) axis.
func (a *Array3) Cols() int { return a.c }

// Iterations returns the length of the iteration axis.
func (a *Array3) Iterations() int { return a.n }

// Dims packs all three axis lengths into a single call.
func (a *Array3) Dims() (rows, cols, iter int) { return a.r, a.c, a.n }

// offset computes the flat offset or returns ErrOutOfRange.
func (a *Array3) offset(i, j, k int) (int, error) {
	if i < 0 || i >= a.r || j < 0 || j >= a.c || k < 0 || k >= a.n {
		return 0, ErrOutOfRange
	}

	return k*a.r*a.c + i*a.c + j, nil
}

// At returns the value at (i, j, k) or ErrOutOfRange.
func (a *Array3) At(i, j, k int) (float64, error) {
	off, err := a.offset(i, j, k)
	if err != nil {
		return 0, arrayErrorf(ctxAt, i, j, k, err)
	}

	return a.data[off], nil
}

// Set stores v at (i, j, k). NaN and ±Inf are rejected with ErrNaNInf.
func (a *Array3) Set(i, j, k int, v float64) error {
	off, err := a.offset(i, j, k)
	if err != nil {
		return arrayErrorf(ctxSet, i, j, k, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return arrayErrorf(ctxSet, i, j, k, ErrNaNInf)
	}
	a.data[off] = v

	return nil
}

// Slice returns a no-copy rows × cols view of iteration k.
// Writes through the view are visible in the array.
func (a *Array3) Slice(k int) (*mat.Dense, error) {
	if k < 0 || k >= a.n {
		return nil, arrayErrorf(ctxSlice, 0, 0, k, ErrOutOfRange)
	}

	return a.slice(k), nil
}

// slice is the unchecked form of Slice for internal loops.
func (a *Array3) slice(k int) *mat.Dense {
	size := a.r * a.c
	base := k * size

	// Three-index slice caps the view so gonum never grows into slice k+1.
	return mat.NewDense(a.r, a.c, a.data[base:base+size:base+size])
}

// SetSlice copies m into iteration k. m must be rows × cols.
func (a *Array3) SetSlice(k int, m mat.Matrix) error {
	if k < 0 || k >= a.n {
		return arrayErrorf(ctxSetSlice, 0, 0, k, ErrOutOfRange)
	}
	if r, c := m.Dims(); r != a.r || c != a.c {
		return arrayErrorf(ctxSetSlice, r, c, k, ErrDimensionMismatch)
	}
	a.slice(k).Copy(m)

	return nil
}

// Column copies the composition at (column j, iteration k) into dst and returns it.
// dst is reallocated when its length differs from Rows().
func (a *Array3) Column(dst []float64, j, k int) ([]float64, error) {
	if _, err := a.offset(0, j, k); err != nil {
		return nil, arrayErrorf(ctxAt, 0, j, k, err)
	}
	if len(dst) != a.r {
		dst = make([]float64, a.r)
	}
	base := k*a.r*a.c + j
	for i := 0; i < a.r; i++ {
		dst[i] = a.data[base+i*a.c]
	}

	return dst, nil
}

// Values returns a copy of the flat buffer in storage order.
func (a *Array3) Values() []float64 {
	out := make([]float64, len(a.data))
	copy(out, a.data)

	return out
}

// Head returns a view of the first n iterations sharing storage with a.
func (a *Array3) Head(n int) (*Array3, error) {
	if n <= 0 || n > a.n {
		return nil, arrayErrorf(ctxHead, a.r, a.c, n, ErrOutOfRange)
	}

	return &Array3{
		r:        a.r,
		c:        a.c,
		n:        n,
		data:     a.data[: n*a.r*a.c : n*a.r*a.c],
		rowNames: a.rowNames,
		colNames: a.colNames,
	}, nil
}

// Names returns copies of the row and column labels (nil when unset).
func (a *Array3) Names() (rows, cols []string) {
	return cloneStrings(a.rowNames), cloneStrings(a.colNames)
}

// WithNames returns a shallow copy sharing storage with a and carrying the
// given axis labels. A nil vector clears that axis; a non-nil vector must
// match the axis length exactly.
func (a *Array3) WithNames(rows, cols []string) (*Array3, error) {
	if rows != nil && len(rows) != a.r {
		return nil, arrayErrorf(ctxNames, len(rows), a.r, 0, ErrDimensionMismatch)
	}
	if cols != nil && len(cols) != a.c {
		return nil, arrayErrorf(ctxNames, len(cols), a.c, 1, ErrDimensionMismatch)
	}
	out := *a
	out.rowNames = cloneStrings(rows)
	out.colNames = cloneStrings(cols)

	return &out, nil
}

// String renders every slice as a labelled block, for diagnostics only.
func (a *Array3) String() string {
	var b strings.Builder
	var i, j, k int
	for k = 0; k < a.n; k++ {
		fmt.Fprintf(&b, ", , %d\n", k)
		base := k * a.r * a.c
		for i = 0; i < a.r; i++ {
			b.WriteString("[")
			for j = 0; j < a.c; j++ {
				fmt.Fprintf(&b, "%g", a.data[base+i*a.c+j])
				if j+1 < a.c {
					b.WriteString(", ")
				}
			}
			b.WriteString("]\n")
		}
	}

	return b.String()
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)

	return out
}
