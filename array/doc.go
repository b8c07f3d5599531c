// Package array provides Array3, the dense three-axis container that holds
// posterior draws of a matrix-valued parameter: one rows × cols matrix per
// posterior iteration.
//
// The package provides:
//
//   - Array3 with bounds-checked At/Set and no-copy per-iteration views
//     (Slice) that plug straight into gonum/mat kernels.
//   - Optional row/column labels carried with the data (WithNames), all or
//     nothing per axis.
//   - Validators for shape, symmetry and positive definiteness of slices.
//   - Reductions shared by the engines (ColSums, Median, SliceSums, AllClose).
//
// Storage is slice-major: iteration k occupies one contiguous row-major
// block, so per-iteration workers write disjoint memory.
package array
