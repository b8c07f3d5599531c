// SPDX-License-Identifier: MIT

package fit

import (
	"fmt"

	"github.com/katalvlaran/pibble/array"
	"github.com/katalvlaran/pibble/coords"
)

// Axis selects one of the named axes of a fit.
type Axis uint8

const (
	// AxisCategories is the D-long composition axis.
	AxisCategories Axis = iota + 1
	// AxisCovariates is the Q-long covariate axis.
	AxisCovariates
	// AxisSamples is the N-long observation axis.
	AxisSamples
)

// String returns the lower-case axis name.
func (a Axis) String() string {
	switch a {
	case AxisCategories:
		return "categories"
	case AxisCovariates:
		return "covariates"
	case AxisSamples:
		return "samples"
	}

	return "unknown"
}

// CategoryNames returns a copy of the category labels, or nil.
func (f *Fit) CategoryNames() []string { return cloneNames(f.categoryNames) }

// CovariateNames returns a copy of the covariate labels, or nil.
func (f *Fit) CovariateNames() []string { return cloneNames(f.covariateNames) }

// SampleNames returns a copy of the sample labels, or nil.
func (f *Fit) SampleNames() []string { return cloneNames(f.sampleNames) }

// Names returns a copy of the labels on axis, or nil.
func (f *Fit) Names(axis Axis) []string {
	switch axis {
	case AxisCategories:
		return f.CategoryNames()
	case AxisCovariates:
		return f.CovariateNames()
	case AxisSamples:
		return f.SampleNames()
	}

	return nil
}

// WithNames returns a fit whose axis carries names. A nil slice clears the
// labels; any other length must equal the axis size.
func (f *Fit) WithNames(axis Axis, names []string) (*Fit, error) {
	out := f.clone()
	switch axis {
	case AxisCategories:
		out.categoryNames = cloneNames(names)
	case AxisCovariates:
		out.covariateNames = cloneNames(names)
	case AxisSamples:
		out.sampleNames = cloneNames(names)
	default:
		return nil, fmt.Errorf("WithNames(axis=%d): %w", axis, ErrInvalidArgument)
	}
	if err := out.check(); err != nil {
		return nil, fmt.Errorf("WithNames(%s): %w", axis, err)
	}

	return out, nil
}

// CoordLabels returns the category-axis labels in the fit's current
// coordinate system, or nil when no category names are set.
func (f *Fit) CoordLabels() []string {
	return coords.Labels(f.coord, f.categoryNames)
}

// Coef returns the Lambda draws with the category axis labelled in the
// current coordinate system and the covariate axis labelled with covariate
// names. Unset names leave the axis unlabelled.
func Coef(f *Fit) (*array.Array3, error) {
	lambda, err := f.Lambda()
	if err != nil {
		return nil, fmt.Errorf("Coef: %w", err)
	}

	return lambda.WithNames(f.CoordLabels(), f.covariateNames)
}
