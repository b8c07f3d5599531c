// SPDX-License-Identifier: MIT
package fit_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pibble/array"
	"github.com/katalvlaran/pibble/coords"
	"github.com/katalvlaran/pibble/fit"
)

// ExampleCoef labels the coefficient draws of a three-part ALR fit.
func ExampleCoef() {
	lambda, _ := array.FromSlices(mat.NewDense(2, 2, []float64{0.5, -1, 0.25, 2}))
	f, err := fit.New(3, 4, 2, 1,
		fit.WithLambda(lambda),
		fit.WithCoord(coords.NewALR(2)),
		fit.WithCategoryNames("a", "b", "c"),
		fit.WithCovariateNames("intercept", "x"),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	coef, _ := fit.Coef(f)
	rows, cols := coef.Names()
	fmt.Println(rows, cols)

	clr, _ := fit.ToCLR(f)
	fmt.Println(clr.Coord(), clr.CoordLabels())
	// Output:
	// [log(a/c) log(b/c)] [intercept x]
	// clr [clr(a) clr(b) clr(c)]
}
