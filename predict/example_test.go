// SPDX-License-Identifier: MIT
package predict_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pibble/array"
	"github.com/katalvlaran/pibble/fit"
	"github.com/katalvlaran/pibble/predict"
	"github.com/katalvlaran/pibble/sampling"
)

// ExamplePredict simulates counts of 100 reads per sample from prior draws.
func ExamplePredict() {
	f, _ := fit.New(3, 4, 1, 1,
		fit.WithUpsilon(6),
		fit.WithTheta(mat.NewDense(2, 1, nil)),
		fit.WithGamma(mat.NewDense(1, 1, []float64{1})),
		fit.WithXi(mat.NewDense(2, 2, []float64{1, 0, 0, 1})),
		fit.WithX(mat.NewDense(1, 4, []float64{1, 1, 1, 1})),
	)
	prior, err := sampling.SamplePrior(f, 20, sampling.WithPars(fit.ParamLambda, fit.ParamSigma))
	if err != nil {
		fmt.Println(err)
		return
	}
	res, err := predict.Predict(prior, predict.WithResponse(predict.ResponseY), predict.WithSize(100))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Draws.Dims())
	first, _ := res.Draws.Slice(0)
	fmt.Println(array.ColSums(first))
	// Output:
	// 3 4 20
	// [100 100 100 100]
}
