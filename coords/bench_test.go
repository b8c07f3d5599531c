// Package coords_test provides benchmarks for array-level coordinate transforms.
package coords_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/pibble/array"
	"github.com/katalvlaran/pibble/coords"
)

var sinkA *array.Array3

func BenchmarkALRInverseArray(b *testing.B) {
	for _, D := range []int{10, 50} {
		b.Run(fmt.Sprintf("D=%d", D), func(b *testing.B) {
			a := randomProportionArray(b, D, 100, 200, 1)
			y, err := coords.ALRArray(a, D-1)
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				out, err := coords.ALRInverseArray(y, D-1)
				if err != nil {
					b.Fatal(err)
				}
				sinkA = out
			}
		})
	}
}
