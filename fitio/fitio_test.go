// SPDX-License-Identifier: MIT
package fitio_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pibble/array"
	"github.com/katalvlaran/pibble/coords"
	"github.com/katalvlaran/pibble/fit"
	"github.com/katalvlaran/pibble/fitio"
)

const small = `
D: 3
N: 2
Q: 1
iter: 2
coord: {kind: alr, reference: 0}
names:
  categories: [a, b, c]
  samples: [s1, s2]
X: [[1, 1]]
Y:
  - [3, 4]
  - [1, 0]
  - [6, 6]
prior:
  upsilon: 5
  Theta: [[0], [0]]
  Gamma: [[1]]
  Xi: [[1, 0], [0, 1]]
Lambda:
  - [[0.5], [1.0]]
  - [[0.4], [1.1]]
Sigma:
  - [[1, 0.2], [0.2, 1]]
  - [[2, 0], [0, 2]]
`

func TestDecode_Document(t *testing.T) {
	f, err := fitio.Decode(strings.NewReader(small))
	require.NoError(t, err)

	assert.Equal(t, 3, f.Categories())
	assert.Equal(t, 2, f.Iterations())
	assert.True(t, f.Coord().Equal(coords.NewALR(0), 3))
	assert.Equal(t, []string{"log(b/a)", "log(c/a)"}, f.CoordLabels())
	assert.Equal(t, []string{"s1", "s2"}, f.SampleNames())
	assert.Equal(t, []fit.Parameter{fit.ParamLambda, fit.ParamSigma}, f.Present())
	require.NoError(t, f.RequireHyperparameters())

	lambda, err := f.Lambda()
	require.NoError(t, err)
	v, err := lambda.At(1, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.1, v)

	y, err := f.Y()
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 10}, array.ColSums(y))
}

func TestDecode_DefaultCoordAndJSON(t *testing.T) {
	f, err := fitio.Decode(strings.NewReader(`{"D": 4, "N": 1, "Q": 1, "iter": 1, "X": [[2]]}`))
	require.NoError(t, err)
	assert.True(t, f.Coord().Equal(coords.NewALR(3), 4), "documents without coord default to alr against the last category")
	assert.Empty(t, f.Present())
}

func TestDecode_Errors(t *testing.T) {
	for _, tc := range []struct {
		name string
		doc  string
		want error
	}{
		{"unknown field", "D: 3\nN: 1\nQ: 1\niter: 1\nbogus: 1\n", fitio.ErrMalformed},
		{"ragged", "D: 3\nN: 2\nQ: 1\niter: 1\nX: [[1], [1, 2]]\n", fitio.ErrMalformed},
		{"bad kind", "D: 3\nN: 1\nQ: 1\niter: 1\ncoord: {kind: polar}\n", fitio.ErrMalformed},
		{"shape", "D: 3\nN: 2\nQ: 1\niter: 1\nX: [[1, 1, 1]]\n", fit.ErrDimensionMismatch},
		{"iterations", "D: 3\nN: 1\nQ: 1\niter: 2\nLambda:\n  - [[0], [0]]\n", fit.ErrDimensionMismatch},
		{"dimensions", "D: 1\nN: 1\nQ: 1\niter: 1\n", fit.ErrInvalidArgument},
		{"simplex covariance", "D: 2\nN: 1\nQ: 1\niter: 1\ncoord: {kind: proportions}\nLambda:\n  - [[0.5], [0.5]]\nSigma:\n  - [[1, 0], [0, 1]]\n", fit.ErrInvalidArgument},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fitio.Decode(strings.NewReader(tc.doc))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	f, err := fitio.Decode(strings.NewReader(small))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, fitio.Encode(&buf, f))
	out := buf.String()
	assert.Contains(t, out, "kind: alr")
	assert.Contains(t, out, "reference: 0")
	assert.Contains(t, out, "[0.5]")

	back, err := fitio.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, f.String(), back.String())
	for _, p := range f.Present() {
		a, _ := f.Param(p)
		b, err := back.Param(p)
		require.NoError(t, err)
		assert.True(t, array.AllClose(a, b, 0, 0), "%s", p)
	}
	xi, _ := f.Xi()
	xi2, err := back.Xi()
	require.NoError(t, err)
	assert.True(t, mat.Equal(xi, xi2))
}

func TestEncode_CustomBasis(t *testing.T) {
	f, err := fitio.Decode(strings.NewReader(small))
	require.NoError(t, err)
	basis := coords.DefaultILRBasis(3)
	// Swap the columns so the basis is not the default one.
	swapped := mat.NewDense(3, 2, nil)
	for i := 0; i < 3; i++ {
		swapped.Set(i, 0, basis.At(i, 1))
		swapped.Set(i, 1, basis.At(i, 0))
	}
	ilr, err := fit.ToILR(f, swapped)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, fitio.Encode(&buf, ilr))
	back, err := fitio.Decode(&buf)
	require.NoError(t, err)
	assert.True(t, back.Coord().CustomBasis())
	assert.True(t, mat.EqualApprox(swapped, back.Coord().Basis(3), 1e-15))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(small), 0o600))
	f, err := fitio.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Samples())

	_, err = fitio.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMatrix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "newdata.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- [1, 1, 1]\n- [0, 0.5, 1]\n"), 0o600))
	m, err := fitio.LoadMatrix(path)
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(2, 3, []float64{1, 1, 1, 0, 0.5, 1}), m))

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("[]\n"), 0o600))
	_, err = fitio.LoadMatrix(empty)
	require.ErrorIs(t, err, fitio.ErrMalformed)
}
