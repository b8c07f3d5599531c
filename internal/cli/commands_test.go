// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/pibble/coords"
	"github.com/katalvlaran/pibble/fit"
	"github.com/katalvlaran/pibble/fitio"
)

func TestInfoCommand(t *testing.T) {
	path := writeDoc(t, "fit.yaml", fitDoc)

	out, err := run(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "fit object:")
	assert.Contains(t, out, "alr (reference 0)")

	out, err = run(t, "--format", "json", "info", path)
	require.NoError(t, err)
	var info FitInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, 3, info.Categories)
	assert.Equal(t, 2, info.Draws)
	assert.Equal(t, []string{"Lambda", "Sigma"}, info.Parameters)
	assert.True(t, info.HasX)
	assert.True(t, info.HasPrior)
}

func TestInfoCommand_LoadErrors(t *testing.T) {
	_, err := run(t, "info", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, StatusInput, ExitStatus(err))

	bad := writeDoc(t, "bad.yaml", "D: 3\nbogus: true\n")
	_, err = run(t, "info", bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, fitio.ErrMalformed)
	assert.Equal(t, StatusInput, ExitStatus(err))
}

func TestTransformCommand(t *testing.T) {
	path := writeDoc(t, "fit.yaml", fitDoc)
	dst := filepath.Join(t.TempDir(), "clr.yaml")

	out, err := run(t, "transform", path, "--to", "clr", "-o", dst)
	require.NoError(t, err)
	assert.Empty(t, out)

	g, err := fitio.Load(dst)
	require.NoError(t, err)
	assert.Equal(t, coords.KindCLR, g.Coord().Kind())
	assert.Equal(t, 3, g.CategoryAxis())

	out, err = run(t, "transform", path, "--to", "alr")
	require.NoError(t, err)
	assert.Contains(t, out, "reference: 2")

	_, err = run(t, "transform", path, "--to", "polar")
	require.Error(t, err)
	assert.Equal(t, StatusUsage, ExitStatus(err))
}

func TestPriorCommand(t *testing.T) {
	path := writeDoc(t, "fit.yaml", fitDoc)

	out, err := run(t, "prior", path, "-n", "5", "--pars", "Lambda,Sigma", "--seed", "7")
	require.NoError(t, err)
	g, err := fitio.Decode(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 5, g.Iterations())
	assert.Equal(t, []fit.Parameter{fit.ParamLambda, fit.ParamSigma}, g.Present())

	again, err := run(t, "prior", path, "-n", "5", "--pars", "Lambda,Sigma", "--seed", "7", "--workers", "1")
	require.NoError(t, err)
	assert.Equal(t, out, again, "draws depend on the seed only")

	_, err = run(t, "prior", path, "--pars", "Beta")
	require.Error(t, err)
	assert.Equal(t, StatusUsage, ExitStatus(err))

	_, err = run(t, "prior", path, "-n", "0")
	require.Error(t, err)
	assert.ErrorIs(t, err, fit.ErrInvalidArgument)
	assert.Equal(t, StatusEngine, ExitStatus(err))
}

func TestPredictCommand_LambdaX(t *testing.T) {
	path := writeDoc(t, "fit.yaml", fitDoc)

	out, err := run(t, "predict", path)
	require.NoError(t, err)
	assert.Contains(t, out, "LambdaX in alr (reference 0): 2 x 2 x 2")
	assert.Contains(t, out, ", , 0\n[0.5, 0.5]\n[1, 1]\n")
}

func TestPredictCommand_CountsJSON(t *testing.T) {
	path := writeDoc(t, "fit.yaml", fitDoc)

	out, err := run(t, "--format", "json", "predict", path, "-r", "Y", "--names")
	require.NoError(t, err)
	var draws DrawsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &draws))
	assert.Equal(t, "Y", draws.Response)
	assert.Equal(t, "proportions", draws.Coord)
	assert.Equal(t, []string{"a", "b", "c"}, draws.Rows)
	assert.Equal(t, []string{"s1", "s2"}, draws.Cols)
	require.Len(t, draws.Draws, 2)
	for _, d := range draws.Draws {
		require.Len(t, d, 3)
		for j := 0; j < 2; j++ {
			col := []float64{d[0][j], d[1][j], d[2][j]}
			assert.Equal(t, 10.0, floats.Sum(col), "observed column totals are kept")
		}
	}
}

func TestPredictCommand_NewDataAndSummary(t *testing.T) {
	path := writeDoc(t, "fit.yaml", fitDoc)
	newdata := writeDoc(t, "x.yaml", "- [1, 2, 3]\n")

	out, err := run(t, "--format", "json", "predict", path, "--newdata", newdata, "--summary")
	require.NoError(t, err)
	var draws DrawsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &draws))
	assert.Empty(t, draws.Draws)
	require.NotNil(t, draws.Summary)
	assert.Equal(t, "LambdaX", draws.Summary.Parameter)
	assert.Len(t, draws.Summary.Rows, 6)

	out, err = run(t, "predict", path, "--size", "4", "-r", "Y", "--summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Y\n")
	assert.Contains(t, out, "p95.lower")
}

func TestPredictCommand_Errors(t *testing.T) {
	path := writeDoc(t, "fit.yaml", fitDoc)

	_, err := run(t, "predict", path, "-r", "Mu")
	require.Error(t, err)
	assert.Equal(t, StatusUsage, ExitStatus(err))

	_, err = run(t, "predict", path, "--iterations", "3")
	require.Error(t, err)
	assert.ErrorIs(t, err, fit.ErrInvalidArgument)
	assert.Equal(t, StatusEngine, ExitStatus(err))

	_, err = run(t, "predict", path, "--newdata", filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.Equal(t, StatusInput, ExitStatus(err))

	wide := writeDoc(t, "wide.yaml", "- [1, 1]\n- [0, 1]\n")
	_, err = run(t, "predict", path, "--newdata", wide)
	require.Error(t, err)
	assert.ErrorIs(t, err, fit.ErrDimensionMismatch)
}

func TestSummaryCommand(t *testing.T) {
	path := writeDoc(t, "fit.yaml", fitDoc)

	out, err := run(t, "summary", path, "--names")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Lambda\n"), strings.Index(out, "Sigma\n"))
	assert.Contains(t, out, "log(b/a)")
	assert.Contains(t, out, "median")
	assert.Contains(t, out, "p50.upper")

	out, err = run(t, "--format", "json", "summary", path, "--pars", "Lambda", "--long")
	require.NoError(t, err)
	var tables []SummaryJSON
	require.NoError(t, json.Unmarshal([]byte(out), &tables))
	require.Len(t, tables, 1)
	assert.Equal(t, "Lambda", tables[0].Parameter)
	require.NotEmpty(t, tables[0].Rows)
	assert.Nil(t, tables[0].Rows[0].Median, "long tables carry no median")
	assert.Len(t, tables[0].Rows[0].Intervals, 1)

	_, err = run(t, "summary", path, "--pars", "Eta")
	require.Error(t, err)
	assert.ErrorIs(t, err, fit.ErrMissingComponent)
	assert.Equal(t, StatusEngine, ExitStatus(err))
}
