// SPDX-License-Identifier: MIT

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fitDoc = `
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

// writeDoc stores content in a temporary file and returns its path.
func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "pibble", cmd.Use)
	assert.Contains(t, cmd.Long, "Logistic-Normal")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"info", "transform", "prior", "predict", "summary"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	logFlag := cmd.PersistentFlags().Lookup("log-format")
	require.NotNil(t, logFlag)
	assert.Equal(t, "text", logFlag.DefValue)

	levelFlag := cmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, levelFlag)
	assert.Equal(t, "warn", levelFlag.DefValue)
}

func TestTransformCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	transformCmd, _, err := cmd.Find([]string{"transform"})
	require.NoError(t, err)

	toFlag := transformCmd.Flags().Lookup("to")
	require.NotNil(t, toFlag)
	assert.Equal(t, "clr", toFlag.DefValue)

	refFlag := transformCmd.Flags().Lookup("reference")
	require.NotNil(t, refFlag)
	assert.Equal(t, "-1", refFlag.DefValue)

	outputFlag := transformCmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
}

func TestPriorCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	priorCmd, _, err := cmd.Find([]string{"prior"})
	require.NoError(t, err)

	samplesFlag := priorCmd.Flags().Lookup("samples")
	require.NotNil(t, samplesFlag)
	assert.Equal(t, "n", samplesFlag.Shorthand)
	assert.Equal(t, "2000", samplesFlag.DefValue)

	parsFlag := priorCmd.Flags().Lookup("pars")
	require.NotNil(t, parsFlag)
	assert.Equal(t, "[Eta,Lambda,Sigma]", parsFlag.DefValue)
}

func TestPredictCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	predictCmd, _, err := cmd.Find([]string{"predict"})
	require.NoError(t, err)

	responseFlag := predictCmd.Flags().Lookup("response")
	require.NotNil(t, responseFlag)
	assert.Equal(t, "r", responseFlag.Shorthand)
	assert.Equal(t, "LambdaX", responseFlag.DefValue)

	for _, name := range []string{"newdata", "size", "iterations", "summary", "names", "seed", "workers"} {
		assert.NotNil(t, predictCmd.Flags().Lookup(name), "flag %s", name)
	}
}

func TestInvalidFormat(t *testing.T) {
	path := writeDoc(t, "fit.yaml", fitDoc)

	_, err := run(t, "--format", "xml", "info", path)
	require.Error(t, err)
	assert.Equal(t, StatusUsage, ExitStatus(err))

	_, err = run(t, "--log-format", "logfmt", "info", path)
	require.Error(t, err)
	assert.Equal(t, StatusUsage, ExitStatus(err))

	_, err = run(t, "--log-level", "loud", "info", path)
	require.Error(t, err)
	assert.Equal(t, StatusUsage, ExitStatus(err))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	opts := &RootOptions{LogLevel: "warn"}
	opts.Logger(&buf).Info("hidden")
	assert.Empty(t, buf.String())

	opts.Verbose = true
	opts.LogFormat = "json"
	opts.Logger(&buf).Debug("shown", "k", 1)
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
