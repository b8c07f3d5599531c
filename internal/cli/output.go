// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Exit statuses of the pibble command.
const (
	StatusOK     = 0
	StatusEngine = 1 // the engines rejected the fit or the request
	StatusUsage  = 2 // bad arguments or flag values
	StatusInput  = 3 // a fit or matrix file could not be read, parsed or written
)

// Failure is the error every pibble command returns: the stage that failed,
// the underlying cause and the exit status it maps to.
type Failure struct {
	Status int
	Stage  string
	Err    error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Stage
	}
	return f.Stage + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error { return f.Err }

// usagef reports an invalid flag combination.
func usagef(format string, args ...any) *Failure {
	return &Failure{Status: StatusUsage, Stage: fmt.Sprintf(format, args...)}
}

// badFlag reports a flag value the engines refused to parse.
func badFlag(flag string, err error) *Failure {
	return &Failure{Status: StatusUsage, Stage: "invalid " + flag, Err: err}
}

// inputFailure reports a fit or matrix file that could not be used.
func inputFailure(stage string, err error) *Failure {
	return &Failure{Status: StatusInput, Stage: stage, Err: err}
}

// engineFailure reports a request rejected by coords, sampling, predict or tidy.
func engineFailure(stage string, err error) *Failure {
	return &Failure{Status: StatusEngine, Stage: stage, Err: err}
}

// ExitStatus maps err to the process exit status. Errors that are not a
// Failure come from cobra's argument and flag parsing.
func ExitStatus(err error) int {
	if err == nil {
		return StatusOK
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Status
	}
	return StatusUsage
}

// OutputFormatter writes command results as text or JSON.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Emit writes data as indented JSON under --format json, otherwise calls text.
func (f *OutputFormatter) Emit(data any, text func(w io.Writer) error) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	return text(f.Writer)
}

// outputTarget returns the writer for --output (stdout when empty) and a
// close function.
func outputTarget(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, inputFailure("create output", err)
	}
	return file, file.Close, nil
}
