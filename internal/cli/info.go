// SPDX-License-Identifier: MIT

package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pibble/fit"
	"github.com/katalvlaran/pibble/fitio"
)

// FitInfo is the JSON form of the info command.
type FitInfo struct {
	Categories int      `json:"categories"`
	Samples    int      `json:"samples"`
	Covariates int      `json:"covariates"`
	Draws      int      `json:"draws"`
	Coord      string   `json:"coord"`
	Parameters []string `json:"parameters"`
	HasX       bool     `json:"has_x"`
	HasY       bool     `json:"has_y"`
	HasPrior   bool     `json:"has_prior"`
}

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <fit.yaml>",
		Short: "Describe a fit document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFit(args[0])
			if err != nil {
				return err
			}
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return out.Emit(describe(f), func(w io.Writer) error {
				_, err := io.WriteString(w, f.String())
				return err
			})
		},
	}
}

func describe(f *fit.Fit) FitInfo {
	info := FitInfo{
		Categories: f.Categories(),
		Samples:    f.Samples(),
		Covariates: f.Covariates(),
		Draws:      f.Iterations(),
		Coord:      f.Coord().String(),
		Parameters: []string{},
		HasX:       f.HasX(),
		HasY:       f.HasY(),
		HasPrior:   f.RequireHyperparameters() == nil,
	}
	for _, p := range f.Present() {
		info.Parameters = append(info.Parameters, string(p))
	}

	return info
}

// loadFit reads a fit document; failures map to StatusInput.
func loadFit(path string) (*fit.Fit, error) {
	f, err := fitio.Load(path)
	if err != nil {
		return nil, inputFailure("load fit", err)
	}

	return f, nil
}

// writeFit writes f as a YAML document, or as its JSON document under
// --format json.
func writeFit(cmd *cobra.Command, rootOpts *RootOptions, f *fit.Fit, path string) error {
	w, closeFn, err := outputTarget(cmd, path)
	if err != nil {
		return err
	}
	out := &OutputFormatter{Format: rootOpts.Format, Writer: w}
	if err = out.Emit(fitio.FromFit(f), func(w io.Writer) error { return fitio.Encode(w, f) }); err != nil {
		_ = closeFn()
		return inputFailure("write fit", err)
	}

	return closeFn()
}
