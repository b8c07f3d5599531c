// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/pibble/coords"
	"github.com/katalvlaran/pibble/fit"
)

// TransformOptions holds flags for the transform command.
type TransformOptions struct {
	To        string
	Reference int
	Output    string
}

// NewTransformCommand creates the transform command.
func NewTransformCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TransformOptions{}

	cmd := &cobra.Command{
		Use:   "transform <fit.yaml>",
		Short: "Re-express a fit in another coordinate system",
		Long: `Re-express every draw of a fit in proportions, clr, alr or ilr
coordinates. Covariances are dropped when moving to proportions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFit(args[0])
			if err != nil {
				return err
			}
			dst, err := targetSystem(opts, f.Categories())
			if err != nil {
				return err
			}
			route, err := coords.NewTransition(f.Coord(), dst, f.Categories())
			if err != nil {
				return engineFailure("transform", err)
			}
			rootOpts.Logger(cmd.ErrOrStderr()).Debug("transform",
				"from", f.Coord().String(), "to", dst.String(), "route", route.Route())
			g, err := fit.Transform(f, dst)
			if err != nil {
				return engineFailure("transform", err)
			}
			return writeFit(cmd, rootOpts, g, opts.Output)
		},
	}

	cmd.Flags().StringVar(&opts.To, "to", "clr", "target system (proportions|clr|alr|ilr)")
	cmd.Flags().IntVar(&opts.Reference, "reference", -1, "zero-based alr reference category (default: last)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func targetSystem(opts *TransformOptions, D int) (coords.System, error) {
	kind, err := coords.ParseKind(opts.To)
	if err != nil {
		return coords.System{}, badFlag("--to", err)
	}
	switch kind {
	case coords.KindProportions:
		return coords.NewProportions(), nil
	case coords.KindCLR:
		return coords.NewCLR(), nil
	case coords.KindILR:
		return coords.NewILR(nil), nil
	}
	ref := opts.Reference
	if ref < 0 {
		ref = D - 1
	}

	return coords.NewALR(ref), nil
}
