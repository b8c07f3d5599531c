// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/pibble/fit"
	"github.com/katalvlaran/pibble/sampling"
)

// PriorOptions holds flags for the prior command.
type PriorOptions struct {
	Samples int
	Pars    []string
	Seed    uint64
	Workers int
	Output  string
}

// NewPriorCommand creates the prior command.
func NewPriorCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PriorOptions{}

	cmd := &cobra.Command{
		Use:   "prior <fit.yaml>",
		Short: "Replace the draws of a fit with draws from its prior",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFit(args[0])
			if err != nil {
				return err
			}
			pars, err := fit.ParseParameters(opts.Pars)
			if err != nil {
				return badFlag("--pars", err)
			}
			if opts.Workers < 0 {
				return usagef("--workers must be >= 0")
			}
			prior, err := sampling.SamplePrior(f, opts.Samples,
				sampling.WithPars(pars...),
				sampling.WithSeed(opts.Seed),
				sampling.WithWorkers(opts.Workers),
				sampling.WithLogger(rootOpts.Logger(cmd.ErrOrStderr())),
			)
			if err != nil {
				return engineFailure("sample prior", err)
			}
			return writeFit(cmd, rootOpts, prior, opts.Output)
		},
	}

	cmd.Flags().IntVarP(&opts.Samples, "samples", "n", 2000, "number of prior draws")
	cmd.Flags().StringSliceVar(&opts.Pars, "pars", []string{"Eta", "Lambda", "Sigma"}, "parameters to draw")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", sampling.DefaultSeed, "random seed")
	cmd.Flags().IntVar(&opts.Workers, "workers", sampling.DefaultWorkers, "parallel draws (0: all CPUs)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default: stdout)")

	return cmd
}
