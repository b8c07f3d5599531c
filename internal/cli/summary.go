// SPDX-License-Identifier: MIT

package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pibble/fit"
	"github.com/katalvlaran/pibble/tidy"
)

// SummaryOptions holds flags for the summary command.
type SummaryOptions struct {
	Pars    []string
	Names   bool
	Long    bool
	Workers int
}

// NewSummaryCommand creates the summary command.
func NewSummaryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SummaryOptions{}

	cmd := &cobra.Command{
		Use:   "summary <fit.yaml>",
		Short: "Summarize posterior draws per parameter",
		Long: `Reduce the draws of every parameter (or those given with --pars) to
mean, median and 50/80/95/99% intervals per entry.`,
		Args: cobra.ExactArgs(1),
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
			topts := []tidy.Option{
				tidy.WithPars(pars...),
				tidy.WithWorkers(opts.Workers),
				tidy.WithLogger(rootOpts.Logger(cmd.ErrOrStderr())),
			}
			if opts.Names {
				topts = append(topts, tidy.WithUseNames())
			}
			if opts.Long {
				topts = append(topts, tidy.WithGatherLong())
			}
			tables, _, err := tidy.Summarize(f, topts...)
			if err != nil {
				return engineFailure("summarize", err)
			}

			ordered := make([]*fit.SummaryTable, 0, len(tables))
			for _, p := range fit.AllParameters {
				if t, ok := tables[p]; ok {
					ordered = append(ordered, t)
				}
			}
			data := make([]SummaryJSON, len(ordered))
			for n, t := range ordered {
				data[n] = summaryJSON(t)
			}
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return out.Emit(data, func(w io.Writer) error {
				for _, t := range ordered {
					if _, err := io.WriteString(w, renderSummary(t)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&opts.Pars, "pars", nil, "parameters to summarize (default: all present)")
	cmd.Flags().BoolVar(&opts.Names, "names", false, "label rows with coordinate, sample and covariate names")
	cmd.Flags().BoolVar(&opts.Long, "long", false, "one row per interval width")
	cmd.Flags().IntVar(&opts.Workers, "workers", tidy.DefaultWorkers, "parallel reductions (0: all CPUs)")

	return cmd
}
