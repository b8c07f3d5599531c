// SPDX-License-Identifier: MIT

package cli

import (
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pibble/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Format    string // "text" | "json"
	LogFormat string // "text" | "json"
	LogLevel  string
}

// ValidFormats defines the allowed output and log formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the pibble CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "pibble",
		Short: "pibble - posterior tools for multinomial logistic-normal fits",
		Long: `Inspect, transform, summarize and predict from posterior samples of a
Multinomial Logistic-Normal regression stored as a YAML fit document.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return usagef("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if !slices.Contains(ValidFormats, opts.LogFormat) {
				return usagef("invalid log format %q: must be one of %v", opts.LogFormat, ValidFormats)
			}
			if _, ok := logging.ParseLevel(opts.LogLevel); !ok {
				return usagef("invalid log level %q", opts.LogLevel)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log engine diagnostics to stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "text", "log format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewInfoCommand(opts))
	cmd.AddCommand(NewTransformCommand(opts))
	cmd.AddCommand(NewPriorCommand(opts))
	cmd.AddCommand(NewPredictCommand(opts))
	cmd.AddCommand(NewSummaryCommand(opts))

	return cmd
}

// Logger returns the logger for a command run, written to w. --verbose
// forces debug output.
func (o *RootOptions) Logger(w io.Writer) *slog.Logger {
	level, ok := logging.ParseLevel(o.LogLevel)
	if !ok {
		level = slog.LevelWarn
	}
	if o.Verbose {
		level = slog.LevelDebug
	}

	return logging.New(w, logging.Config{Level: level, JSON: o.LogFormat == "json"})
}
