// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pibble/array"
	"github.com/katalvlaran/pibble/fitio"
	"github.com/katalvlaran/pibble/predict"
)

// PredictOptions holds flags for the predict command.
type PredictOptions struct {
	Response   string
	NewData    string
	Size       []float64
	Iterations int
	Summary    bool
	Names      bool
	Seed       uint64
	Workers    int
}

// DrawsJSON is the JSON form of raw predictive draws: one rows × cols
// matrix per draw.
type DrawsJSON struct {
	Response string         `json:"response"`
	Coord    string         `json:"coord"`
	Rows     []string       `json:"rows,omitempty"`
	Cols     []string       `json:"cols,omitempty"`
	Draws    []fitio.Matrix `json:"draws,omitempty"`
	Summary  *SummaryJSON   `json:"summary,omitempty"`
}

// NewPredictCommand creates the predict command.
func NewPredictCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PredictOptions{}

	cmd := &cobra.Command{
		Use:   "predict <fit.yaml>",
		Short: "Draw LambdaX, Eta or counts Y from the posterior",
		Long: `Propagate posterior uncertainty to the fit's design, or to the design
given with --newdata (a YAML list of rows, Q × N').`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(cmd, rootOpts, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Response, "response", "r", string(predict.DefaultResponse), "response (LambdaX|Eta|Y)")
	cmd.Flags().StringVar(&opts.NewData, "newdata", "", "YAML file with a new design matrix")
	cmd.Flags().Float64SliceVar(&opts.Size, "size", nil, "multinomial size: one value or one per column")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "use only the first n draws (0: all)")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "print a per-entry summary instead of the draws")
	cmd.Flags().BoolVar(&opts.Names, "names", false, "label output with coordinate and sample names")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", predict.DefaultSeed, "random seed")
	cmd.Flags().IntVar(&opts.Workers, "workers", predict.DefaultWorkers, "parallel draws (0: all CPUs)")

	return cmd
}

func runPredict(cmd *cobra.Command, rootOpts *RootOptions, opts *PredictOptions, path string) error {
	f, err := loadFit(path)
	if err != nil {
		return err
	}
	response, err := predict.ParseResponse(opts.Response)
	if err != nil {
		return badFlag("--response", err)
	}
	if opts.Iterations < 0 || opts.Workers < 0 {
		return usagef("--iterations and --workers must be >= 0")
	}

	popts := []predict.Option{
		predict.WithResponse(response),
		predict.WithSeed(opts.Seed),
		predict.WithWorkers(opts.Workers),
		predict.WithLogger(rootOpts.Logger(cmd.ErrOrStderr())),
	}
	if opts.NewData != "" {
		x, err := fitio.LoadMatrix(opts.NewData)
		if err != nil {
			return inputFailure("load --newdata", err)
		}
		popts = append(popts, predict.WithNewData(x))
	}
	if len(opts.Size) > 0 {
		popts = append(popts, predict.WithSize(opts.Size...))
	}
	if opts.Iterations > 0 {
		popts = append(popts, predict.WithIterations(opts.Iterations))
	}
	if opts.Summary {
		popts = append(popts, predict.WithSummary())
	}
	if opts.Names {
		popts = append(popts, predict.WithUseNames())
	}

	res, err := predict.Predict(f, popts...)
	if err != nil {
		return engineFailure("predict", err)
	}

	out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
	data := drawsJSON(res)
	return out.Emit(data, func(w io.Writer) error {
		if res.Summary != nil {
			_, err := io.WriteString(w, renderSummary(res.Summary))
			return err
		}
		r, c, n := res.Draws.Dims()
		if _, err := fmt.Fprintf(w, "%s in %s: %d x %d x %d\n", res.Response, res.Coord, r, c, n); err != nil {
			return err
		}
		_, err := io.WriteString(w, res.Draws.String())
		return err
	})
}

func drawsJSON(res *predict.Result) DrawsJSON {
	rows, cols := res.Draws.Names()
	out := DrawsJSON{
		Response: string(res.Response),
		Coord:    res.Coord.String(),
		Rows:     rows,
		Cols:     cols,
	}
	if res.Summary != nil {
		s := summaryJSON(res.Summary)
		out.Summary = &s
		return out
	}
	out.Draws = make([]fitio.Matrix, res.Draws.Iterations())
	for k := range out.Draws {
		out.Draws[k] = sliceRows(res.Draws, k)
	}

	return out
}

func sliceRows(a *array.Array3, k int) fitio.Matrix {
	s, _ := a.Slice(k)
	r, c := s.Dims()
	m := make(fitio.Matrix, r)
	for i := range m {
		m[i] = make([]float64, c)
		for j := range m[i] {
			m[i][j] = s.At(i, j)
		}
	}

	return m
}
