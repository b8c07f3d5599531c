// SPDX-License-Identifier: MIT

package tidy

import (
	"log/slog"

	"github.com/katalvlaran/pibble/fit"
	"github.com/katalvlaran/pibble/internal/logging"
)

// DefaultWidths are the nested interval widths reported by the default reducer.
var DefaultWidths = []float64{0.5, 0.8, 0.95, 0.99}

// DefaultWorkers lets group reduction use GOMAXPROCS workers.
const DefaultWorkers = 0

const (
	panicStatInvalid    = "tidy: WithExtraStats: every Stat needs a name and a function"
	panicReducerNil     = "tidy: WithReducer: reducer must not be nil"
	panicWorkersInvalid = "tidy: WithWorkers: n must be >= 0"
)

// Stat is a caller-supplied summary expression evaluated on every group.
type Stat struct {
	Name string
	Fn   func(values []float64) float64
}

// Option configures Samples, Summarize and SummarizeArray.
type Option func(*options)

type options struct {
	pars       []fit.Parameter
	useNames   bool
	asFactor   bool
	gatherLong bool
	extra      []Stat
	reducer    Reducer
	workers    int
	logger     *slog.Logger
}

// WithPars restricts Summarize to the given parameters
// (default: every parameter present in the fit).
func WithPars(pars ...fit.Parameter) Option {
	return func(o *options) { o.pars = append([]fit.Parameter(nil), pars...) }
}

// WithUseNames substitutes axis labels for indices; axes without names fall
// back to the index rendered as text.
func WithUseNames() Option { return func(o *options) { o.useNames = true } }

// WithAsFactor records a fixed level ordering for every label column.
// It implies WithUseNames.
func WithAsFactor() Option {
	return func(o *options) { o.asFactor, o.useNames = true, true }
}

// WithGatherLong switches Summarize to one row per interval width.
func WithGatherLong() Option { return func(o *options) { o.gatherLong = true } }

// WithExtraStats appends caller-supplied statistics to every summary row.
// Panics when a Stat lacks a name or a function.
func WithExtraStats(stats ...Stat) Option {
	for _, s := range stats {
		if s.Name == "" || s.Fn == nil {
			panic(panicStatInvalid)
		}
	}

	return func(o *options) { o.extra = append(o.extra, stats...) }
}

// WithReducer replaces the default QuantileReducer. Panics on nil.
func WithReducer(r Reducer) Option {
	if r == nil {
		panic(panicReducerNil)
	}

	return func(o *options) { o.reducer = r }
}

// WithWorkers bounds the number of groups reduced concurrently (0: GOMAXPROCS).
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithLogger routes diagnostics to l (default: discarded).
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

func gatherOptions(opts ...Option) options {
	o := options{
		reducer: QuantileReducer{Widths: DefaultWidths},
		workers: DefaultWorkers,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.OrNull(o.logger)

	return o
}
