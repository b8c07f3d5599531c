// SPDX-License-Identifier: MIT

package sampling

import (
	"log/slog"

	"github.com/katalvlaran/pibble/fit"
	"github.com/katalvlaran/pibble/internal/logging"
	"github.com/katalvlaran/pibble/internal/rng"
)

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultSeed is used when no seed is given; 0 maps to it as well.
	DefaultSeed = rng.DefaultSeed

	// DefaultWorkers lets the engine use GOMAXPROCS workers.
	DefaultWorkers = 0
)

const panicWorkersInvalid = "sampling: WithWorkers: n must be >= 0"

// Option configures SamplePrior.
type Option func(*options)

type options struct {
	pars    []fit.Parameter
	seed    uint64
	workers int
	logger  *slog.Logger
}

// WithPars selects the parameters to draw (default: Eta, Lambda, Sigma).
func WithPars(pars ...fit.Parameter) Option {
	return func(o *options) { o.pars = append([]fit.Parameter(nil), pars...) }
}

// WithSeed fixes the random seed. Equal seeds give equal draws for any
// worker count.
func WithSeed(seed uint64) Option { return func(o *options) { o.seed = seed } }

// WithWorkers bounds the number of iterations drawn concurrently
// (0: GOMAXPROCS). Panics on negative n.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithLogger routes diagnostics to l (default: discarded).
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) options {
	o := options{
		pars:    append([]fit.Parameter(nil), fit.AllParameters...),
		seed:    DefaultSeed,
		workers: DefaultWorkers,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.OrNull(o.logger)

	return o
}
