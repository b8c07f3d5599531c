// SPDX-License-Identifier: MIT

package predict

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pibble/internal/logging"
	"github.com/katalvlaran/pibble/internal/rng"
)

// Response names the predicted quantity.
type Response string

const (
	// ResponseLambdaX is Lambda times the design matrix.
	ResponseLambdaX Response = "LambdaX"
	// ResponseEta is the latent linear predictor.
	ResponseEta Response = "Eta"
	// ResponseY is simulated counts.
	ResponseY Response = "Y"
)

// Responses lists every response in dependency order.
var Responses = []Response{ResponseLambdaX, ResponseEta, ResponseY}

// ParseResponse maps a name to a Response.
func ParseResponse(s string) (Response, error) {
	for _, r := range Responses {
		if string(r) == s {
			return r, nil
		}
	}

	return "", fmt.Errorf("ParseResponse(%q): %w", s, ErrInvalidResponse)
}

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultResponse is predicted when WithResponse is not given.
	DefaultResponse = ResponseLambdaX

	// DefaultSeed is used when no seed is given; 0 maps to it as well.
	DefaultSeed = rng.DefaultSeed

	// DefaultWorkers lets the engine use GOMAXPROCS workers.
	DefaultWorkers = 0
)

const (
	panicIterationsInvalid = "predict: WithIterations: n must be >= 1"
	panicWorkersInvalid    = "predict: WithWorkers: n must be >= 0"
	panicSizeEmpty         = "predict: WithSize: at least one value required"
)

// Option configures Predict.
type Option func(*options)

type options struct {
	newdata    *mat.Dense
	response   Response
	size       []float64
	sizeMatrix *mat.Dense
	iterations int
	summary    bool
	useNames   bool
	seed       uint64
	workers    int
	logger     *slog.Logger
}

// WithNewData predicts for the Q × N' design newdata instead of the fit's X.
func WithNewData(newdata mat.Matrix) Option {
	return func(o *options) { o.newdata = mat.DenseCopyOf(newdata) }
}

// WithResponse selects the predicted quantity (default LambdaX).
func WithResponse(r Response) Option { return func(o *options) { o.response = r } }

// WithSize fixes the multinomial size for count prediction: one value is
// used for every column and draw, N' values give one size per column.
// Panics when called without values.
func WithSize(size ...float64) Option {
	if len(size) == 0 {
		panic(panicSizeEmpty)
	}

	return func(o *options) {
		o.size = append([]float64(nil), size...)
		o.sizeMatrix = nil
	}
}

// WithSizeMatrix fixes one multinomial size per (column, draw): m is N' × n
// where n is the number of draws used.
func WithSizeMatrix(m mat.Matrix) Option {
	return func(o *options) {
		o.sizeMatrix = mat.DenseCopyOf(m)
		o.size = nil
	}
}

// WithIterations uses only the first n posterior draws. Panics when n < 1.
func WithIterations(n int) Option {
	if n < 1 {
		panic(panicIterationsInvalid)
	}

	return func(o *options) { o.iterations = n }
}

// WithSummary attaches a per (coordinate, sample) summary of the draws.
func WithSummary() Option { return func(o *options) { o.summary = true } }

// WithUseNames labels the draws (and summary) with coordinate and sample names.
func WithUseNames() Option { return func(o *options) { o.useNames = true } }

// WithSeed fixes the random seed. Equal seeds give equal draws for any
// worker count.
func WithSeed(seed uint64) Option { return func(o *options) { o.seed = seed } }

// WithWorkers bounds the number of draws computed concurrently
// (0: GOMAXPROCS). Panics on negative n.
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
		response: DefaultResponse,
		seed:     DefaultSeed,
		workers:  DefaultWorkers,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.OrNull(o.logger)

	return o
}
