// SPDX-License-Identifier: MIT

package fitio

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pibble/array"
	"github.com/katalvlaran/pibble/coords"
	"github.com/katalvlaran/pibble/fit"
)

// Matrix is a row-major matrix literal.
type Matrix [][]float64

// MarshalYAML writes one flow-style row per line.
func (m Matrix) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range m {
		var r yaml.Node
		if err := r.Encode(row); err != nil {
			return nil, err
		}
		r.Style = yaml.FlowStyle
		n.Content = append(n.Content, &r)
	}

	return n, nil
}

// Coord describes the coordinate system of the draws. Reference is the
// zero-based ALR reference (default: the last category); Basis is an
// optional custom ILR basis (D × D-1).
type Coord struct {
	Kind      string `yaml:"kind" json:"kind"`
	Reference *int   `yaml:"reference,omitempty" json:"reference,omitempty"`
	Basis     Matrix `yaml:"basis,omitempty" json:"basis,omitempty"`
}

// Names carries the optional axis labels.
type Names struct {
	Categories []string `yaml:"categories,omitempty" json:"categories,omitempty"`
	Covariates []string `yaml:"covariates,omitempty" json:"covariates,omitempty"`
	Samples    []string `yaml:"samples,omitempty" json:"samples,omitempty"`
}

// Prior carries the hyperparameters.
type Prior struct {
	Upsilon *float64 `yaml:"upsilon,omitempty" json:"upsilon,omitempty"`
	Theta   Matrix   `yaml:"Theta,omitempty" json:"Theta,omitempty"`
	Gamma   Matrix   `yaml:"Gamma,omitempty" json:"Gamma,omitempty"`
	Xi      Matrix   `yaml:"Xi,omitempty" json:"Xi,omitempty"`
}

// Document is the serialized form of a fit.
type Document struct {
	D     int    `yaml:"D" json:"D"`
	N     int    `yaml:"N" json:"N"`
	Q     int    `yaml:"Q" json:"Q"`
	Iter  int    `yaml:"iter" json:"iter"`
	Coord *Coord `yaml:"coord,omitempty" json:"coord,omitempty"`
	Names Names  `yaml:"names,omitempty" json:"names,omitempty"`

	X     Matrix `yaml:"X,omitempty" json:"X,omitempty"`
	Y     Matrix `yaml:"Y,omitempty" json:"Y,omitempty"`
	Prior *Prior `yaml:"prior,omitempty" json:"prior,omitempty"`

	Eta    []Matrix `yaml:"Eta,omitempty" json:"Eta,omitempty"`
	Lambda []Matrix `yaml:"Lambda,omitempty" json:"Lambda,omitempty"`
	Sigma  []Matrix `yaml:"Sigma,omitempty" json:"Sigma,omitempty"`
}

// Load reads a fit document from path.
func Load(path string) (*fit.Fit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("Load(%s): %w", path, err)
	}

	return f, nil
}

// LoadMatrix reads a single matrix literal (a list of rows) from path,
// e.g. a new design for prediction.
func LoadMatrix(path string) (*mat.Dense, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadMatrix: %w", err)
	}
	var m Matrix
	if err = yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("LoadMatrix(%s): %w: %w", path, ErrMalformed, err)
	}
	d, err := m.Dense()
	if err != nil {
		return nil, fmt.Errorf("LoadMatrix(%s): %w", path, err)
	}
	if d == nil {
		return nil, fmt.Errorf("LoadMatrix(%s): empty matrix: %w", path, ErrMalformed)
	}

	return d, nil
}

// Decode parses one document from r. Unknown fields are rejected.
func Decode(r io.Reader) (*fit.Fit, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("Decode: %w: %w", ErrMalformed, err)
	}
	f, err := doc.Fit()
	if err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}

	return f, nil
}

// Encode writes f to w as YAML. Cached summaries are not written.
func Encode(w io.Writer, f *fit.Fit) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromFit(f)); err != nil {
		return fmt.Errorf("Encode: %w", err)
	}

	return enc.Close()
}

// matrixField binds a document matrix to the option that installs it.
type matrixField struct {
	name string
	m    Matrix
	opt  func(mat.Matrix) fit.Option
}

// Fit builds the fit described by d.
func (d *Document) Fit() (*fit.Fit, error) {
	var opts []fit.Option
	if d.Coord != nil {
		sys, err := d.Coord.system(d.D)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fit.WithCoord(sys))
	}
	if d.Names.Categories != nil {
		opts = append(opts, fit.WithCategoryNames(d.Names.Categories...))
	}
	if d.Names.Covariates != nil {
		opts = append(opts, fit.WithCovariateNames(d.Names.Covariates...))
	}
	if d.Names.Samples != nil {
		opts = append(opts, fit.WithSampleNames(d.Names.Samples...))
	}

	matrices := []matrixField{
		{"X", d.X, fit.WithX},
		{"Y", d.Y, fit.WithY},
	}
	if d.Prior != nil {
		if d.Prior.Upsilon != nil {
			opts = append(opts, fit.WithUpsilon(*d.Prior.Upsilon))
		}
		matrices = append(matrices,
			matrixField{"Theta", d.Prior.Theta, fit.WithTheta},
			matrixField{"Gamma", d.Prior.Gamma, fit.WithGamma},
			matrixField{"Xi", d.Prior.Xi, fit.WithXi},
		)
	}
	for _, e := range matrices {
		m, err := e.m.Dense()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.name, err)
		}
		if m != nil {
			opts = append(opts, e.opt(m))
		}
	}

	for _, e := range []struct {
		p     fit.Parameter
		draws []Matrix
	}{
		{fit.ParamEta, d.Eta},
		{fit.ParamLambda, d.Lambda},
		{fit.ParamSigma, d.Sigma},
	} {
		a, err := stack(e.draws)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.p, err)
		}
		if a != nil {
			opts = append(opts, fit.WithParam(e.p, a))
		}
	}

	return fit.New(d.D, d.N, d.Q, d.Iter, opts...)
}

// FromFit converts f into a document.
func FromFit(f *fit.Fit) *Document {
	d := &Document{
		D:    f.Categories(),
		N:    f.Samples(),
		Q:    f.Covariates(),
		Iter: f.Iterations(),
		Names: Names{
			Categories: f.CategoryNames(),
			Covariates: f.CovariateNames(),
			Samples:    f.SampleNames(),
		},
	}
	sys := f.Coord()
	d.Coord = &Coord{Kind: sys.Kind().String()}
	if ref, ok := sys.Reference(); ok {
		d.Coord.Reference = &ref
	}
	if sys.CustomBasis() {
		d.Coord.Basis = fromDense(sys.Basis(d.D))
	}

	if x, err := f.X(); err == nil {
		d.X = fromDense(x)
	}
	if y, err := f.Y(); err == nil {
		d.Y = fromDense(y)
	}
	var p Prior
	hasPrior := false
	if u, err := f.Upsilon(); err == nil {
		p.Upsilon, hasPrior = &u, true
	}
	if m, err := f.Theta(); err == nil {
		p.Theta, hasPrior = fromDense(m), true
	}
	if m, err := f.Gamma(); err == nil {
		p.Gamma, hasPrior = fromDense(m), true
	}
	if m, err := f.Xi(); err == nil {
		p.Xi, hasPrior = fromDense(m), true
	}
	if hasPrior {
		d.Prior = &p
	}

	if a, err := f.Eta(); err == nil {
		d.Eta = unstack(a)
	}
	if a, err := f.Lambda(); err == nil {
		d.Lambda = unstack(a)
	}
	if a, err := f.Sigma(); err == nil {
		d.Sigma = unstack(a)
	}

	return d
}

func (c *Coord) system(D int) (coords.System, error) {
	kind, err := coords.ParseKind(c.Kind)
	if err != nil {
		return coords.System{}, fmt.Errorf("coord: %w: %w", ErrMalformed, err)
	}
	switch kind {
	case coords.KindProportions:
		return coords.NewProportions(), nil
	case coords.KindCLR:
		return coords.NewCLR(), nil
	case coords.KindALR:
		ref := D - 1
		if c.Reference != nil {
			ref = *c.Reference
		}
		return coords.NewALR(ref), nil
	}
	basis, err := c.Basis.Dense()
	if err != nil {
		return coords.System{}, fmt.Errorf("coord basis: %w", err)
	}
	if basis == nil {
		return coords.NewILR(nil), nil
	}

	return coords.NewILR(basis), nil
}

// Dense converts m, returning nil for an empty literal.
func (m Matrix) Dense() (*mat.Dense, error) {
	if len(m) == 0 {
		return nil, nil
	}
	c := len(m[0])
	if c == 0 {
		return nil, fmt.Errorf("empty row: %w", ErrMalformed)
	}
	data := make([]float64, 0, len(m)*c)
	for i, row := range m {
		if len(row) != c {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", i, len(row), c, ErrMalformed)
		}
		data = append(data, row...)
	}

	return mat.NewDense(len(m), c, data), nil
}

func fromDense(m mat.Matrix) Matrix {
	r, c := m.Dims()
	out := make(Matrix, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = m.At(i, j)
		}
	}

	return out
}

// stack turns a list of draws into an array; nil for an empty list.
func stack(draws []Matrix) (*array.Array3, error) {
	if len(draws) == 0 {
		return nil, nil
	}
	slices := make([]mat.Matrix, len(draws))
	for k, m := range draws {
		d, err := m.Dense()
		if err != nil {
			return nil, fmt.Errorf("draw %d: %w", k, err)
		}
		if d == nil {
			return nil, fmt.Errorf("draw %d is empty: %w", k, ErrMalformed)
		}
		slices[k] = d
	}

	return array.FromSlices(slices...)
}

func unstack(a *array.Array3) []Matrix {
	out := make([]Matrix, a.Iterations())
	for k := range out {
		s, _ := a.Slice(k)
		out[k] = fromDense(s)
	}

	return out
}
