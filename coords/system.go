// SPDX-License-Identifier: MIT

package coords

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Kind enumerates the coordinate systems. The zero value is invalid.
type Kind uint8

const (
	kindInvalid Kind = iota
	// KindProportions is the simplex itself (the "default" system).
	KindProportions
	// KindCLR is the centered log-ratio system.
	KindCLR
	// KindALR is the additive log-ratio system against a reference category.
	KindALR
	// KindILR is the isometric log-ratio system in an orthonormal basis.
	KindILR
)

// basisTol bounds the orthonormality check of a caller-supplied ILR basis.
const basisTol = 1e-8

var kindNames = map[Kind]string{
	KindProportions: "proportions",
	KindCLR:         "clr",
	KindALR:         "alr",
	KindILR:         "ilr",
}

// String returns the canonical lower-case name of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return "invalid"
}

// ParseKind maps a name to a Kind. "default" is accepted for proportions.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "proportions", "default":
		return KindProportions, nil
	case "clr":
		return KindCLR, nil
	case "alr":
		return KindALR, nil
	case "ilr":
		return KindILR, nil
	}

	return kindInvalid, fmt.Errorf("ParseKind(%q): %w", s, ErrUnsupportedTransform)
}

// System is the closed coordinate variant {Proportions, CLR, ALR(ref), ILR(basis)}.
// Values are immutable; construct them with NewProportions, NewCLR, NewALR, NewILR.
type System struct {
	kind  Kind
	ref   int        // ALR reference category (zero-based)
	basis *mat.Dense // ILR basis (D × D-1); nil selects DefaultILRBasis
}

// NewProportions returns the simplex system.
func NewProportions() System { return System{kind: KindProportions} }

// NewCLR returns the centered log-ratio system.
func NewCLR() System { return System{kind: KindCLR} }

// NewALR returns the additive log-ratio system with the given zero-based
// reference category. The index is checked against D by Validate.
func NewALR(ref int) System { return System{kind: KindALR, ref: ref} }

// NewILR returns the isometric log-ratio system with basis V (D × D-1).
// A nil basis selects DefaultILRBasis(D). The basis is copied.
func NewILR(basis mat.Matrix) System {
	if basis == nil {
		return System{kind: KindILR}
	}

	return System{kind: KindILR, basis: mat.DenseCopyOf(basis)}
}

// Kind returns the variant tag.
func (s System) Kind() Kind { return s.kind }

// IsValid reports whether s was built by one of the constructors.
func (s System) IsValid() bool { return s.kind != kindInvalid }

// Reference returns the ALR reference index; ok is false for other kinds.
func (s System) Reference() (ref int, ok bool) {
	if s.kind != KindALR {
		return 0, false
	}

	return s.ref, true
}

// Basis returns the ILR basis for D categories (a copy), resolving the
// default basis when none was supplied. It returns nil for other kinds.
func (s System) Basis(D int) *mat.Dense {
	if s.kind != KindILR {
		return nil
	}
	if s.basis == nil {
		return DefaultILRBasis(D)
	}

	return mat.DenseCopyOf(s.basis)
}

// CustomBasis reports whether an ILR system carries a caller-supplied basis.
func (s System) CustomBasis() bool { return s.kind == KindILR && s.basis != nil }

// Axis returns the category-axis size for D parts: D under proportions/CLR,
// D-1 under ALR/ILR.
func (s System) Axis(D int) int {
	switch s.kind {
	case KindALR, KindILR:
		return D - 1
	default:
		return D
	}
}

// Equal reports whether s and o describe the same coordinates for D parts.
func (s System) Equal(o System, D int) bool {
	if s.kind != o.kind {
		return false
	}
	switch s.kind {
	case KindALR:
		return s.ref == o.ref
	case KindILR:
		if s.basis == nil && o.basis == nil {
			return true
		}
		return mat.EqualApprox(s.Basis(D), o.Basis(D), basisTol)
	}

	return true
}

// Validate checks s against D categories.
func (s System) Validate(D int) error {
	if s.kind == kindInvalid {
		return fmt.Errorf("System.Validate: %w", ErrUnsupportedTransform)
	}
	if D < 2 {
		return fmt.Errorf("System.Validate(D=%d): %w", D, ErrTooFewCategories)
	}
	switch s.kind {
	case KindALR:
		if s.ref < 0 || s.ref >= D {
			return fmt.Errorf("System.Validate(ref=%d, D=%d): %w", s.ref, D, ErrInvalidReference)
		}
	case KindILR:
		if s.basis != nil {
			return validateBasis(s.basis, D)
		}
	}

	return nil
}

// String renders the system for display.
func (s System) String() string {
	switch s.kind {
	case KindALR:
		return fmt.Sprintf("alr (reference %d)", s.ref)
	case KindILR:
		if s.basis != nil {
			return "ilr (custom basis)"
		}
		return "ilr"
	}

	return s.kind.String()
}

// DefaultILRBasis returns the D × (D-1) Helmert-type contrast basis:
// column c has 1/(c+1) on rows 0..c and -1 on row c+1, scaled to unit length.
func DefaultILRBasis(D int) *mat.Dense {
	V := mat.NewDense(D, D-1, nil)
	var r, c int
	for c = 0; c < D-1; c++ {
		i := float64(c + 1)
		scale := math.Sqrt(i / (i + 1))
		for r = 0; r <= c; r++ {
			V.Set(r, c, scale/i)
		}
		V.Set(c+1, c, -scale)
	}

	return V
}

// validateBasis checks shape, column orthonormality and orthogonality to 1.
func validateBasis(V *mat.Dense, D int) error {
	r, c := V.Dims()
	if r != D || c != D-1 {
		return fmt.Errorf("validateBasis(%dx%d, D=%d): %w", r, c, D, ErrInvalidBasis)
	}
	var gram mat.Dense
	gram.Mul(V.T(), V)
	if !mat.EqualApprox(&gram, eye(c), basisTol) {
		return fmt.Errorf("validateBasis: columns not orthonormal: %w", ErrInvalidBasis)
	}
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, V)
		var s float64
		for _, v := range col {
			s += v
		}
		if math.Abs(s) > basisTol {
			return fmt.Errorf("validateBasis: column %d not a contrast: %w", j, ErrInvalidBasis)
		}
	}

	return nil
}

// Labels returns coordinate labels for the category axis of system s given
// the D part names. It returns nil when names is nil (no partial naming).
func Labels(s System, names []string) []string {
	if names == nil {
		return nil
	}
	D := len(names)
	switch s.kind {
	case KindCLR:
		out := make([]string, D)
		for i, n := range names {
			out[i] = "clr(" + n + ")"
		}
		return out
	case KindALR:
		if s.ref < 0 || s.ref >= D {
			return nil
		}
		out := make([]string, 0, D-1)
		for i, n := range names {
			if i != s.ref {
				out = append(out, "log("+n+"/"+names[s.ref]+")")
			}
		}
		return out
	case KindILR:
		out := make([]string, D-1)
		for i := range out {
			out[i] = fmt.Sprintf("ilr%d", i+1)
		}
		return out
	}
	out := make([]string, D)
	copy(out, names)

	return out
}

func eye(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}

	return m
}
