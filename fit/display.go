// SPDX-License-Identifier: MIT

package fit

import (
	"fmt"
	"strings"
)

// String reports dimensions, present parameters and the coordinate system.
//
//	fit object:
//	  categories (D):   3
//	  samples (N):      5
//	  covariates (Q):   2
//	  draws (iter):     100
//	  parameters:       Eta Lambda Sigma
//	  coordinates:      alr (reference 2)
func (f *Fit) String() string {
	var b strings.Builder
	b.WriteString("fit object:\n")
	row := func(label string, v any) {
		fmt.Fprintf(&b, "  %-18s%v\n", label+":", v)
	}
	row("categories (D)", f.d)
	row("samples (N)", f.n)
	row("covariates (Q)", f.q)
	row("draws (iter)", f.iter)

	present := f.Present()
	params := "none"
	if len(present) > 0 {
		names := make([]string, len(present))
		for i, p := range present {
			names[i] = string(p)
		}
		params = strings.Join(names, " ")
	}
	row("parameters", params)
	row("coordinates", f.coord)

	var extras []string
	if f.x != nil {
		extras = append(extras, "X")
	}
	if f.y != nil {
		extras = append(extras, "Y")
	}
	if f.hasUpsilon && f.theta != nil && f.gamma != nil && f.xi != nil {
		extras = append(extras, "prior")
	}
	if len(extras) > 0 {
		row("data", strings.Join(extras, " "))
	}
	if len(f.summary) > 0 {
		row("summarized", len(f.summary))
	}

	return b.String()
}
