// SPDX-License-Identifier: MIT

package fit

import "fmt"

// Parameter names one of the posterior parameter arrays.
type Parameter string

const (
	// ParamEta is the latent linear predictor (category axis × N × iter).
	ParamEta Parameter = "Eta"
	// ParamLambda holds the regression coefficients (category axis × Q × iter).
	ParamLambda Parameter = "Lambda"
	// ParamSigma is the covariance (category axis × category axis × iter).
	ParamSigma Parameter = "Sigma"
)

// AllParameters lists every parameter in canonical order.
var AllParameters = []Parameter{ParamEta, ParamLambda, ParamSigma}

// ParseParameter maps a name to a Parameter.
func ParseParameter(s string) (Parameter, error) {
	for _, p := range AllParameters {
		if string(p) == s {
			return p, nil
		}
	}

	return "", fmt.Errorf("ParseParameter(%q): %w", s, ErrInvalidArgument)
}

// ParseParameters maps names to Parameters, failing on the first unknown name.
func ParseParameters(names []string) ([]Parameter, error) {
	out := make([]Parameter, 0, len(names))
	for _, s := range names {
		p, err := ParseParameter(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, nil
}
