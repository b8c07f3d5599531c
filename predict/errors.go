// SPDX-License-Identifier: MIT
// Package predict: sentinel error set.
// Missing parameters, data and hyperparameters reuse the fit sentinels;
// the errors below are specific to prediction.

package predict

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/pibble/fit"
)

var (
	// ErrMissingSize indicates that count prediction has no size: none was
	// given and the fit carries no observed counts Y to derive one from.
	ErrMissingSize = errors.New("predict: no multinomial size available")

	// ErrInvalidResponse indicates an unknown response name. It matches
	// fit.ErrInvalidArgument under errors.Is.
	ErrInvalidResponse = fmt.Errorf("predict: invalid response: %w", fit.ErrInvalidArgument)
)
