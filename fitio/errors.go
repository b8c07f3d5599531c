// SPDX-License-Identifier: MIT
// Package fitio: sentinel error set.

package fitio

import "errors"

// ErrMalformed indicates a document that parses but cannot describe a fit:
// ragged matrices, an unknown coordinate kind or missing dimensions.
// Dimension disagreements surface as the fit sentinels.
var ErrMalformed = errors.New("fitio: malformed document")
