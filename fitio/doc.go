// SPDX-License-Identifier: MIT

// Package fitio reads and writes fits as YAML documents.
//
// A document lists the dimensions, the coordinate system, optional axis
// names, data, prior hyperparameters and posterior draws. Matrices are
// written row by row; a parameter is the list of its per-iteration
// matrices. JSON input is accepted as well since YAML is a superset of it.
//
//	D: 3
//	N: 2
//	Q: 1
//	iter: 2
//	coord: {kind: alr, reference: 2}
//	names:
//	  categories: [a, b, c]
//	X: [[1, 1]]
//	Lambda:
//	  - [[0.5], [1.0]]
//	  - [[0.4], [1.1]]
package fitio
