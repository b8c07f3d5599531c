// SPDX-License-Identifier: MIT

// Package pibble post-processes and predicts from posterior samples of
// Bayesian Multinomial Logistic-Normal regressions.
//
// A fit holds posterior draws of Eta (latent linear predictor), Lambda
// (regression coefficients) and Sigma (covariance) as stacks of matrices
// indexed by iteration. The subpackages split the work:
//
//	array/     Array3, the rows × cols × iter stack, plus validators and statistics
//	coords/    proportions, clr, alr and ilr coordinates and the transitions between them
//	fit/       the immutable fit object, names, transforms and the summary cache
//	sampling/  matrix-normal, inverse-Wishart and multinomial draws; prior sampling
//	predict/   LambdaX, Eta and count predictions for new or observed designs
//	tidy/      long-format records and per-entry summaries
//	fitio/     YAML and JSON fit documents
//
// The pibble command (cmd/pibble) exposes the same operations on fit documents.
//
// Data flow:
//
//	fit document → coords → predict → tidy
package pibble
