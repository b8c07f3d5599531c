// SPDX-License-Identifier: MIT

// Package predict propagates posterior uncertainty of a Multinomial
// Logistic-Normal fit forward to new or observed designs.
//
// Three responses are available, each built on the previous one:
//
//	LambdaX  Lambda_i · X                          (deterministic per draw)
//	Eta      LambdaX_i + chol(Sigma_i)ᵀ Z_i         (matrix-normal noise)
//	Y        Multinomial(size, proportions(Eta_i))  (counts per column)
//
// Computation happens in ALR coordinates, or natively in ILR. A fit stored
// in another system is moved to ALR against the last category first and
// LambdaX / Eta are mapped back afterwards.
//
// Draws are reproducible: iteration i uses its own random stream derived
// from the seed, so results do not depend on the worker count.
package predict
