// Package sampling draws from the distributions behind the multinomial
// logistic-normal model and samples fits from their prior.
//
// Primitives:
//
//   - StdNormal: an r×c matrix of iid N(0, 1) values.
//   - MatrixNormal: M + A Z Bᵀ for row/column covariance factors A, B.
//   - WishartUpper / InvWishart: Wishart draws (Bartlett construction from
//     gonum's distmat) returned as an upper Cholesky factor, and the
//     corresponding inverse-Wishart covariance.
//   - Multinomial: counts over categories built from conditional binomials,
//     always summing to the requested size.
//
// Every primitive takes an explicit rand.Source. SamplePrior hands each
// iteration its own stream (internal/rng), so results are identical for any
// worker count.
package sampling
