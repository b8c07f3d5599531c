// Package fit defines the fit object shared by the sampling, prediction and
// summary engines: posterior draws of Eta, Lambda and Sigma stored as
// array.Array3 stacks, the prior hyperparameters, training data, axis names
// and the coordinate system the draws are expressed in.
//
// A *Fit is immutable. Construct it with New and functional options; every
// operation that "changes" a fit (names, transforms, summaries, dropping
// parameters) returns a new value sharing unchanged storage with the old one.
//
//	f, err := fit.New(3, 5, 2, 100,
//		fit.WithLambda(lambda),
//		fit.WithSigma(sigma),
//		fit.WithX(x),
//		fit.WithCoord(coords.NewALR(2)),
//	)
//	clr, err := fit.ToCLR(f)
//
// Missing optional parts are reported through sentinel errors
// (ErrMissingComponent, ErrMissingHyperparameter, ErrMissingData) so callers
// can match them with errors.Is.
package fit
