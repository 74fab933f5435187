// Package filter provides the elliptical weighted average (EWA) resampler
// used by the blur-field compositing operator.
//
// A Resampler is configured per sample with the local Jacobian of the
// mapping from destination to source space. The Jacobian defines an
// ellipse whose covariance is J·Jᵀ plus a quarter of the identity, so a
// zero Jacobian still averages over a unit footprint. Samples inside the
// ellipse are weighted by a Gaussian of their Mahalanobis distance.
//
// Weights come from a lookup table shared by all resamplers.
package filter
