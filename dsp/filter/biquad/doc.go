// Package biquad provides the second-order-section representation of IIR
// filters and its runtime.
//
// [Coefficients] describes one section with a0 normalized to 1. A [Cascade]
// is the BiquadCascade value produced by the IIR designers: its response,
// group delay and poles/zeros are computed per section and never by
// collapsing to a single high-order polynomial. [Section] and [Chain] run
// the coefficients on sample streams using Direct Form II Transposed.
package biquad
