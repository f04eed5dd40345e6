// Package iir designs minimum-order recursive filters from an
// amplitude-response specification.
//
// Four families are supported: Butterworth, Chebyshev type I, Chebyshev
// type II and elliptic (Cauer). A design pre-warps the band edges, picks
// the smallest order that meets the ripple and attenuation targets, builds
// the normalized analog prototype, maps it to the requested band shape and
// applies the bilinear transform. Results carry the rational form, the
// second-order-section cascade and the digital zeros, poles and gain.
package iir
