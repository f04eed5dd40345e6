// Package linphase designs linear-phase FIR filters from an
// amplitude-response specification.
//
// Two methods are available. [Kaiser] truncates the ideal response and
// tapers it with a Kaiser window whose length and shape follow Kaiser's
// empirical formulas. [Equiripple] runs the Parks-McClellan Remez exchange
// starting from Herrmann's (or, for bandpass, Mintzer and Liu's) length
// estimate. Both return exactly symmetric taps, so the group delay is
// (N-1)/2 samples everywhere.
package linphase
