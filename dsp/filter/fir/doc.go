// Package fir provides the direct-form FIR filter runtime used to run
// linear-phase designs on sample streams.
//
// A [Filter] holds a copy of the taps and a doubled delay line so that each
// output is a single contiguous dot product.
package fir
