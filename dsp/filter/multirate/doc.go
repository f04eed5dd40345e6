// Package multirate adapts designed coefficients to the filtering
// interface a multirate or streaming collaborator expects: run a signal
// through the filter, reset it, and query its frequency response and
// poles and zeros.
//
// A FIR transfer function runs on the FIR runtime (switching to FFT
// overlap-save for long kernels), a cascade on the biquad chain and any
// other rational form on a direct-form II transposed runtime.
package multirate
