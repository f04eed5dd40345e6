package design

import (
	"errors"
	"math"
	"slices"

	"github.com/cwbudde/algo-filterdesign/internal/zpoly"
)

var (
	errEmptyNumerator = errors.New("design: empty numerator")
	errBadDenominator = errors.New("design: denominator must start with a non-zero coefficient")
	errNonFinite      = errors.New("design: non-finite coefficient")
)

// TransferFunction is the rational form H(z) = B(z)/A(z) with both
// polynomials in ascending powers of z^-1 and A[0] == 1. A FIR filter has
// A == [1].
type TransferFunction struct {
	B []float64
	A []float64
}

// FIR returns the transfer function of a FIR filter with the given taps.
// The taps are copied.
func FIR(taps []float64) TransferFunction {
	return TransferFunction{B: slices.Clone(taps), A: []float64{1}}
}

// NewTransferFunction normalizes b and a so that a[0] == 1. An empty a is
// treated as [1].
func NewTransferFunction(b, a []float64) (TransferFunction, error) {
	if len(a) == 0 {
		a = []float64{1}
	}

	if len(b) == 0 {
		return TransferFunction{}, errEmptyNumerator
	}

	if a[0] == 0 {
		return TransferFunction{}, errBadDenominator
	}

	a0 := a[0]
	tf := TransferFunction{B: make([]float64, len(b)), A: make([]float64, len(a))}

	for i, v := range b {
		tf.B[i] = v / a0
	}

	for i, v := range a {
		tf.A[i] = v / a0
	}

	tf.A[0] = 1

	return tf, tf.Validate()
}

// Validate checks the invariants len(B) >= 1, A[0] == 1 and finite
// coefficients.
func (tf TransferFunction) Validate() error {
	if len(tf.B) == 0 {
		return errEmptyNumerator
	}

	if len(tf.A) == 0 || tf.A[0] != 1 {
		return errBadDenominator
	}

	for _, v := range tf.B {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errNonFinite
		}
	}

	for _, v := range tf.A {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errNonFinite
		}
	}

	return nil
}

// IsFIR reports whether the denominator is the constant 1.
func (tf TransferFunction) IsFIR() bool {
	return len(tf.A) == 1
}

// Order returns max(len(B), len(A)) - 1.
func (tf TransferFunction) Order() int {
	return max(len(tf.B), len(tf.A)) - 1
}

// Response returns H(e^jw) at freqHz.
func (tf TransferFunction) Response(freqHz, sampleRate float64) complex128 {
	w := zpoly.Omega(freqHz, sampleRate)
	return zpoly.Eval(tf.B, w) / zpoly.Eval(tf.A, w)
}

// GroupDelay returns the group delay in samples at freqHz. singular is
// true when the numerator or denominator vanishes there.
func (tf TransferFunction) GroupDelay(freqHz, sampleRate float64) (float64, bool) {
	return zpoly.RationalGroupDelay(tf.B, tf.A, zpoly.Omega(freqHz, sampleRate))
}

// Clone returns an independent copy.
func (tf TransferFunction) Clone() TransferFunction {
	return TransferFunction{B: slices.Clone(tf.B), A: slices.Clone(tf.A)}
}
