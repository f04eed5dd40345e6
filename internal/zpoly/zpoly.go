// Package zpoly evaluates real polynomials in z^-1 on the unit circle.
//
// Coefficients are in ascending powers of z^-1, the order used for FIR taps
// and biquad numerators/denominators:
//
//	P(z) = c[0] + c[1]*z^-1 + ... + c[n]*z^-n
package zpoly

import (
	"math"
	"math/cmplx"
)

// SingularTol is the relative magnitude below which a polynomial is treated
// as vanishing on the unit circle (a zero or pole on |z| = 1).
const SingularTol = 1e-10

// Omega converts a frequency in Hz to radians/sample.
func Omega(freqHz, sampleRate float64) float64 {
	return 2 * math.Pi * freqHz / sampleRate
}

// Eval returns P(e^{jw}).
func Eval(c []float64, w float64) complex128 {
	v, _ := evalWithRamp(c, w)
	return v
}

// evalWithRamp returns P(e^{jw}) and R(e^{jw}) = sum n*c[n]*e^{-jwn} in one
// Horner pass over e^{-jw}.
func evalWithRamp(c []float64, w float64) (complex128, complex128) {
	if len(c) == 0 {
		return 0, 0
	}

	x := cmplx.Exp(complex(0, -w))

	var p, r complex128
	for n := len(c) - 1; n >= 0; n-- {
		p = p*x + complex(c[n], 0)
		r = r*x + complex(float64(n)*c[n], 0)
	}

	return p, r
}

// GroupDelay returns the group delay in samples of P(e^{jw}), the exact
// derivative -d(arg P)/dw = Re(R/P). singular is true when |P| is below
// SingularTol relative to sum |c[n]|; the delay is then NaN.
func GroupDelay(c []float64, w float64) (float64, bool) {
	p, r := evalWithRamp(c, w)

	scale := 0.0
	for _, v := range c {
		scale += math.Abs(v)
	}

	if scale == 0 || cmplx.Abs(p) <= SingularTol*scale {
		return math.NaN(), true
	}

	return real(r / p), false
}

// RationalGroupDelay returns the group delay in samples of B/A at w.
func RationalGroupDelay(b, a []float64, w float64) (float64, bool) {
	tb, sb := GroupDelay(b, w)
	ta, sa := GroupDelay(a, w)

	if sb || sa {
		return math.NaN(), true
	}

	return tb - ta, false
}
