// Package window generates the Kaiser window used by the tapered-window FIR
// designer, together with Kaiser's empirical length and shape estimates.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Kaiser returns Kaiser window coefficients
//
//	w[n] = I0(beta * sqrt(1 - r^2)) / I0(beta),  r = 2n/(N-1) - 1
//
// The form is symmetric up to rounding in r.
func Kaiser(size int, beta float64) ([]float64, error) {
	if err := validateKaiser(size, beta); err != nil {
		return nil, err
	}

	out := make([]float64, size)
	if size == 1 {
		out[0] = 1
		return out, nil
	}

	den := float64(size - 1)

	norm := besselI0(beta)
	for i := range out {
		r := 2*float64(i)/den - 1
		out[i] = besselI0(beta*math.Sqrt(math.Max(0, 1-r*r))) / norm
	}

	return out, nil
}

// KaiserBeta returns the Kaiser shape parameter for a stopband attenuation
// in dB using Kaiser's piecewise empirical rule.
func KaiserBeta(attenuationDB float64) float64 {
	switch {
	case attenuationDB > 50:
		return 0.1102 * (attenuationDB - 8.7)
	case attenuationDB >= 21:
		return 0.5842*math.Pow(attenuationDB-21, 0.4) + 0.07886*(attenuationDB-21)
	default:
		return 0
	}
}

// KaiserLength estimates the number of taps a Kaiser-windowed filter needs
// for the given attenuation in dB and transition width in cycles/sample.
// The estimate is rounded up to the next odd length so the resulting
// filter has an integer group delay.
func KaiserLength(attenuationDB, transitionWidth float64) (int, error) {
	if err := validateTransition(transitionWidth); err != nil {
		return 0, err
	}

	n := int(math.Ceil((attenuationDB-7.95)/(2.285*2*math.Pi*transitionWidth))) + 1
	if n < 3 {
		n = 3
	}

	if n%2 == 0 {
		n++
	}

	return n, nil
}

// Apply multiplies samples by coeffs and writes the product to a new slice.
func Apply(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, errMismatchedLength
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)

	return out, nil
}

// ApplyInPlace multiplies samples by coeffs in place.
func ApplyInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

// besselI0 evaluates the zeroth-order modified Bessel function of the first
// kind by its power series, which converges for all x used by Kaiser windows.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0
	x2 := x * x / 4

	for k := 1; k < 300; k++ {
		term *= x2 / float64(k*k)
		sum += term

		if term < 1e-17*sum {
			break
		}
	}

	return sum
}
