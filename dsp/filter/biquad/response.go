package biquad

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filterdesign/internal/zpoly"
)

// Response computes the complex frequency response H(e^jw) of a biquad
// at the given frequency (Hz) and sample rate (Hz).
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := zpoly.Omega(freqHz, sampleRate)
	ejw := cmplx.Exp(complex(0, -w))
	ej2w := ejw * ejw

	num := complex(c.B0, 0) + complex(c.B1, 0)*ejw + complex(c.B2, 0)*ej2w
	den := complex(1, 0) + complex(c.A1, 0)*ejw + complex(c.A2, 0)*ej2w

	return num / den
}

// MagnitudeSquared returns |H(f)|^2 using a closed-form expression that
// avoids complex exponentials.
func (c Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	cw := 2 * math.Cos(zpoly.Omega(freqHz, sampleRate))
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw

	return num / den
}

// MagnitudeDB returns 10*log10(|H(f)|^2).
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns the phase response in radians, in [-pi, pi].
func (c Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// GroupDelay returns the section's group delay in samples. singular is
// true when a zero or pole lies on the unit circle at this frequency.
func (c Coefficients) GroupDelay(freqHz, sampleRate float64) (float64, bool) {
	return zpoly.RationalGroupDelay(c.Numerator(), c.Denominator(), zpoly.Omega(freqHz, sampleRate))
}

// Response computes the complex frequency response of the full chain
// as the product of individual section responses.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	return complex(c.gain, 0) * c.Cascade().Response(freqHz, sampleRate)
}

// MagnitudeDB returns the chain magnitude response in dB.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}
