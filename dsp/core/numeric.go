// Package core holds the unit conversions and processing configuration shared
// by the filter design, analysis and runtime packages.
package core

import "math"

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps, either absolutely
// or relative to the larger magnitude.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return false
	}

	return diff/largest <= eps
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// DBPowerMinusOne returns 10^(db/10) - 1 without cancellation for small db.
// It is the squared ripple factor eps^2 of a passband ripple of db decibels.
func DBPowerMinusOne(db float64) float64 {
	return math.Expm1(math.Ln10 * db / 10)
}

// PassbandDeviation converts a peak-to-peak passband ripple in dB to the
// linear deviation delta_p of a gain oscillating in [1-delta_p, 1+delta_p].
func PassbandDeviation(rippleDB float64) float64 {
	g := DBToLinear(rippleDB)
	return (g - 1) / (g + 1)
}

// StopbandDeviation converts a stopband attenuation in dB to the linear
// stopband gain bound delta_s.
func StopbandDeviation(attenuationDB float64) float64 {
	return DBToLinear(-attenuationDB)
}
