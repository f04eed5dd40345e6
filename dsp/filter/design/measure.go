package design

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

const (
	// MeasurePoints is the number of grid points per band region used by
	// Measure.
	MeasurePoints = 1024

	// MeetSlackDB absorbs rounding when comparing a measured response with
	// its targets.
	MeetSlackDB = 1e-4
)

// Responder is anything with a frequency response.
type Responder interface {
	Response(freqHz, sampleRate float64) complex128
}

// Achieved is the measured performance of a design.
type Achieved struct {
	// PassbandRippleDB is max minus min passband magnitude in dB.
	PassbandRippleDB float64
	// StopbandAttenuationDB is minus the largest stopband magnitude in dB.
	StopbandAttenuationDB float64
}

// Meets reports whether the achieved figures satisfy the spec targets.
func (a Achieved) Meets(s Spec) bool {
	return a.PassbandRippleDB <= s.RippleDB+MeetSlackDB &&
		a.StopbandAttenuationDB >= s.AttenuationDB-MeetSlackDB
}

// Measure evaluates r on a dense grid over the pass and stop regions of s
// (edges included) and reports the ripple and attenuation it achieves.
func Measure(r Responder, s Spec) Achieved {
	pass, stop := s.Bands()

	passMax, passMin := math.Inf(-1), math.Inf(1)
	for _, iv := range pass {
		db := bandMagnitudeDB(r, iv, s.SampleRate)
		passMax = math.Max(passMax, floats.Max(db))
		passMin = math.Min(passMin, floats.Min(db))
	}

	stopMax := math.Inf(-1)
	for _, iv := range stop {
		stopMax = math.Max(stopMax, floats.Max(bandMagnitudeDB(r, iv, s.SampleRate)))
	}

	return Achieved{
		PassbandRippleDB:      passMax - passMin,
		StopbandAttenuationDB: -stopMax,
	}
}

func bandMagnitudeDB(r Responder, iv Interval, fs float64) []float64 {
	grid := floats.Span(make([]float64, MeasurePoints), iv.Lo, iv.Hi)
	for i, f := range grid {
		grid[i] = 20 * math.Log10(cmplx.Abs(r.Response(f, fs)))
	}

	return grid
}

// ResponseDeviation returns the largest |a-b| over the Measure grid on
// [0, sampleRate/2], relative to the peak magnitude of a.
func ResponseDeviation(a, b Responder, sampleRate float64) float64 {
	grid := floats.Span(make([]float64, MeasurePoints), 0, sampleRate/2)

	var peak, worst float64
	for _, f := range grid {
		ha := a.Response(f, sampleRate)
		peak = math.Max(peak, cmplx.Abs(ha))
		worst = math.Max(worst, cmplx.Abs(ha-b.Response(f, sampleRate)))
	}

	if peak == 0 {
		return worst
	}

	return worst / peak
}
