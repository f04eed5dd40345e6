package linphase

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-filterdesign/dsp/core"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/dsp/window"
	"github.com/cwbudde/algo-filterdesign/internal/zpoly"
)

// WindowedSinc returns numTaps taps of the ideal band response with the
// given cutoffs (Hz) tapered by a Kaiser window of shape beta.
//
// Lowpass and highpass take one cutoff, bandpass and bandstop two.
// Highpass and bandstop need an odd tap count. The taps are scaled to unit
// gain at the passband centre: DC, Nyquist or the band midpoint.
func WindowedSinc(numTaps int, band design.BandType, cutoffsHz []float64, sampleRate, beta float64) ([]float64, error) {
	if numTaps < 1 {
		return nil, design.InvalidSpecf("tap count must be positive, got %d", numTaps)
	}

	if !(sampleRate > 0) {
		return nil, design.InvalidSpecf("sample rate must be positive, got %v", sampleRate)
	}

	if n := band.Edges(); n == 0 || len(cutoffsHz) != n {
		return nil, design.InvalidSpecf("%v needs %d cutoffs, got %d", band, band.Edges(), len(cutoffsHz))
	}

	if (band == design.Highpass || band == design.Bandstop) && numTaps%2 == 0 {
		return nil, design.InvalidSpecf("%v needs an odd tap count, got %d", band, numTaps)
	}

	fc := make([]float64, len(cutoffsHz))
	for i, f := range cutoffsHz {
		fc[i] = f / sampleRate
		if !(fc[i] > 0 && fc[i] < 0.5) {
			return nil, design.InvalidSpecf("cutoff %v Hz outside (0, %v)", f, sampleRate/2)
		}
	}

	if len(fc) == 2 && !(fc[0] < fc[1]) {
		return nil, design.InvalidSpecf("cutoffs must increase, got %v", cutoffsHz)
	}

	var h []float64

	switch band {
	case design.Lowpass:
		h = idealLowpass(numTaps, fc[0])
	case design.Highpass:
		h = spectralInvert(idealLowpass(numTaps, fc[0]))
	case design.Bandpass:
		h = idealBandpass(numTaps, fc[0], fc[1])
	case design.Bandstop:
		h = spectralInvert(idealBandpass(numTaps, fc[0], fc[1]))
	}

	w, err := window.Kaiser(numTaps, beta)
	if err != nil {
		return nil, design.InvalidSpecf("kaiser window: %v", err)
	}

	if err := window.ApplyInPlace(h, w); err != nil {
		return nil, err
	}

	center := 0.0

	switch band {
	case design.Highpass:
		center = 0.5
	case design.Bandpass:
		center = (fc[0] + fc[1]) / 2
	}

	normalizeGain(h, center)
	mirror(h)

	return h, nil
}

// idealLowpass returns 2fc sinc(2fc (n - M)), M = (N-1)/2.
func idealLowpass(numTaps int, fc float64) []float64 {
	h := make([]float64, numTaps)
	mid := float64(numTaps-1) / 2

	for n := range h {
		x := float64(n) - mid
		if x == 0 {
			h[n] = 2 * fc
			continue
		}

		h[n] = math.Sin(2*math.Pi*fc*x) / (math.Pi * x)
	}

	return h
}

func idealBandpass(numTaps int, f1, f2 float64) []float64 {
	lo := idealLowpass(numTaps, f1)
	h := idealLowpass(numTaps, f2)

	for i := range h {
		h[i] -= lo[i]
	}

	return h
}

// spectralInvert turns h into delta[n - M] - h.
func spectralInvert(h []float64) []float64 {
	vecmath.ScaleBlockInPlace(h, -1)
	h[len(h)/2]++

	return h
}

// mirror averages h[i] and h[N-1-i] so the taps are exactly symmetric.
// The window is only symmetric to rounding.
func mirror(h []float64) {
	n := len(h)
	for i := range n / 2 {
		j := n - 1 - i
		avg := (h[i] + h[j]) / 2
		h[i], h[j] = avg, avg
	}
}

// normalizeGain scales h to unit magnitude at normalized frequency f.
func normalizeGain(h []float64, f float64) {
	g := cmplx.Abs(zpoly.Eval(h, 2*math.Pi*f))
	if g > 0 {
		vecmath.ScaleBlockInPlace(h, 1/g)
	}
}

// kaiserParams returns the effective attenuation, the tap count and beta
// Kaiser's formulas give for spec.
func kaiserParams(spec design.Spec) (float64, int, float64, error) {
	dp := core.PassbandDeviation(spec.RippleDB)
	atten := math.Max(spec.AttenuationDB, -core.LinearToDB(dp))

	n, err := window.KaiserLength(atten, spec.TransitionWidth()/spec.SampleRate)
	if err != nil {
		return 0, 0, 0, design.InvalidSpecf("kaiser length: %v", err)
	}

	return atten, n, window.KaiserBeta(atten), nil
}

// transitionCutoffs places the cutoffs at the transition midpoints.
func transitionCutoffs(spec design.Spec) []float64 {
	c := make([]float64, len(spec.Passband))
	for i := range c {
		c[i] = (spec.Passband[i] + spec.Stopband[i]) / 2
	}

	return c
}

func kaiserTaps(spec design.Spec, numTaps int, beta float64) ([]float64, error) {
	return WindowedSinc(numTaps, spec.Band, transitionCutoffs(spec), spec.SampleRate, beta)
}

// designKaiser grows the Kaiser estimate by two taps at a time until the
// measured response meets spec.
func designKaiser(spec design.Spec) ([]float64, error) {
	_, n, beta, err := kaiserParams(spec)
	if err != nil {
		return nil, err
	}

	for step := 0; step <= searchSteps; step++ {
		taps, err := kaiserTaps(spec, n, beta)
		if err != nil {
			return nil, err
		}

		if design.Measure(design.FIR(taps), spec).Meets(spec) {
			return taps, nil
		}

		n += 2
	}

	return nil, design.NonConvergencef("kaiser: %d taps still miss the targets", n-2)
}
