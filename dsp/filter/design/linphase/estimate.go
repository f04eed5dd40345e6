package linphase

import (
	"cmp"
	"math"
	"slices"

	"github.com/cwbudde/algo-filterdesign/dsp/core"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

// Herrmann, Rabiner and Chan's fit for the equiripple lowpass length.
const (
	ha1 = 5.309e-3
	ha2 = 7.114e-2
	ha3 = -4.761e-1
	ha4 = -2.66e-3
	ha5 = -5.941e-1
	ha6 = -4.278e-1
	hb1 = 11.01217
	hb2 = 0.5124401
)

// Mintzer and Liu's fit for the equiripple bandpass length.
const (
	mb1 = 0.01201
	mb2 = 0.09664
	mb3 = -0.51325
	mb4 = 0.00203
	mb5 = -0.5705
	mb6 = -0.44314
)

// HerrmannLength estimates the equiripple tap count for passband and
// stopband deviations dp, ds and transition width df (cycles/sample).
func HerrmannLength(dp, ds, df float64) int {
	if dp < ds {
		dp, ds = ds, dp
	}

	lp, ls := math.Log10(dp), math.Log10(ds)

	dinf := (ha1*lp*lp+ha2*lp+ha3)*ls + (ha4*lp*lp + ha5*lp + ha6)
	f := hb1 + hb2*(lp-ls)

	return max(int(math.Ceil(dinf/df-f*df+1)), 3)
}

// MintzerLiuLength estimates the equiripple bandpass tap count.
func MintzerLiuLength(dp, ds, df float64) int {
	lp, ls := math.Log10(dp), math.Log10(ds)

	cinf := ls*(mb1*lp*lp+mb2*lp+mb3) + (mb4*lp*lp + mb5*lp + mb6)
	g := -14.6*math.Log10(dp/ds) - 16.9

	return max(int(math.Ceil(cinf/df+g*df+1)), 3)
}

// equirippleEstimate returns the starting tap count for spec.
func equirippleEstimate(spec design.Spec) int {
	dp := core.PassbandDeviation(spec.RippleDB)
	ds := core.StopbandDeviation(spec.AttenuationDB)
	df := spec.TransitionWidth() / spec.SampleRate

	n := HerrmannLength(dp, ds, df)
	if spec.Band == design.Bandpass {
		n = MintzerLiuLength(dp, ds, df)
	}

	return fitLength(spec.Band, n)
}

// fitLength clamps n to at least 3 and makes it odd when the band
// shape needs a nonzero Nyquist response.
func fitLength(band design.BandType, n int) int {
	n = max(n, 3)
	if needsOdd(band) && n%2 == 0 {
		n++
	}

	return n
}

func needsOdd(band design.BandType) bool {
	return band == design.Highpass || band == design.Bandstop
}

// remezBands converts spec into Remez bands in cycles/sample.
func remezBands(spec design.Spec, weightRatio float64) []band {
	dp := core.PassbandDeviation(spec.RippleDB)
	ds := core.StopbandDeviation(spec.AttenuationDB)
	ws := dp / ds * weightRatio

	pass, stop := spec.Bands()

	out := make([]band, 0, len(pass)+len(stop))
	for _, iv := range pass {
		out = append(out, band{lo: iv.Lo / spec.SampleRate, hi: iv.Hi / spec.SampleRate, desired: 1, weight: 1})
	}

	for _, iv := range stop {
		out = append(out, band{lo: iv.Lo / spec.SampleRate, hi: iv.Hi / spec.SampleRate, desired: 0, weight: ws})
	}

	slices.SortFunc(out, func(a, b band) int { return cmp.Compare(a.lo, b.lo) })

	return out
}
