package iir

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

// prewarp maps a frequency in Hz to the bilinear s-plane frequency
// tan(pi f / fs), matching z = (1+s)/(1-s).
func prewarp(freqHz, sampleRate float64) float64 {
	return math.Tan(math.Pi * freqHz / sampleRate)
}

// lowpassRatio returns the stopband-to-passband ratio of the lowpass
// equivalent of a band shape, given pre-warped edges.
func lowpassRatio(band design.BandType, wp, ws []float64) float64 {
	switch band {
	case design.Lowpass:
		return ws[0] / wp[0]
	case design.Highpass:
		return wp[0] / ws[0]
	case design.Bandpass:
		wo2, bw := wp[0]*wp[1], wp[1]-wp[0]
		return math.Min(
			math.Abs((ws[0]*ws[0]-wo2)/(ws[0]*bw)),
			math.Abs((ws[1]*ws[1]-wo2)/(ws[1]*bw)),
		)
	case design.Bandstop:
		wo2, bw := wp[0]*wp[1], wp[1]-wp[0]
		return math.Min(
			math.Abs(ws[0]*bw/(ws[0]*ws[0]-wo2)),
			math.Abs(ws[1]*bw/(ws[1]*ws[1]-wo2)),
		)
	default:
		return math.NaN()
	}
}

// toBand maps a normalized lowpass prototype onto the band shape with
// pre-warped passband edges wp.
func toBand(a Analog, band design.BandType, wp []float64) (Analog, error) {
	switch band {
	case design.Lowpass:
		return lpToLP(a, wp[0]), nil
	case design.Highpass:
		return lpToHP(a, wp[0])
	case design.Bandpass:
		return lpToBP(a, math.Sqrt(wp[0]*wp[1]), wp[1]-wp[0]), nil
	case design.Bandstop:
		return lpToBS(a, math.Sqrt(wp[0]*wp[1]), wp[1]-wp[0])
	default:
		return Analog{}, design.InvalidSpecf("unsupported band type %v", band)
	}
}

func scaleRoots(r []complex128, s complex128) []complex128 {
	out := make([]complex128, len(r))
	for i, v := range r {
		out[i] = v * s
	}

	return out
}

// lpToLP moves the passband edge from 1 to wo.
func lpToLP(a Analog, wo float64) Analog {
	degree := len(a.Poles) - len(a.Zeros)

	return Analog{
		Zeros: scaleRoots(a.Zeros, complex(wo, 0)),
		Poles: scaleRoots(a.Poles, complex(wo, 0)),
		Gain:  a.Gain * math.Pow(wo, float64(degree)),
	}
}

// lpToHP substitutes s -> wo/s. Zeros at infinity move to the origin.
func lpToHP(a Analog, wo float64) (Analog, error) {
	degree := len(a.Poles) - len(a.Zeros)

	out := Analog{
		Zeros: make([]complex128, 0, len(a.Poles)),
		Poles: make([]complex128, 0, len(a.Poles)),
	}

	for _, z := range a.Zeros {
		if z == 0 {
			return Analog{}, errPrototype
		}

		out.Zeros = append(out.Zeros, complex(wo, 0)/z)
	}

	for range degree {
		out.Zeros = append(out.Zeros, 0)
	}

	for _, p := range a.Poles {
		if p == 0 {
			return Analog{}, errPrototype
		}

		out.Poles = append(out.Poles, complex(wo, 0)/p)
	}

	out.Gain = a.Gain * real(prodNeg(a.Zeros)/prodNeg(a.Poles))

	return out, nil
}

// bandRoots splits each lowpass root r into the two roots of
// s^2 - r*bw*s + wo^2 = 0.
func bandRoots(roots []complex128, wo, bw float64) []complex128 {
	out := make([]complex128, 0, 2*len(roots))
	wo2 := complex(wo*wo, 0)

	for _, r := range roots {
		h := r * complex(bw/2, 0)
		d := cmplx.Sqrt(h*h - wo2)
		out = append(out, h+d, h-d)
	}

	return out
}

// lpToBP substitutes s -> (s^2 + wo^2) / (s bw).
func lpToBP(a Analog, wo, bw float64) Analog {
	degree := len(a.Poles) - len(a.Zeros)

	zeros := bandRoots(a.Zeros, wo, bw)
	for range degree {
		zeros = append(zeros, 0)
	}

	return Analog{
		Zeros: zeros,
		Poles: bandRoots(a.Poles, wo, bw),
		Gain:  a.Gain * math.Pow(bw, float64(degree)),
	}
}

// lpToBS substitutes s -> s bw / (s^2 + wo^2). Zeros at infinity move
// to +-j*wo.
func lpToBS(a Analog, wo, bw float64) (Analog, error) {
	degree := len(a.Poles) - len(a.Zeros)

	invert := func(roots []complex128) ([]complex128, bool) {
		out := make([]complex128, len(roots))
		for i, r := range roots {
			if r == 0 {
				return nil, false
			}

			out[i] = 1 / r
		}

		return out, true
	}

	zi, ok := invert(a.Zeros)
	if !ok {
		return Analog{}, errPrototype
	}

	pi, ok := invert(a.Poles)
	if !ok {
		return Analog{}, errPrototype
	}

	// The inverted roots already carry the 1/r factor; bandRoots then
	// solves s^2 - (bw/r) s + wo^2 = 0.
	zeros := bandRoots(zi, wo, bw)
	for range degree {
		zeros = append(zeros, complex(0, wo), complex(0, -wo))
	}

	return Analog{
		Zeros: zeros,
		Poles: bandRoots(pi, wo, bw),
		Gain:  a.Gain * real(prodNeg(a.Zeros)/prodNeg(a.Poles)),
	}, nil
}

// bilinear maps an analog filter through z = (1+s)/(1-s). Zeros at
// infinity land on z = -1.
func bilinear(a Analog) (design.ZPK, error) {
	degree := len(a.Poles) - len(a.Zeros)
	if degree < 0 {
		return design.ZPK{}, errPrototype
	}

	mapRoots := func(roots []complex128) ([]complex128, complex128, bool) {
		out := make([]complex128, 0, len(roots)+degree)
		prod := complex(1, 0)

		for _, r := range roots {
			den := 1 - r
			if den == 0 {
				return nil, 0, false
			}

			out = append(out, (1+r)/den)
			prod *= den
		}

		return out, prod, true
	}

	zd, zProd, ok := mapRoots(a.Zeros)
	if !ok {
		return design.ZPK{}, errPrototype
	}

	for range degree {
		zd = append(zd, -1)
	}

	pd, pProd, ok := mapRoots(a.Poles)
	if !ok || pProd == 0 {
		return design.ZPK{}, errPrototype
	}

	gain := a.Gain * real(zProd/pProd)
	if gain == 0 || !finite(gain) {
		return design.ZPK{}, errPrototype
	}

	return design.ZPK{Zeros: zd, Poles: pd, Gain: gain}, nil
}
