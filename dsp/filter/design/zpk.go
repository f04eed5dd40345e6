package design

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/internal/polyroot"
)

// realTol is the imaginary-part threshold below which a root is real.
const realTol = 1e-9

var errImproperZPK = errors.New("design: more zeros than poles")

// ZPK is a digital filter in factored form:
//
//	H(z) = Gain * prod(z - Zeros[i]) / prod(z - Poles[j])
//
// Complex roots must come in conjugate pairs.
type ZPK struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// Response evaluates the factored form at freqHz.
func (z ZPK) Response(freqHz, sampleRate float64) complex128 {
	ejw := cmplx.Exp(complex(0, 2*math.Pi*freqHz/sampleRate))

	h := complex(z.Gain, 0)
	for _, r := range z.Zeros {
		h *= ejw - r
	}

	for _, p := range z.Poles {
		h /= ejw - p
	}

	return h
}

// TransferFunction expands the roots into B/A in ascending powers of z^-1.
// The numerator is delayed by the excess of poles over zeros.
func (z ZPK) TransferFunction() (TransferFunction, error) {
	excess := len(z.Poles) - len(z.Zeros)
	if excess < 0 {
		return TransferFunction{}, errImproperZPK
	}

	num := polyroot.FromRoots(z.Zeros, z.Gain)
	b := make([]float64, excess, excess+len(num))
	b = append(b, num...)

	return TransferFunction{B: b, A: polyroot.FromRoots(z.Poles, 1)}, nil
}

// Cascade factors the ZPK into second-order sections.
//
// Roots are grouped into conjugate pairs, with leftover real roots paired
// by value. Starting from the pole group nearest the unit circle, each pole
// group takes the closest remaining zero group of the same size when one
// exists; zeros missing from a section are placed at infinity. Sections
// are emitted farthest-from-circle first and the gain is
// folded into the first section.
func (z ZPK) Cascade() (biquad.Cascade, error) {
	if len(z.Poles) == 0 {
		return nil, biquad.ErrEmptyCascade
	}

	if len(z.Zeros) > len(z.Poles) {
		return nil, errImproperZPK
	}

	pGroups := groupRoots(z.Poles)
	zGroups := groupRoots(z.Zeros)

	sort.SliceStable(pGroups, func(i, j int) bool {
		return circleDistance(pGroups[i]) < circleDistance(pGroups[j])
	})

	used := make([]bool, len(zGroups))
	out := make(biquad.Cascade, len(pGroups))

	for i, pg := range pGroups {
		zg := nearestGroup(pg, zGroups, used)

		b1, b2 := polyroot.QuadFromRoots(zg)
		a1, a2 := polyroot.QuadFromRoots(pg)

		// Missing zeros sit at infinity and delay the numerator.
		var num [3]float64

		zc := [3]float64{1, b1, b2}
		shift := max(len(pg)-len(zg), 0)

		for k := 0; k <= len(zg) && k+shift < len(num); k++ {
			num[k+shift] = zc[k]
		}

		out[len(pGroups)-1-i] = biquad.Coefficients{B0: num[0], B1: num[1], B2: num[2], A1: a1, A2: a2}
	}

	out[0].B0 *= z.Gain
	out[0].B1 *= z.Gain
	out[0].B2 *= z.Gain

	return out, nil
}

// nearestGroup returns the unused zero group closest to pg, preferring
// groups of the same size. It marks the chosen group as used.
func nearestGroup(pg []complex128, groups [][]complex128, used []bool) []complex128 {
	best, bestSame := -1, false
	bestDist := math.Inf(1)

	for i, g := range groups {
		if used[i] {
			continue
		}

		same := len(g) == len(pg)
		d := groupDistance(pg, g)

		switch {
		case best < 0,
			same && !bestSame,
			same == bestSame && d < bestDist:
			best, bestSame, bestDist = i, same, d
		}
	}

	if best < 0 {
		return nil
	}

	used[best] = true

	return groups[best]
}

func groupDistance(a, b []complex128) float64 {
	d := math.Inf(1)
	for _, x := range a {
		for _, y := range b {
			d = math.Min(d, cmplx.Abs(x-y))
		}
	}

	return d
}

func circleDistance(g []complex128) float64 {
	d := math.Inf(1)
	for _, r := range g {
		d = math.Min(d, math.Abs(1-cmplx.Abs(r)))
	}

	return d
}

// groupRoots splits roots into conjugate pairs and pairs of real roots.
// An odd real root is returned as a single-element group.
func groupRoots(roots []complex128) [][]complex128 {
	if len(roots) == 0 {
		return nil
	}

	sorted := append([]complex128(nil), roots...)
	sort.Slice(sorted, func(i, j int) bool {
		if imag(sorted[i]) != imag(sorted[j]) {
			return imag(sorted[i]) > imag(sorted[j])
		}

		return real(sorted[i]) < real(sorted[j])
	})

	used := make([]bool, len(sorted))
	groups := make([][]complex128, 0, (len(sorted)+1)/2)
	reals := make([]complex128, 0, len(sorted))

	for i, r := range sorted {
		if used[i] {
			continue
		}

		used[i] = true

		if math.Abs(imag(r)) <= realTol {
			reals = append(reals, complex(real(r), 0))
			continue
		}

		target := cmplx.Conj(r)
		best := -1
		bestDist := math.MaxFloat64

		for j, rr := range sorted {
			if used[j] {
				continue
			}

			if d := cmplx.Abs(rr - target); d < bestDist {
				bestDist = d
				best = j
			}
		}

		if best != -1 && polyroot.IsConjugate(r, sorted[best], 1e-4) {
			used[best] = true
			r = complex(real(r), math.Abs(imag(r)))
			groups = append(groups, []complex128{r, cmplx.Conj(r)})
		} else {
			groups = append(groups, []complex128{r})
		}
	}

	sort.Slice(reals, func(i, j int) bool { return real(reals[i]) < real(reals[j]) })

	for i := 0; i+1 < len(reals); i += 2 {
		groups = append(groups, []complex128{reals[i], reals[i+1]})
	}

	if len(reals)%2 == 1 {
		groups = append(groups, []complex128{reals[len(reals)-1]})
	}

	return groups
}
