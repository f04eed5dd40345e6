package linphase

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// remezTol is the relative spread of the extremal errors at which the
// exchange is considered converged.
const remezTol = 1e-6

var errRemezSetup = errors.New("linphase: degenerate remez problem")

// band is a frequency interval (cycles/sample) with a constant desired
// amplitude and error weight.
type band struct {
	lo, hi  float64
	desired float64
	weight  float64
}

// remezProblem is the weighted Chebyshev approximation solved on a dense
// grid. For even lengths the amplitude is cos(pi f) * P(f), so desired
// values and weights are rescaled and P is approximated instead.
type remezProblem struct {
	numTaps int
	terms   int // cosine terms in P

	freq    []float64
	x       []float64 // cos(2 pi f)
	desired []float64
	weight  []float64

	// bandOf is the index of the band each grid point belongs to.
	bandOf []int
}

func newRemezProblem(numTaps int, bands []band, density int) (*remezProblem, error) {
	if numTaps < 3 || len(bands) == 0 {
		return nil, errRemezSetup
	}

	even := numTaps%2 == 0

	terms := (numTaps + 1) / 2
	if even {
		terms = numTaps / 2
	}

	step := 0.5 / float64(density*terms)
	p := &remezProblem{numTaps: numTaps, terms: terms}

	for bi, b := range bands {
		lo, hi := b.lo, b.hi
		if even && hi > 0.5-step {
			hi = 0.5 - step
		}

		if hi < lo {
			continue
		}

		m := max(int(math.Ceil((hi-lo)/step)), 1) + 1
		grid := floats.Span(make([]float64, m), lo, hi)

		for _, f := range grid {
			d, w := b.desired, b.weight
			if even {
				q := math.Cos(math.Pi * f)
				d /= q
				w *= q
			}

			p.freq = append(p.freq, f)
			p.x = append(p.x, math.Cos(2*math.Pi*f))
			p.desired = append(p.desired, d)
			p.weight = append(p.weight, w)
			p.bandOf = append(p.bandOf, bi)
		}
	}

	if len(p.freq) < terms+1 {
		return nil, errRemezSetup
	}

	return p, nil
}

// interpolant is P(x) in barycentric form through the first len(xs)
// extremal abscissae.
type interpolant struct {
	xs, ys, ws []float64
}

func newInterpolant(xs, ys []float64) interpolant {
	ws := make([]float64, len(xs))
	for k := range xs {
		prod := 1.0
		for i := range xs {
			if i != k {
				prod *= 2 * (xs[k] - xs[i])
			}
		}

		ws[k] = 1 / prod
	}

	return interpolant{xs: xs, ys: ys, ws: ws}
}

func (ip interpolant) eval(x float64) float64 {
	var num, den float64

	for k, xk := range ip.xs {
		d := x - xk
		if math.Abs(d) < 1e-14 {
			return ip.ys[k]
		}

		c := ip.ws[k] / d
		num += c * ip.ys[k]
		den += c
	}

	return num / den
}

// solve runs the Remez exchange. converged is false when the iteration
// cap was reached; the best approximation so far is still returned.
func (p *remezProblem) solve(maxIter int) (interpolant, bool) {
	r := p.terms + 1
	ng := len(p.freq)

	ext := make([]int, r)
	for k := range ext {
		ext[k] = int(math.Round(float64(k) * float64(ng-1) / float64(r-1)))
	}

	var ip interpolant

	for range maxIter {
		xs := make([]float64, r)
		for k, j := range ext {
			xs[k] = p.x[j]
		}

		full := newInterpolant(xs, nil)

		var num, den float64

		sign := 1.0
		for k, j := range ext {
			num += full.ws[k] * p.desired[j]
			den += sign * full.ws[k] / p.weight[j]
			sign = -sign
		}

		delta := num / den

		ys := make([]float64, r)
		sign = 1.0

		for k, j := range ext {
			ys[k] = p.desired[j] - sign*delta/p.weight[j]
			sign = -sign
		}

		ip = newInterpolant(xs[:r-1], ys[:r-1])

		errs := make([]float64, ng)
		for j := range errs {
			errs[j] = p.weight[j] * (p.desired[j] - ip.eval(p.x[j]))
		}

		next := extrema(errs, p.bandOf, math.Abs(delta), r)
		if len(next) < r {
			return ip, false
		}

		ext = next

		mags := make([]float64, r)
		for k, j := range ext {
			mags[k] = math.Abs(errs[j])
		}

		hi, lo := floats.Max(mags), floats.Min(mags)
		if hi == 0 || (hi-lo)/hi < remezTol {
			return ip, true
		}
	}

	return ip, false
}

// extrema picks r alternating local extrema of e whose magnitude is at
// least floor. Band edges only compare against their in-band neighbour.
func extrema(e []float64, bandOf []int, floor float64, r int) []int {
	n := len(e)

	var cand []int

	for j := range n {
		v := e[j]
		if math.Abs(v) < floor*(1-1e-9) {
			continue
		}

		first := j == 0 || bandOf[j-1] != bandOf[j]
		last := j == n-1 || bandOf[j+1] != bandOf[j]

		left := first || (v > 0 && v >= e[j-1]) || (v < 0 && v <= e[j-1])
		right := last || (v > 0 && v >= e[j+1]) || (v < 0 && v <= e[j+1])

		if left && right && v != 0 {
			cand = append(cand, j)
		}
	}

	// Keep one extremum per run of equal sign.
	alt := cand[:0:0]
	for _, j := range cand {
		if len(alt) > 0 && math.Signbit(e[alt[len(alt)-1]]) == math.Signbit(e[j]) {
			if math.Abs(e[j]) > math.Abs(e[alt[len(alt)-1]]) {
				alt[len(alt)-1] = j
			}

			continue
		}

		alt = append(alt, j)
	}

	// Drop the smaller end extremum until r remain.
	for len(alt) > r {
		if math.Abs(e[alt[0]]) < math.Abs(e[alt[len(alt)-1]]) {
			alt = alt[1:]
		} else {
			alt = alt[:len(alt)-1]
		}
	}

	return alt
}

// taps recovers the impulse response from the converged approximation by
// sampling the amplitude on numTaps equally spaced frequencies.
func (p *remezProblem) taps(ip interpolant) []float64 {
	n := p.numTaps
	even := n%2 == 0

	amp := func(f float64) float64 {
		a := ip.eval(math.Cos(2 * math.Pi * f))
		if even {
			a *= math.Cos(math.Pi * f)
		}

		return a
	}

	samples := make([]float64, n)
	for j := range samples {
		samples[j] = amp(float64(j) / float64(n))
	}

	h := make([]float64, n)

	if !even {
		m := (n - 1) / 2
		for k := 0; k <= m; k++ {
			var s float64
			for j, a := range samples {
				s += a * math.Cos(2*math.Pi*float64(k*j)/float64(n))
			}

			s /= float64(n)
			if k == 0 {
				h[m] = s
			} else {
				h[m+k] = s
				h[m-k] = s
			}
		}

		return h
	}

	half := n / 2
	for k := 1; k <= half; k++ {
		var s float64
		for j, a := range samples {
			s += a * math.Cos(2*math.Pi*(float64(k)-0.5)*float64(j)/float64(n))
		}

		s /= float64(n)
		h[half-k] = s
		h[half-1+k] = s
	}

	return h
}

// remez designs a numTaps-long linear-phase filter approximating bands in
// the weighted minimax sense.
func remez(numTaps int, bands []band, density, maxIter int) ([]float64, bool, error) {
	p, err := newRemezProblem(numTaps, bands, density)
	if err != nil {
		return nil, false, err
	}

	ip, converged := p.solve(maxIter)

	h := p.taps(ip)
	mirror(h)

	return h, converged, nil
}
