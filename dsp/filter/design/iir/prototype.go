package iir

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filterdesign/dsp/core"
)

// orderSlack keeps the closed-form order from rounding up when the exact
// real-valued order is an integer up to floating-point noise.
const orderSlack = 1e-9

var errPrototype = errors.New("iir: analog prototype failed")

// Analog is an s-plane filter in factored form:
//
//	H(s) = Gain * prod(s - Zeros[i]) / prod(s - Poles[j])
type Analog struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// Response evaluates H(j*omega).
func (a Analog) Response(omega float64) complex128 {
	s := complex(0, omega)

	h := complex(a.Gain, 0)
	for _, z := range a.Zeros {
		h *= s - z
	}

	for _, p := range a.Poles {
		h /= s - p
	}

	return h
}

// Selectivity describes a lowpass-equivalent requirement: the passband
// edge sits at 1 rad/s and the stopband edge at Ratio (> 1).
type Selectivity struct {
	Ratio         float64
	RippleDB      float64
	AttenuationDB float64
}

// discrimination returns (10^(As/10)-1)/(10^(Ap/10)-1).
func (s Selectivity) discrimination() float64 {
	return core.DBPowerMinusOne(s.AttenuationDB) / core.DBPowerMinusOne(s.RippleDB)
}

// AnalogPrototype is the capability every family provides.
//
// ZPK returns a normalized lowpass prototype whose attenuation at 1 rad/s
// is exactly rippleDB; Order returns the smallest order for which the
// prototype also reaches attenuationDB at the stopband ratio.
type AnalogPrototype interface {
	Order(sel Selectivity) int
	ZPK(order int, rippleDB, attenuationDB float64) (Analog, error)
}

func ceilOrder(x float64) int {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}

	return max(1, int(math.Ceil(x-orderSlack)))
}

// prodNeg returns prod(-v[i]).
func prodNeg(v []complex128) complex128 {
	out := complex(1, 0)
	for _, x := range v {
		out *= -x
	}

	return out
}

func conjugatePairs(half []complex128) []complex128 {
	out := make([]complex128, 0, 2*len(half))
	for _, r := range half {
		out = append(out, r, cmplx.Conj(r))
	}

	return out
}

type butterworth struct{}

func (butterworth) Order(sel Selectivity) int {
	return ceilOrder(math.Log10(sel.discrimination()) / (2 * math.Log10(sel.Ratio)))
}

// ZPK places the poles on a circle of radius eps^(-1/N), eps^2 =
// 10^(Ap/10)-1, so that the response is down exactly Ap at 1 rad/s.
func (butterworth) ZPK(order int, rippleDB, _ float64) (Analog, error) {
	if order < 1 {
		return Analog{}, errPrototype
	}

	eps := math.Sqrt(core.DBPowerMinusOne(rippleDB))
	wc := math.Pow(eps, -1/float64(order))

	poles := make([]complex128, 0, order)
	for k := range order {
		theta := math.Pi * float64(2*k+order+1) / float64(2*order)
		poles = append(poles, cmplx.Rect(wc, theta))
	}

	if order%2 == 1 {
		poles[order/2] = complex(-wc, 0)
	}

	return Analog{Poles: poles, Gain: math.Pow(wc, float64(order))}, nil
}

type chebyshev1 struct{}

func (chebyshev1) Order(sel Selectivity) int {
	return ceilOrder(math.Acosh(math.Sqrt(sel.discrimination())) / math.Acosh(sel.Ratio))
}

func (chebyshev1) ZPK(order int, rippleDB, _ float64) (Analog, error) {
	if order < 1 {
		return Analog{}, errPrototype
	}

	epsSq := core.DBPowerMinusOne(rippleDB)
	mu := math.Asinh(1/math.Sqrt(epsSq)) / float64(order)
	sh, ch := math.Sinh(mu), math.Cosh(mu)

	poles := make([]complex128, 0, order)
	for k := range order {
		theta := math.Pi * float64(2*k+1) / float64(2*order)
		poles = append(poles, complex(-sh*math.Sin(theta), ch*math.Cos(theta)))
	}

	if order%2 == 1 {
		poles[order/2] = complex(-sh, 0)
	}

	gain := real(prodNeg(poles))
	if order%2 == 0 {
		gain /= math.Sqrt(1 + epsSq)
	}

	return Analog{Poles: poles, Gain: gain}, nil
}

type chebyshev2 struct{}

func (chebyshev2) Order(sel Selectivity) int {
	return chebyshev1{}.Order(sel)
}

// ZPK builds the inverse Chebyshev prototype with its stopband edge at
// 1 rad/s and rescales it so the passband edge lands on 1 rad/s.
func (chebyshev2) ZPK(order int, rippleDB, attenuationDB float64) (Analog, error) {
	if order < 1 {
		return Analog{}, errPrototype
	}

	gs := core.DBPowerMinusOne(attenuationDB)
	gp := core.DBPowerMinusOne(rippleDB)
	n := float64(order)

	mu := math.Asinh(math.Sqrt(gs)) / n
	sh, ch := math.Sinh(mu), math.Cosh(mu)

	half := make([]complex128, 0, order/2)
	for k := range order / 2 {
		half = append(half, complex(0, 1/math.Cos(math.Pi*float64(2*k+1)/(2*n))))
	}

	zeros := conjugatePairs(half)

	poles := make([]complex128, 0, order)
	for k := range order {
		theta := math.Pi * float64(2*k+1) / (2 * n)
		p := complex(-sh*math.Sin(theta), ch*math.Cos(theta))
		poles = append(poles, 1/p)
	}

	if order%2 == 1 {
		poles[order/2] = complex(-1/sh, 0)
	}

	// Stopband edge at ws when the passband edge is at 1.
	ws := math.Cosh(math.Acosh(math.Sqrt(gs/gp)) / n)
	for i := range zeros {
		zeros[i] *= complex(ws, 0)
	}

	for i := range poles {
		poles[i] *= complex(ws, 0)
	}

	den := prodNeg(zeros)
	if den == 0 {
		return Analog{}, errPrototype
	}

	return Analog{Zeros: zeros, Poles: poles, Gain: real(prodNeg(poles) / den)}, nil
}
