package iir

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filterdesign/dsp/core"
	"github.com/cwbudde/algo-filterdesign/internal/ellipticmath"
)

const machineEpsilon = 2.220446049250313e-16

type elliptic struct{}

// Order solves the degree equation N >= K(k)K'(k1) / (K'(k)K(k1)) with
// k = 1/Ratio and k1 the discrimination modulus.
func (elliptic) Order(sel Selectivity) int {
	k1 := math.Sqrt(1 / sel.discrimination())
	return ceilOrder(ellipticmath.OrderRatio(1/sel.Ratio, k1, ellipticmath.Tol))
}

// ZPK places zeros with sn and poles with the inverse sc function so that
// the passband ends at 1 rad/s with exactly rippleDB of ripple and the
// stopband reaches attenuationDB.
func (elliptic) ZPK(order int, rippleDB, attenuationDB float64) (Analog, error) {
	if order < 1 {
		return Analog{}, errPrototype
	}

	epsSq := core.DBPowerMinusOne(rippleDB)
	stopSq := core.DBPowerMinusOne(attenuationDB)

	ck1Sq := epsSq / stopSq
	if !(ck1Sq > 0 && ck1Sq < 1) {
		return Analog{}, errPrototype
	}

	if order == 1 {
		p := -math.Sqrt(1 / epsSq)
		return Analog{Poles: []complex128{complex(p, 0)}, Gain: -p}, nil
	}

	tol := ellipticmath.Tol

	m := ellipticmath.DegreeParam(order, ck1Sq, tol)
	if !(m > 0 && m < 1) {
		return Analog{}, errPrototype
	}

	kmod := math.Sqrt(m)
	capK, _ := ellipticmath.EllipK(kmod, tol)
	capK1, _ := ellipticmath.EllipK(math.Sqrt(ck1Sq), tol)

	if !finite(capK) || !finite(capK1) || capK == 0 || capK1 == 0 {
		return Analog{}, errPrototype
	}

	n := float64(order)
	half := (order + 1) / 2
	sn := make([]float64, 0, half)
	cn := make([]float64, 0, half)
	dn := make([]float64, 0, half)
	zHalf := make([]complex128, 0, half)

	for j := 1 - order%2; j < order; j += 2 {
		s, c, d, ok := ellipticmath.JacobiSCD(float64(j)*capK/n, kmod, tol)
		if !ok {
			return Analog{}, errPrototype
		}

		sn, cn, dn = append(sn, s), append(cn, c), append(dn, d)

		if math.Abs(s) > machineEpsilon {
			zHalf = append(zHalf, complex(0, 1/(kmod*s)))
		}
	}

	r := ellipticmath.ArcSC1(1/math.Sqrt(epsSq), ck1Sq, tol)
	if !(r > 0) || !finite(r) {
		return Analog{}, errPrototype
	}

	v0 := capK * r / (n * capK1)

	sv, cv, dv, ok := ellipticmath.JacobiSCD(v0, math.Sqrt(1-m), tol)
	if !ok {
		return Analog{}, errPrototype
	}

	pHalf := make([]complex128, len(sn))
	for i := range sn {
		den := 1 - (dn[i]*sv)*(dn[i]*sv)
		if math.Abs(den) <= machineEpsilon {
			return Analog{}, errPrototype
		}

		pHalf[i] = -complex(cn[i]*dn[i]*sv*cv, sn[i]*dv) / complex(den, 0)
	}

	poles := append(make([]complex128, 0, order), pHalf...)

	// Odd orders carry one real pole which must not be mirrored.
	thr := 0.0
	if order%2 == 1 {
		norm2 := 0.0
		for _, p := range pHalf {
			norm2 += real(p * cmplx.Conj(p))
		}

		thr = machineEpsilon * math.Sqrt(norm2)
	}

	for _, p := range pHalf {
		if order%2 == 0 || math.Abs(imag(p)) > thr {
			poles = append(poles, cmplx.Conj(p))
		}
	}

	for i, p := range poles {
		if math.Abs(imag(p)) <= thr {
			poles[i] = complex(real(p), 0)
		}
	}

	zeros := conjugatePairs(zHalf)

	den := prodNeg(zeros)
	if den == 0 {
		return Analog{}, errPrototype
	}

	gain := real(prodNeg(poles) / den)
	if order%2 == 0 {
		gain /= math.Sqrt(1 + epsSq)
	}

	if gain == 0 || !finite(gain) {
		return Analog{}, errPrototype
	}

	return Analog{Zeros: zeros, Poles: poles, Gain: gain}, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
