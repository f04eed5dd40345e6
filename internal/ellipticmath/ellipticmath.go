// Package ellipticmath implements the Jacobi elliptic functions and complete
// elliptic integrals needed to place elliptic (Cauer) prototype poles and
// zeros and to evaluate the elliptic order formula.
//
// Moduli are passed as k (not the parameter m = k^2) unless a function says
// otherwise. Computations use descending Landen transformations.
package ellipticmath

import (
	"math"
	"math/cmplx"
)

// Tol is the default convergence threshold for Landen sequences.
const Tol = 2.2e-16

const (
	kMin        = 1e-6
	arcSNIter   = 10
	arcImagTol  = 1e-7
	nomeSeriesN = 7
)

// Landen computes the Landen sequence of descending moduli for k.
// If tol < 1 it is interpreted as a convergence threshold; otherwise
// it is interpreted as a fixed iteration count.
func Landen(k, tol float64) []float64 {
	var v []float64
	if k == 0 || k == 1.0 {
		return []float64{k}
	}

	next := func(k float64) float64 {
		t := k / (1.0 + math.Sqrt((1-k)*(1+k)))
		return t * t
	}

	if tol < 1 {
		for k > tol {
			k = next(k)
			v = append(v, k)
		}

		return v
	}

	for range int(tol) {
		k = next(k)
		v = append(v, k)
	}

	return v
}

// LandenK computes K(k) from a precomputed Landen sequence using
// K(k) = (pi/2) * product(1 + v[i]).
func LandenK(v []float64) float64 {
	prod := 1.0
	for _, x := range v {
		prod *= 1.0 + x
	}

	return prod * math.Pi * 0.5
}

// EllipK returns the complete elliptic integral K(k) and its complement
// K'(k) = K(sqrt(1-k^2)). Moduli very close to 0 or 1 use the logarithmic
// asymptotic expansions.
func EllipK(k, tol float64) (float64, float64) {
	kmax := math.Sqrt(1 - kMin*kMin)

	var K, Kp float64

	switch {
	case k == 1.0:
		K = math.Inf(1)
	case k > kmax:
		kp := math.Sqrt((1 - k) * (1 + k))
		L := -math.Log(kp / 4.0)
		K = L + (L-1)*kp*kp/4.0
	default:
		K = LandenK(Landen(k, tol))
	}

	switch {
	case k == 0.0:
		Kp = math.Inf(1)
	case k < kMin:
		L := -math.Log(k / 4.0)
		Kp = L + (L-1.0)*k*k/4.0
	default:
		kp := math.Sqrt((1 - k) * (1 + k))
		Kp = LandenK(Landen(kp, tol))
	}

	return K, Kp
}

// SNE evaluates sn(u*K, k) for each real u, i.e. the argument is normalized
// to the quarter period K(k).
func SNE(u []float64, k, tol float64) []float64 {
	v := Landen(k, tol)

	w := make([]float64, len(u))
	for i := range u {
		w[i] = math.Sin(u[i] * math.Pi * 0.5)
	}

	for i := len(v) - 1; i >= 0; i-- {
		for j := range w {
			w[j] = ((1 + v[i]) * w[j]) / (1 + v[i]*w[j]*w[j])
		}
	}

	return w
}

// CDE evaluates cd(u*K, k) for a complex normalized argument u.
func CDE(u complex128, k, tol float64) complex128 {
	v := Landen(k, tol)

	w := cmplx.Cos(u * math.Pi * 0.5)
	for i := len(v) - 1; i >= 0; i-- {
		w = (1 + complex(v[i], 0)) * w / (1.0 + complex(v[i], 0)*w*w)
	}

	return w
}

// JacobiSCD returns sn, cn and dn of the (unnormalized) real argument u for
// modulus k in [0, 1). ok is false when the inputs fall outside the
// supported domain or the evaluation is not finite.
func JacobiSCD(u, k, tol float64) (sn, cn, dn float64, ok bool) {
	if !(k >= 0 && k < 1) {
		return 0, 0, 0, false
	}

	K, _ := EllipK(k, tol)
	if K == 0 || math.IsNaN(K) || math.IsInf(K, 0) {
		return 0, 0, 0, false
	}

	uNorm := u / K

	sn = SNE([]float64{uNorm}, k, tol)[0]
	if math.IsNaN(sn) || math.IsInf(sn, 0) {
		return 0, 0, 0, false
	}

	dn2 := 1.0 - k*k*sn*sn
	if dn2 < -1e-12 {
		return 0, 0, 0, false
	}

	dn = math.Sqrt(math.Max(dn2, 0))
	cn = real(CDE(complex(uNorm, 0), k, tol)) * dn

	return sn, cn, dn, true
}

// ArcSC1 solves sc(v, sqrt(1-m)) = w for real v, the inverse needed to
// place elliptic prototype poles. It returns NaN when the inverse is not
// purely real.
func ArcSC1(w, m, tol float64) float64 {
	z := arcSN(complex(0, w), m, tol)
	if math.Abs(real(z)) > arcImagTol*math.Max(1.0, math.Abs(imag(z))) {
		return math.NaN()
	}

	return imag(z)
}

func complement(k complex128) complex128 {
	return cmplx.Sqrt((1.0 - k) * (1.0 + k))
}

// arcSN is the inverse of sn(., sqrt(m)) for complex w via a descending
// Landen sequence of fixed length.
func arcSN(w complex128, m, _ float64) complex128 {
	if m < 0 || m > 1 {
		return cmplx.NaN()
	}

	k := complex(math.Sqrt(m), 0)
	if real(k) == 1 {
		return cmplx.Atanh(w)
	}

	ks := []complex128{k}
	for range arcSNIter - 1 {
		kn := ks[len(ks)-1]
		if kn == 0 {
			break
		}

		kp := complement(kn)
		ks = append(ks, (1.0-kp)/(1.0+kp))
	}

	K := math.Pi * 0.5
	for i := 1; i < len(ks); i++ {
		K *= real(1.0 + ks[i])
	}

	wn := w
	for i := range len(ks) - 1 {
		den := (1.0 + ks[i+1]) * (1.0 + complement(ks[i]*wn))
		if den == 0 {
			return cmplx.NaN()
		}

		wn = 2.0 * wn / den
	}

	return complex(K, 0) * (2.0 / math.Pi) * cmplx.Asin(wn)
}

// DegreeParam solves the elliptic degree equation for order n and
// discrimination parameter m1 = k1^2, returning the parameter m = k^2 of the
// resulting selectivity via the nome series.
func DegreeParam(n int, m1, tol float64) float64 {
	if n <= 0 || !(m1 > 0 && m1 < 1) {
		return math.NaN()
	}

	K1, K1p := EllipK(math.Sqrt(m1), tol)
	if !finitePositive(K1) || !finitePositive(K1p) {
		return math.NaN()
	}

	q1 := math.Exp(-math.Pi * K1p / K1)
	q := math.Pow(q1, 1.0/float64(n))

	num := 0.0
	for i := range nomeSeriesN {
		num += math.Pow(q, float64(i*(i+1)))
	}

	den := 1.0
	for i := 1; i < nomeSeriesN; i++ {
		den += 2.0 * math.Pow(q, float64(i*i))
	}

	return 16.0 * q * math.Pow(num/den, 4.0)
}

// OrderRatio returns K(k) K'(k1) / (K'(k) K(k1)), the real-valued minimum
// elliptic order for selectivity k and discrimination k1.
func OrderRatio(k, k1, tol float64) float64 {
	K, Kp := EllipK(k, tol)
	K1, K1p := EllipK(k1, tol)

	return K * K1p / (Kp * K1)
}

func finitePositive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
}
