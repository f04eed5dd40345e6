// Package polyroot provides polynomial root-finding and expansion utilities
// shared by the filter design and analysis packages.
//
// Polynomials are real and stored in descending power order:
//
//	coeff[0]*x^n + coeff[1]*x^(n-1) + ... + coeff[n]
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (all zero, non-finite, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// Roots returns all finite roots of a real polynomial.
//
// Leading zero coefficients lower the degree (the dropped roots lie at
// infinity) and trailing zero coefficients contribute exact roots at the
// origin. Degrees above two are solved as eigenvalues of the companion
// matrix; Durand-Kerner is used when the eigen decomposition fails.
func Roots(coeff []float64) ([]complex128, error) {
	for _, c := range coeff {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, ErrDegeneratePolynomial
		}
	}

	first := 0
	for first < len(coeff) && coeff[first] == 0 {
		first++
	}

	if first == len(coeff) {
		return nil, ErrDegeneratePolynomial
	}

	trimmed := coeff[first:]

	origin := 0
	for origin < len(trimmed)-1 && trimmed[len(trimmed)-1-origin] == 0 {
		origin++
	}

	p := trimmed[:len(trimmed)-origin]
	roots := make([]complex128, 0, len(trimmed)-1)

	switch n := len(p) - 1; {
	case n == 0:
	case n == 1:
		roots = append(roots, complex(-p[1]/p[0], 0))
	case n == 2:
		roots = append(roots, Quadratic(p[0], p[1], p[2])...)
	default:
		r, err := companionRoots(p)
		if err != nil {
			r, err = DurandKerner(toComplex(p))
			if err != nil {
				return nil, err
			}
		}

		roots = append(roots, r...)
	}

	for range origin {
		roots = append(roots, 0)
	}

	return roots, nil
}

// companionRoots computes the eigenvalues of the companion matrix of p.
func companionRoots(p []float64) ([]complex128, error) {
	n := len(p) - 1
	c := mat.NewDense(n, n, nil)

	for j := range n {
		c.Set(0, j, -p[j+1]/p[0])
	}

	for i := 1; i < n; i++ {
		c.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(c, mat.EigenNone); !ok {
		return nil, ErrDegeneratePolynomial
	}

	vals := eig.Values(nil)
	for _, v := range vals {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return nil, ErrDegeneratePolynomial
		}
	}

	return vals, nil
}

// Quadratic returns the roots of a*x^2 + b*x + c using the cancellation-free
// form of the quadratic formula. A zero leading coefficient lowers the
// degree, so fewer than two roots may be returned.
func Quadratic(a, b, c float64) []complex128 {
	if a == 0 {
		if b == 0 {
			return nil
		}

		return []complex128{complex(-c/b, 0)}
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		re := -b / (2 * a)
		im := math.Sqrt(-disc) / (2 * math.Abs(a))

		return []complex128{complex(re, im), complex(re, -im)}
	}

	q := -0.5 * (b + math.Copysign(math.Sqrt(disc), b))
	if q == 0 {
		return []complex128{0, 0}
	}

	return []complex128{complex(q/a, 0), complex(c/q, 0)}
}

// DurandKerner finds all roots of a polynomial using the Durand-Kerner
// (Weierstrass) simultaneous iteration method. Coefficients are in descending
// power order: coeff[0]*z^n + coeff[1]*z^(n-1) + ... + coeff[n].
//
//nolint:cyclop
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	lead := coeff[0]
	if lead == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1

	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / lead
	}

	radius := 0.0
	for i := 1; i <= n; i++ {
		if r := cmplx.Abs(norm[i]); r > radius {
			radius = r
		}
	}

	if radius < 1 {
		radius = 1
	}

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(n))
		roots[i] = cmplx.Rect(r, angle)
	}

	const (
		maxIter = 500
		tol     = 1e-12
	)

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)

			for j := range n {
				if i == j {
					continue
				}

				den *= roots[i] - roots[j]
			}

			if den == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			delta := PolyEval(norm, roots[i]) / den

			roots[i] -= delta
			if d := cmplx.Abs(delta); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < tol {
			return roots, nil
		}
	}

	for _, r := range roots {
		if cmplx.Abs(PolyEval(norm, r)) >= 1e-6 {
			return nil, ErrDegeneratePolynomial
		}
	}

	return roots, nil
}

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order: coeff[0]*x^n + ... + coeff[n].
func PolyEval(coeff []complex128, x complex128) complex128 {
	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

// Residual returns the largest normwise backward error of roots as roots of
// the real polynomial coeff:
//
//	max_i |p(r_i)| / sum_k |c_k| |r_i|^(n-k)
//
// Values near machine epsilon mean the roots are exact roots of a nearby
// polynomial; large values flag an ill-conditioned rooting.
func Residual(coeff []float64, roots []complex128) float64 {
	if len(coeff) == 0 {
		return 0
	}

	worst := 0.0
	for _, r := range roots {
		ar := cmplx.Abs(r)
		v := complex(coeff[0], 0)
		scale := math.Abs(coeff[0])

		for i := 1; i < len(coeff); i++ {
			v = v*r + complex(coeff[i], 0)
			scale = scale*ar + math.Abs(coeff[i])
		}

		if scale == 0 {
			continue
		}

		if e := cmplx.Abs(v) / scale; e > worst {
			worst = e
		}
	}

	return worst
}

// FromRoots expands prod (x - r_i) into real descending-order coefficients
// scaled by gain. Imaginary residue from imperfect conjugate pairing is
// discarded.
func FromRoots(roots []complex128, gain float64) []float64 {
	acc := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(acc)+1)
		for i, c := range acc {
			next[i] += c
			next[i+1] -= c * r
		}

		acc = next
	}

	out := make([]float64, len(acc))
	for i, c := range acc {
		out[i] = gain * real(c)
	}

	return out
}

// Conv returns the polynomial product (linear convolution) of a and b.
func Conv(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	out := make([]float64, len(a)+len(b)-1)
	for i, x := range a {
		for j, y := range b {
			out[i+j] += x * y
		}
	}

	return out
}

// QuadFromRoots returns (c1, c2) of the monic polynomial
// x^2 + c1*x + c2 with the given one or two roots. A single root yields a
// first-order factor (c2 = 0), no roots yields (0, 0).
func QuadFromRoots(group []complex128) (float64, float64) {
	switch len(group) {
	case 0:
		return 0, 0
	case 1:
		return -real(group[0]), 0
	default:
		r1, r2 := group[0], group[1]
		return -real(r1 + r2), real(r1 * r2)
	}
}

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	if math.Abs(imag(a)+imag(b)) > tol*math.Max(1, math.Abs(imag(a))) {
		return false
	}

	return true
}

// Root is a distinct root together with its multiplicity.
type Root struct {
	Value        complex128
	Multiplicity int
}

// Merge collapses roots closer than tol (relative to their magnitude, with
// an absolute floor of tol near the origin) into single entries with a
// multiplicity count. The merged value is the centroid of its cluster. The
// result is ordered by real part, then imaginary part.
func Merge(roots []complex128, tol float64) []Root {
	type cluster struct {
		sum   complex128
		count int
	}

	clusters := make([]cluster, 0, len(roots))

	for _, r := range roots {
		matched := false

		for i := range clusters {
			c := clusters[i].sum / complex(float64(clusters[i].count), 0)
			if cmplx.Abs(r-c) <= tol*math.Max(1, cmplx.Abs(c)) {
				clusters[i].sum += r
				clusters[i].count++
				matched = true

				break
			}
		}

		if !matched {
			clusters = append(clusters, cluster{sum: r, count: 1})
		}
	}

	out := make([]Root, len(clusters))
	for i, c := range clusters {
		out[i] = Root{
			Value:        c.sum / complex(float64(c.count), 0),
			Multiplicity: c.count,
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if real(out[i].Value) != real(out[j].Value) {
			return real(out[i].Value) < real(out[j].Value)
		}

		return imag(out[i].Value) < imag(out[j].Value)
	})

	return out
}

func toComplex(p []float64) []complex128 {
	out := make([]complex128, len(p))
	for i, v := range p {
		out[i] = complex(v, 0)
	}

	return out
}
