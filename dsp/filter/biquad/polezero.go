package biquad

import "github.com/cwbudde/algo-filterdesign/internal/polyroot"

// Poles returns the z-plane poles of the section, the roots of
//
//	z^2 + A1*z + A2 = 0
//
// A first-order section reports its pole and an origin pole; see Roots.
func (c Coefficients) Poles() []complex128 {
	return polyroot.Quadratic(1, c.A1, c.A2)
}

// Zeros returns the finite z-plane zeros of the section, the roots of
//
//	B0*z^2 + B1*z + B2 = 0
//
// A vanishing B0 lowers the degree; the missing zeros lie at infinity.
func (c Coefficients) Zeros() []complex128 {
	return polyroot.Quadratic(c.B0, c.B1, c.B2)
}

// Roots returns the section's zeros and poles with the cancelling origin
// pole/zero pair of first-order sections removed.
func (c Coefficients) Roots() ([]complex128, []complex128) {
	zeros, poles := c.Zeros(), c.Poles()
	if !c.IsFirstOrder() {
		return zeros, poles
	}

	if zi, pi := originIndex(zeros), originIndex(poles); zi >= 0 && pi >= 0 {
		zeros = append(zeros[:zi:zi], zeros[zi+1:]...)
		poles = append(poles[:pi:pi], poles[pi+1:]...)
	}

	return zeros, poles
}

// Roots aggregates the zeros and poles of every section, each solved
// exactly by the quadratic formula.
func (c Cascade) Roots() ([]complex128, []complex128) {
	zeros := make([]complex128, 0, 2*len(c))
	poles := make([]complex128, 0, 2*len(c))

	for _, s := range c {
		z, p := s.Roots()
		zeros = append(zeros, z...)
		poles = append(poles, p...)
	}

	return zeros, poles
}

func originIndex(roots []complex128) int {
	for i, r := range roots {
		if r == 0 {
			return i
		}
	}

	return -1
}
