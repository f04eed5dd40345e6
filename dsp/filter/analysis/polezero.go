package analysis

import (
	"math"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/internal/polyroot"
)

const (
	// MergeTol is the relative distance below which roots are reported as
	// one root with multiplicity.
	MergeTol = 1e-6

	// IllConditionedDegree is the polynomial degree above which companion
	// matrix rooting is flagged as ill-conditioned.
	IllConditionedDegree = 20

	// IllConditionedResidual is the backward-error residual above which a
	// rooting is flagged as ill-conditioned.
	IllConditionedResidual = 1e-8
)

// Root is a distinct z-plane root and how many times it occurs.
type Root struct {
	Value        complex128
	Multiplicity int
}

// PoleZeroSet lists the finite zeros and poles of a filter in the z-plane
// together with the gain k of H(z) = k * prod(z - z_i) / prod(z - p_i).
type PoleZeroSet struct {
	Zeros    []Root
	Poles    []Root
	Gain     float64
	Warnings []design.Warning
}

// NumZeros counts zeros with multiplicity.
func (s PoleZeroSet) NumZeros() int { return count(s.Zeros) }

// NumPoles counts poles with multiplicity.
func (s PoleZeroSet) NumPoles() int { return count(s.Poles) }

// Stable reports whether every pole lies strictly inside the unit circle.
func (s PoleZeroSet) Stable() bool {
	for _, p := range s.Poles {
		if math.Hypot(real(p.Value), imag(p.Value)) >= 1 {
			return false
		}
	}

	return true
}

func count(rs []Root) int {
	n := 0
	for _, r := range rs {
		n += r.Multiplicity
	}

	return n
}

func merge(roots []complex128) []Root {
	merged := polyroot.Merge(roots, MergeTol)

	out := make([]Root, len(merged))
	for i, r := range merged {
		out[i] = Root{Value: r.Value, Multiplicity: r.Multiplicity}
	}

	return out
}

// PoleZeroFromTransferFunction roots the numerator and denominator of tf.
//
// Both polynomials are brought to the same degree in z first, so a length
// mismatch shows up as roots at the origin. Degrees above
// IllConditionedDegree, or a residual above IllConditionedResidual, attach
// a WarnIllConditioned warning.
func PoleZeroFromTransferFunction(tf design.TransferFunction) (PoleZeroSet, error) {
	if err := tf.Validate(); err != nil {
		return PoleZeroSet{}, design.InvalidSpecf("transfer function: %v", err)
	}

	if leading(tf.B) == 0 {
		return PoleZeroSet{}, design.InvalidSpecf("numerator is identically zero")
	}

	m := max(len(tf.B), len(tf.A))
	b := pad(tf.B, m)
	a := pad(tf.A, m)

	zeros, err := polyroot.Roots(b)
	if err != nil {
		return PoleZeroSet{}, design.NonConvergencef("numerator roots: %v", err)
	}

	poles, err := polyroot.Roots(a)
	if err != nil {
		return PoleZeroSet{}, design.NonConvergencef("denominator roots: %v", err)
	}

	set := PoleZeroSet{
		Zeros: merge(zeros),
		Poles: merge(poles),
		Gain:  leading(b) / a[0],
	}

	if m-1 > IllConditionedDegree {
		set.Warnings = append(set.Warnings, design.Warnf(design.WarnIllConditioned,
			"degree %d above %d", m-1, IllConditionedDegree))
	}

	if r := math.Max(polyroot.Residual(b, zeros), polyroot.Residual(a, poles)); r > IllConditionedResidual {
		set.Warnings = append(set.Warnings, design.Warnf(design.WarnIllConditioned,
			"rooting residual %.3g", r))
	}

	return set, nil
}

// PoleZeroFromCascade solves each section with the quadratic formula and
// aggregates the roots. The gain is the product of the sections' leading
// numerator coefficients.
func PoleZeroFromCascade(c biquad.Cascade) (PoleZeroSet, error) {
	if err := c.Validate(); err != nil {
		return PoleZeroSet{}, design.InvalidSpecf("cascade: %v", err)
	}

	zeros, poles := c.Roots()

	gain := 1.0
	for _, s := range c {
		gain *= leading([]float64{s.B0, s.B1, s.B2})
	}

	return PoleZeroSet{Zeros: merge(zeros), Poles: merge(poles), Gain: gain}, nil
}

// PoleZeroFromZPK reports the roots of a factored design directly.
func PoleZeroFromZPK(z design.ZPK) PoleZeroSet {
	return PoleZeroSet{Zeros: merge(z.Zeros), Poles: merge(z.Poles), Gain: z.Gain}
}

// PoleZeroFromDesign uses the most accurate form d carries: the factored
// form, then the section form, then the rational form.
func PoleZeroFromDesign(d *design.Design) (PoleZeroSet, error) {
	switch {
	case d == nil:
		return PoleZeroSet{}, design.InvalidSpecf("nil design")
	case d.ZPK != nil:
		return PoleZeroFromZPK(*d.ZPK), nil
	case len(d.Sections) > 0:
		return PoleZeroFromCascade(d.Sections)
	default:
		return PoleZeroFromTransferFunction(d.Coefficients)
	}
}

func pad(c []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, c)

	return out
}

func leading(c []float64) float64 {
	for _, v := range c {
		if v != 0 {
			return v
		}
	}

	return 0
}
