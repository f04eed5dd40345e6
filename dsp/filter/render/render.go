package render

import (
	"math"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/analysis"
)

// Renderer draws response curves and pole-zero sets.
type Renderer interface {
	RenderResponse(curves []*analysis.Curve, mode analysis.Mode) error
	RenderPoleZero(set analysis.PoleZeroSet) error
}

// Series is one plottable line: Y against X, with gaps where Singular.
type Series struct {
	Label    string
	X, Y     []float64
	Singular []bool
}

// SeriesFromCurve projects c onto mode with frequency in Hz on X.
func SeriesFromCurve(c *analysis.Curve, mode analysis.Mode) Series {
	return Series{
		Label:    c.Label,
		X:        c.Freqs(),
		Y:        c.Values(mode),
		Singular: c.Singular(),
	}
}

// Marker distinguishes zeros from poles in a pole-zero scatter.
type Marker int

const (
	MarkerZero Marker = iota
	MarkerPole
)

func (m Marker) String() string {
	if m == MarkerPole {
		return "pole"
	}

	return "zero"
}

// ScatterPoint is one root in the z-plane.
type ScatterPoint struct {
	Marker       Marker
	Re, Im       float64
	Radius       float64
	Multiplicity int
}

// ScatterFromPoleZero flattens set into zeros followed by poles.
func ScatterFromPoleZero(set analysis.PoleZeroSet) []ScatterPoint {
	out := make([]ScatterPoint, 0, len(set.Zeros)+len(set.Poles))

	add := func(m Marker, rs []analysis.Root) {
		for _, r := range rs {
			re, im := real(r.Value), imag(r.Value)
			out = append(out, ScatterPoint{
				Marker:       m,
				Re:           re,
				Im:           im,
				Radius:       math.Hypot(re, im),
				Multiplicity: r.Multiplicity,
			})
		}
	}

	add(MarkerZero, set.Zeros)
	add(MarkerPole, set.Poles)

	return out
}

// alignedGrid reports whether all curves share the first curve's grid.
func alignedGrid(curves []*analysis.Curve) bool {
	if len(curves) == 0 {
		return true
	}

	ref := curves[0].Points
	for _, c := range curves[1:] {
		if len(c.Points) != len(ref) {
			return false
		}

		for i, p := range c.Points {
			if p.FreqHz != ref[i].FreqHz {
				return false
			}
		}
	}

	return true
}
