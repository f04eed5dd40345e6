package analysis

import (
	"math"
	"slices"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/dsp/spectrum"
)

// Point is one sample of a frequency response.
type Point struct {
	FreqHz   float64
	Response complex128
	// GroupDelay is in samples; NaN where Singular.
	GroupDelay float64
	// Singular marks a zero or pole on the unit circle at FreqHz.
	Singular bool
}

// Curve is a sampled frequency response on a uniform grid.
type Curve struct {
	Label      string
	SampleRate float64
	Mode       Mode
	Points     []Point
	Warnings   []design.Warning
}

// Freqs returns the grid frequencies in Hz.
func (c *Curve) Freqs() []float64 {
	out := make([]float64, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.FreqHz
	}

	return out
}

// Responses returns the complex response samples.
func (c *Curve) Responses() []complex128 {
	out := make([]complex128, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Response
	}

	return out
}

// Singular returns the per-point singular flags.
func (c *Curve) Singular() []bool {
	out := make([]bool, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Singular
	}

	return out
}

// HasSingular reports whether any point is singular.
func (c *Curve) HasSingular() bool {
	return slices.ContainsFunc(c.Points, func(p Point) bool { return p.Singular })
}

// Values returns the curve viewed in mode m. Phase is unwrapped across the
// grid. Group delay is NaN at singular points.
func (c *Curve) Values(m Mode) []float64 {
	switch m {
	case MagnitudeDB:
		return spectrum.MagnitudeDB(c.Responses())
	case MagnitudeLinear:
		return spectrum.Magnitude(c.Responses())
	case Phase:
		return spectrum.UnwrapPhase(spectrum.Phase(c.Responses()))
	case GroupDelaySamples, GroupDelaySeconds:
		scale := 1.0
		if m == GroupDelaySeconds {
			scale = 1 / c.SampleRate
		}

		out := make([]float64, len(c.Points))
		for i, p := range c.Points {
			out[i] = p.GroupDelay * scale
		}

		return out
	default:
		return nil
	}
}

// GroupDelayVariation returns max minus min of the non-singular group
// delay samples with frequency in [lo, hi] Hz, or NaN if there are none.
func (c *Curve) GroupDelayVariation(lo, hi float64) float64 {
	vmin, vmax := math.Inf(1), math.Inf(-1)

	for _, p := range c.Points {
		if p.Singular || p.FreqHz < lo || p.FreqHz > hi {
			continue
		}

		vmin = math.Min(vmin, p.GroupDelay)
		vmax = math.Max(vmax, p.GroupDelay)
	}

	if vmax < vmin {
		return math.NaN()
	}

	return vmax - vmin
}

// Clone returns a deep copy.
func (c *Curve) Clone() *Curve {
	out := *c
	out.Points = slices.Clone(c.Points)
	out.Warnings = slices.Clone(c.Warnings)

	return &out
}
