package design

import (
	"slices"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
)

// Design is the result of a FIR or IIR design call. Results never share
// backing arrays with their inputs or with other results.
type Design struct {
	Spec Spec

	// Coefficients is the rational form; A == [1] for FIR designs.
	Coefficients TransferFunction
	// Sections is the second-order-section form (IIR only).
	Sections biquad.Cascade
	// ZPK is the digital factored form (IIR only).
	ZPK *ZPK

	// Order is the realised filter order: the pole count for IIR designs,
	// len(taps)-1 for FIR designs.
	Order  int
	Method string

	Achieved Achieved
	Warnings []Warning
}

// IsFIR reports whether the design has no feedback.
func (d *Design) IsFIR() bool {
	return d.Coefficients.IsFIR()
}

// Taps returns a copy of the FIR taps, or nil for IIR designs.
func (d *Design) Taps() []float64 {
	if !d.IsFIR() {
		return nil
	}

	return slices.Clone(d.Coefficients.B)
}

// Response evaluates the design at freqHz. IIR designs are evaluated
// section by section.
func (d *Design) Response(freqHz, sampleRate float64) complex128 {
	if len(d.Sections) > 0 {
		return d.Sections.Response(freqHz, sampleRate)
	}

	return d.Coefficients.Response(freqHz, sampleRate)
}

// GroupDelay returns the group delay in samples at freqHz.
func (d *Design) GroupDelay(freqHz, sampleRate float64) (float64, bool) {
	if len(d.Sections) > 0 {
		return d.Sections.GroupDelay(freqHz, sampleRate)
	}

	return d.Coefficients.GroupDelay(freqHz, sampleRate)
}

// Meets reports whether the measured response satisfies the spec.
func (d *Design) Meets() bool {
	return d.Achieved.Meets(d.Spec)
}

// HasWarning reports whether a warning of the given kind is attached.
func (d *Design) HasWarning(kind WarningKind) bool {
	return slices.ContainsFunc(d.Warnings, func(w Warning) bool { return w.Kind == kind })
}

// Clone returns a deep copy.
func (d *Design) Clone() *Design {
	out := *d
	out.Spec = d.Spec.Clone()
	out.Coefficients = d.Coefficients.Clone()
	out.Sections = d.Sections.Clone()
	out.Warnings = slices.Clone(d.Warnings)

	if d.ZPK != nil {
		z := ZPK{
			Zeros: slices.Clone(d.ZPK.Zeros),
			Poles: slices.Clone(d.ZPK.Poles),
			Gain:  d.ZPK.Gain,
		}
		out.ZPK = &z
	}

	return &out
}
