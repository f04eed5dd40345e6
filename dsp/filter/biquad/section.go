package biquad

import (
	"errors"
	"fmt"
)

// ErrZeroLeading is returned when a coefficient row has a zero a0.
var ErrZeroLeading = errors.New("biquad: leading denominator coefficient is zero")

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
//
// A first-order section has B2 = A2 = 0.
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// IsFirstOrder reports whether the section is first order (B2 = A2 = 0).
func (c Coefficients) IsFirstOrder() bool {
	return c.B2 == 0 && c.A2 == 0
}

// Row returns the section as the 6-tuple (b0, b1, b2, 1, a1, a2).
func (c Coefficients) Row() [6]float64 {
	return [6]float64{c.B0, c.B1, c.B2, 1, c.A1, c.A2}
}

// Numerator returns [B0, B1, B2].
func (c Coefficients) Numerator() []float64 {
	return []float64{c.B0, c.B1, c.B2}
}

// Denominator returns [1, A1, A2].
func (c Coefficients) Denominator() []float64 {
	return []float64{1, c.A1, c.A2}
}

// FromRow builds Coefficients from a (b0, b1, b2, a0, a1, a2) row,
// normalizing by a0.
func FromRow(row [6]float64) (Coefficients, error) {
	a0 := row[3]
	if a0 == 0 {
		return Coefficients{}, fmt.Errorf("%w: %v", ErrZeroLeading, row)
	}

	return Coefficients{
		B0: row[0] / a0,
		B1: row[1] / a0,
		B2: row[2] / a0,
		A1: row[4] / a0,
		A2: row[5] / a0,
	}, nil
}

// Section is a single biquad filter with coefficients and internal state.
// It implements Direct Form II Transposed processing:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Section struct {
	Coefficients

	d0, d1 float64
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
//
// The loop is unrolled by two to shorten the dependency chain between
// consecutive outputs.
func (s *Section) ProcessBlock(buf []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	d0, d1 := s.d0, s.d1

	i := 0
	for n := len(buf); i+1 < n; i += 2 {
		x0 := buf[i]
		y0 := b0*x0 + d0
		d0n := b1*x0 - a1*y0 + d1
		d1n := b2*x0 - a2*y0

		x1 := buf[i+1]
		y1 := b0*x1 + d0n
		d0 = b1*x1 - a1*y1 + d1n
		d1 = b2*x1 - a2*y1

		buf[i] = y0
		buf[i+1] = y1
	}

	if i < len(buf) {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	s.d0, s.d1 = d0, d1
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		y := s.B0*x + s.d0
		s.d0 = s.B1*x - s.A1*y + s.d1
		s.d1 = s.B2*x - s.A2*y
		dst[i] = y
	}
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}
