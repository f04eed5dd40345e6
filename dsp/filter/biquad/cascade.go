package biquad

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-filterdesign/internal/polyroot"
)

// ErrEmptyCascade is returned when a cascade has no sections.
var ErrEmptyCascade = errors.New("biquad: cascade has no sections")

// Cascade is an ordered sequence of second-order sections whose transfer
// functions multiply. It is a value type; Chain is its streaming runtime.
type Cascade []Coefficients

// Validate checks the cascade invariants: at least one section and finite
// coefficients.
func (c Cascade) Validate() error {
	if len(c) == 0 {
		return ErrEmptyCascade
	}

	for _, s := range c {
		for _, v := range s.Row() {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.New("biquad: non-finite coefficient")
			}
		}
	}

	return nil
}

// Order returns the filter order: two per full section, one per
// first-order section.
func (c Cascade) Order() int {
	n := 0
	for _, s := range c {
		if s.IsFirstOrder() {
			n++
		} else {
			n += 2
		}
	}

	return n
}

// Clone returns an independent copy.
func (c Cascade) Clone() Cascade {
	return append(Cascade(nil), c...)
}

// Rows returns the cascade as (b0, b1, b2, 1, a1, a2) rows.
func (c Cascade) Rows() [][6]float64 {
	rows := make([][6]float64, len(c))
	for i, s := range c {
		rows[i] = s.Row()
	}

	return rows
}

// Response computes the product of the section responses at freqHz. The
// cascade is never collapsed to a single polynomial.
func (c Cascade) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for _, s := range c {
		h *= s.Response(freqHz, sampleRate)
	}

	return h
}

// GroupDelay returns the cascade group delay in samples as the sum of the
// section delays. singular is true if any section is singular there.
func (c Cascade) GroupDelay(freqHz, sampleRate float64) (float64, bool) {
	total := 0.0
	for _, s := range c {
		d, singular := s.GroupDelay(freqHz, sampleRate)
		if singular {
			return math.NaN(), true
		}

		total += d
	}

	return total, false
}

// Rational multiplies the sections out into numerator and denominator
// polynomials in ascending powers of z^-1. Trailing zero terms contributed
// by first-order sections are trimmed.
func (c Cascade) Rational() ([]float64, []float64) {
	b := []float64{1}
	a := []float64{1}

	for _, s := range c {
		if s.IsFirstOrder() {
			b = polyroot.Conv(b, []float64{s.B0, s.B1})
			a = polyroot.Conv(a, []float64{1, s.A1})

			continue
		}

		b = polyroot.Conv(b, s.Numerator())
		a = polyroot.Conv(a, s.Denominator())
	}

	return trimTrailingZeros(b), trimTrailingZeros(a)
}

func trimTrailingZeros(p []float64) []float64 {
	n := len(p)
	for n > 1 && p[n-1] == 0 {
		n--
	}

	return p[:n]
}
