package design

import (
	"math"
	"slices"
)

// Spec is an amplitude-response specification.
//
// Lowpass and highpass take one passband and one stopband edge; bandpass
// and bandstop take two of each. Edges are in Hz and must lie strictly
// inside (0, SampleRate/2).
type Spec struct {
	Band          BandType
	Passband      []float64
	Stopband      []float64
	RippleDB      float64 // maximum passband ripple, peak to peak
	AttenuationDB float64 // minimum stopband attenuation
	SampleRate    float64
}

// Interval is a closed frequency range in Hz.
type Interval struct {
	Lo, Hi float64
}

// Validate checks the specification and returns an error wrapping
// ErrInvalidSpec describing the first violation found.
func (s Spec) Validate() error {
	fs := s.SampleRate
	if !(fs > 0) || math.IsInf(fs, 0) {
		return InvalidSpecf("sample rate must be positive and finite, got %v", fs)
	}

	n := s.Band.Edges()
	if n == 0 {
		return InvalidSpecf("unsupported band type %v", s.Band)
	}

	if len(s.Passband) != n || len(s.Stopband) != n {
		return InvalidSpecf("%v needs %d passband and %d stopband edges, got %d and %d",
			s.Band, n, n, len(s.Passband), len(s.Stopband))
	}

	nyq := fs / 2
	for _, f := range append(slices.Clone(s.Passband), s.Stopband...) {
		if !(f > 0 && f < nyq) {
			return InvalidSpecf("edge %v Hz outside (0, %v)", f, nyq)
		}
	}

	if !(s.RippleDB > 0) || math.IsInf(s.RippleDB, 0) {
		return InvalidSpecf("passband ripple must be positive, got %v dB", s.RippleDB)
	}

	if !(s.AttenuationDB > 0) || math.IsInf(s.AttenuationDB, 0) {
		return InvalidSpecf("stopband attenuation must be positive, got %v dB", s.AttenuationDB)
	}

	p, st := s.Passband, s.Stopband

	var ordered bool

	switch s.Band {
	case Lowpass:
		ordered = p[0] < st[0]
	case Highpass:
		ordered = st[0] < p[0]
	case Bandpass:
		ordered = st[0] < p[0] && p[0] < p[1] && p[1] < st[1]
	case Bandstop:
		ordered = p[0] < st[0] && st[0] < st[1] && st[1] < p[1]
	}

	if !ordered {
		return InvalidSpecf("%v edges misordered or zero transition width: pass %v stop %v",
			s.Band, p, st)
	}

	return nil
}

// Normalized returns the passband and stopband edges as fractions of the
// sample rate (cycles/sample, Nyquist = 0.5).
func (s Spec) Normalized() (pass, stop []float64) {
	pass = make([]float64, len(s.Passband))
	for i, f := range s.Passband {
		pass[i] = f / s.SampleRate
	}

	stop = make([]float64, len(s.Stopband))
	for i, f := range s.Stopband {
		stop[i] = f / s.SampleRate
	}

	return pass, stop
}

// Bands returns the passband and stopband regions in Hz covering the
// specified parts of [0, fs/2]. Transition bands are omitted.
func (s Spec) Bands() (pass, stop []Interval) {
	nyq := s.SampleRate / 2
	p, st := s.Passband, s.Stopband

	switch s.Band {
	case Lowpass:
		return []Interval{{0, p[0]}}, []Interval{{st[0], nyq}}
	case Highpass:
		return []Interval{{p[0], nyq}}, []Interval{{0, st[0]}}
	case Bandpass:
		return []Interval{{p[0], p[1]}}, []Interval{{0, st[0]}, {st[1], nyq}}
	case Bandstop:
		return []Interval{{0, p[0]}, {p[1], nyq}}, []Interval{{st[0], st[1]}}
	default:
		return nil, nil
	}
}

// PassbandCenter returns a frequency in Hz inside the passband suitable
// for gain normalization: DC, Nyquist or the passband midpoint.
func (s Spec) PassbandCenter() float64 {
	switch s.Band {
	case Highpass:
		return s.SampleRate / 2
	case Bandpass:
		return (s.Passband[0] + s.Passband[1]) / 2
	default:
		return 0
	}
}

// TransitionWidth returns the narrowest transition band in Hz.
func (s Spec) TransitionWidth() float64 {
	w := math.Inf(1)
	for i := range s.Passband {
		w = math.Min(w, math.Abs(s.Stopband[i]-s.Passband[i]))
	}

	return w
}

// Clone returns a deep copy.
func (s Spec) Clone() Spec {
	s.Passband = slices.Clone(s.Passband)
	s.Stopband = slices.Clone(s.Stopband)

	return s
}
