package spectrum

import (
	"fmt"
	"math"
)

// Goertzel measures the power of one frequency component of a block of
// samples without computing a full DFT.
//
// The detector accumulates every sample passed since the last Reset. For
// tone measurements the block should hold an integer number of periods,
// otherwise leakage biases the result.
type Goertzel struct {
	coeff  float64
	s0, s1 float64
}

// NewGoertzel returns a detector for frequency (Hz) at sampleRate.
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}

	if !(frequency >= 0 && frequency <= sampleRate/2) {
		return nil, fmt.Errorf("goertzel: frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	return &Goertzel{coeff: 2 * math.Cos(2*math.Pi*frequency/sampleRate)}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1 = 0, 0
}

// ProcessBlock feeds a block of samples into the detector.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1

	for _, x := range input {
		s0, s1 = x+g.coeff*s0-s1, s0
	}

	g.s0, g.s1 = s0, s1
}

// Power returns |X[k]|^2 of the samples processed so far.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// ToneGainDB returns the level of the frequency component in out relative
// to the same component in in, in dB. It is the measured gain of a system
// that turned in into out.
func ToneGainDB(in, out []float64, frequency, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}

	g.ProcessBlock(in)
	pin := g.Power()

	g.Reset()
	g.ProcessBlock(out)
	pout := g.Power()

	if pin <= 0 {
		return 0, fmt.Errorf("goertzel: no %v Hz component in the reference signal", frequency)
	}

	if pout <= 0 {
		return math.Inf(-1), nil
	}

	return 10 * math.Log10(pout/pin), nil
}
