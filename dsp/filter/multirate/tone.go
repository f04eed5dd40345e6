package multirate

import (
	"math"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/dsp/spectrum"
)

const (
	// toneSettle is the number of samples discarded before a tone is
	// measured, on top of the FIR length.
	toneSettle = 1 << 14
	// toneMeasure is the nominal Goertzel window.
	toneMeasure = 1 << 14
)

// ToneGainDB measures the gain at freqHz at the configured sample rate by
// filtering a cosine through a fresh copy of f and comparing Goertzel
// levels once the transient has passed. The state of f is not touched.
//
// The window is rounded to a whole number of periods. Responses that have
// not decayed within toneSettle samples read high.
func (f *Filter) ToneGainDB(freqHz float64) (float64, error) {
	fs := f.cfg.SampleRate
	if !(freqHz >= 0 && freqHz <= fs/2) {
		return 0, design.InvalidSpecf("tone %v Hz outside [0, %v]", freqHz, fs/2)
	}

	g, err := f.fresh()
	if err != nil {
		return 0, err
	}

	n := toneMeasure
	if freqHz > 0 {
		periods := max(1, math.Round(toneMeasure*freqHz/fs))
		n = int(math.Round(periods * fs / freqHz))
	}

	settle := toneSettle
	if f.tf != nil {
		settle += len(f.tf.B)
	}

	w := 2 * math.Pi * freqHz / fs

	x := make([]float64, settle+n)
	for i := range x {
		x[i] = math.Cos(w * float64(i))
	}

	y, err := g.Filter(x)
	if err != nil {
		return 0, err
	}

	return spectrum.ToneGainDB(x[settle:], y[settle:], freqHz, fs)
}

// fresh returns a Filter with the same coefficients and configuration and
// cleared state.
func (f *Filter) fresh() (*Filter, error) {
	g := &Filter{cfg: f.cfg, zpk: f.zpk}

	var err error
	if f.cascade != nil {
		err = g.fromCascade(f.cascade)
	} else {
		err = g.fromTransferFunction(*f.tf)
	}

	if err != nil {
		return nil, err
	}

	return g, nil
}
