package analysis

import (
	"context"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/iir"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/linphase"
	"github.com/cwbudde/algo-filterdesign/internal/testutil"
)

func sampleTF() design.TransferFunction {
	return design.TransferFunction{
		B: []float64{0.2, 0.3, 0.2, 0.05},
		A: []float64{1, -0.5, 0.3},
	}
}

func TestEvaluate_DefaultGrid(t *testing.T) {
	c, err := Evaluate(sampleTF(), 48000)
	require.NoError(t, err)

	require.Len(t, c.Points, DefaultPoints)
	assert.InDelta(t, 0, c.Points[0].FreqHz, 0)
	assert.InDelta(t, 24000, c.Points[DefaultPoints-1].FreqHz, 1e-9)
	assert.Equal(t, MagnitudeDB, c.Mode)
	assert.Empty(t, c.Warnings)
}

func TestEvaluate_FFTPathMatchesDirect(t *testing.T) {
	tf := sampleTF()
	fs := 1000.0

	fast, err := Evaluate(tf, fs, WithPoints(65))
	require.NoError(t, err)

	for _, p := range fast.Points {
		want := tf.Response(p.FreqHz, fs)
		assert.InDelta(t, 0, cmplx.Abs(p.Response-want), 1e-12, "f=%v", p.FreqHz)

		gd, singular := tf.GroupDelay(p.FreqHz, fs)
		require.False(t, singular)
		assert.InDelta(t, gd, p.GroupDelay, 1e-9, "f=%v", p.FreqHz)
	}
}

func TestEvaluate_NyquistZeroFlagged(t *testing.T) {
	// 0.2 - 0.3 + 0.2 - 0.1 = 0 at z = -1.
	tf := design.TransferFunction{B: []float64{0.2, 0.3, 0.2, 0.1}, A: []float64{1, -0.5, 0.3}}

	c, err := Evaluate(tf, 1000, WithPoints(65))
	require.NoError(t, err)

	want := make([]bool, 65)
	want[64] = true
	assert.Equal(t, want, c.Singular())

	_, singular := tf.GroupDelay(500, 1000)
	assert.True(t, singular)

	require.Len(t, c.Warnings, 1)
	assert.Equal(t, design.WarnNumericalInstability, c.Warnings[0].Kind)
}

func TestEvaluate_LongFIRFallsBackToDirect(t *testing.T) {
	taps := testutil.Noise(3, 1, 40)
	tf := design.FIR(taps)

	c, err := Evaluate(tf, 2, WithPoints(8))
	require.NoError(t, err)
	require.Len(t, c.Points, 8)

	for _, p := range c.Points {
		assert.InDelta(t, 0, cmplx.Abs(p.Response-tf.Response(p.FreqHz, 2)), 1e-12)
	}
}

func TestEvaluate_Range(t *testing.T) {
	c, err := Evaluate(sampleTF(), 8000, WithRange(100, 1000), WithPoints(10), WithLabel("x"), WithMode(Phase))
	require.NoError(t, err)

	f := c.Freqs()
	require.Len(t, f, 10)
	assert.InDelta(t, 100, f[0], 0)
	assert.InDelta(t, 1000, f[9], 1e-9)
	assert.InDelta(t, 100, f[1]-f[0], 1e-9)
	assert.Equal(t, "x", c.Label)
	assert.Equal(t, Phase, c.Mode)
}

func TestEvaluate_SingularPointsFlagged(t *testing.T) {
	notch := biquad.Cascade{{B0: 1, B1: 0, B2: 1, A1: 0, A2: 0.5}}
	tf := design.TransferFunction{B: []float64{1, 0, 1}, A: []float64{1, 0, 0.5}}

	for name, r := range map[string]Responder{"cascade": notch, "rational": tf} {
		t.Run(name, func(t *testing.T) {
			c, err := Evaluate(r, 8, WithPoints(5))
			require.NoError(t, err)

			require.True(t, c.HasSingular())
			assert.True(t, c.Points[2].Singular)
			assert.True(t, math.IsNaN(c.Values(GroupDelaySamples)[2]))
			assert.Equal(t, []bool{false, false, true, false, false}, c.Singular())

			require.Len(t, c.Warnings, 1)
			assert.Equal(t, design.WarnNumericalInstability, c.Warnings[0].Kind)
		})
	}
}

func TestCurve_Values(t *testing.T) {
	// Pure three-sample delay.
	tf := design.TransferFunction{B: []float64{0, 0, 0, 1}, A: []float64{1}}
	fs := 100.0

	c, err := Evaluate(tf, fs, WithPoints(33))
	require.NoError(t, err)

	mag := c.Values(MagnitudeLinear)
	db := c.Values(MagnitudeDB)
	phase := c.Values(Phase)
	gd := c.Values(GroupDelaySamples)
	gds := c.Values(GroupDelaySeconds)

	for i, p := range c.Points {
		w := 2 * math.Pi * p.FreqHz / fs
		assert.InDelta(t, 1, mag[i], 1e-12)
		assert.InDelta(t, 0, db[i], 1e-10)
		assert.InDelta(t, -3*w, phase[i], 1e-9)
		assert.InDelta(t, 3, gd[i], 1e-9)
		assert.InDelta(t, 3/fs, gds[i], 1e-11)
	}

	assert.Nil(t, c.Values(Mode(42)))
	assert.InDelta(t, 0, c.GroupDelayVariation(0, fs/2), 1e-9)
	assert.True(t, math.IsNaN(c.GroupDelayVariation(200, 300)))
}

func TestCurve_CloneIsDeep(t *testing.T) {
	c, err := Evaluate(sampleTF(), 1000, WithPoints(4))
	require.NoError(t, err)

	cp := c.Clone()
	cp.Points[0].FreqHz = 99
	assert.InDelta(t, 0, c.Points[0].FreqHz, 0)
}

func TestEvaluate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		r    Responder
		fs   float64
		opts []Option
	}{
		{"nil", nil, 1000, nil},
		{"rate", sampleTF(), 0, nil},
		{"points", sampleTF(), 1000, []Option{WithPoints(1)}},
		{"reversed range", sampleTF(), 1000, []Option{WithRange(300, 200)}},
		{"above nyquist", sampleTF(), 1000, []Option{WithRange(0, 600)}},
		{"negative", sampleTF(), 1000, []Option{WithRange(-1, 100)}},
		{"mode", sampleTF(), 1000, []Option{WithMode(Mode(-1))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.r, tt.fs, tt.opts...)
			require.ErrorIs(t, err, design.ErrInvalidSpec)
		})
	}
}

func TestEvaluate_DoesNotMutateInput(t *testing.T) {
	tf := sampleTF()
	b := append([]float64(nil), tf.B...)

	_, err := Evaluate(tf, 1000)
	require.NoError(t, err)
	assert.Equal(t, b, tf.B)
}

func TestCompare(t *testing.T) {
	spec := design.Spec{
		Band: design.Lowpass, Passband: []float64{5000}, Stopband: []float64{8000},
		RippleDB: 0.5, AttenuationDB: 60, SampleRate: 48000,
	}

	ds, err := iir.CompareFamilies(context.Background(), spec)
	require.NoError(t, err)

	rs := make([]Responder, len(ds))
	for i, d := range ds {
		rs[i] = d
	}

	curves, err := Compare(context.Background(), spec.SampleRate, rs, WithPoints(64))
	require.NoError(t, err)
	require.Len(t, curves, len(ds))

	for i, c := range curves {
		assert.Equal(t, iir.Families[i].String(), c.Label)
		assert.Len(t, c.Points, 64)
		assert.InDelta(t, 0, cmplx.Abs(c.Points[10].Response-ds[i].Response(c.Points[10].FreqHz, spec.SampleRate)), 1e-12)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Compare(ctx, spec.SampleRate, rs)
	require.ErrorIs(t, err, context.Canceled)

	_, err = Compare(context.Background(), spec.SampleRate, []Responder{sampleTF(), nil})
	require.ErrorIs(t, err, design.ErrInvalidSpec)
}

// A linear-phase FIR keeps a flat group delay across a narrow bandpass
// where an elliptic design of the same spec swings widely.
func TestBandpassGroupDelay_FIRFlatEllipticNot(t *testing.T) {
	spec := design.Spec{
		Band:          design.Bandpass,
		Passband:      []float64{24000, 28000},
		Stopband:      []float64{23000, 29000},
		RippleDB:      0.5,
		AttenuationDB: 70,
		SampleRate:    96000,
	}

	fir, err := linphase.Design(spec, linphase.Kaiser)
	require.NoError(t, err)
	require.True(t, fir.Meets())

	ell, err := iir.Design(spec, iir.Elliptic)
	require.NoError(t, err)

	opts := []Option{WithRange(24000, 28000), WithPoints(201), WithMode(GroupDelaySamples)}

	fc, err := Evaluate(fir, spec.SampleRate, opts...)
	require.NoError(t, err)

	ec, err := Evaluate(ell, spec.SampleRate, opts...)
	require.NoError(t, err)

	firVar := fc.GroupDelayVariation(24000, 28000)
	ellVar := ec.GroupDelayVariation(24000, 28000)

	assert.Less(t, firVar, 1e-6)
	assert.Greater(t, ellVar, 10*firVar)
	assert.Greater(t, ellVar, 1.0)
}
