package multirate

import (
	"context"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-filterdesign/dsp/core"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/analysis"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/iir"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/linphase"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/fir"
	"github.com/cwbudde/algo-filterdesign/dsp/spectrum"
	"github.com/cwbudde/algo-filterdesign/internal/testutil"
)

func lowpassSpec() design.Spec {
	return design.Spec{
		Band: design.Lowpass, Passband: []float64{5000}, Stopband: []float64{8000},
		RippleDB: 0.5, AttenuationDB: 60, SampleRate: 48000,
	}
}

func sampleCascade() biquad.Cascade {
	return biquad.Cascade{
		{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.6, A2: 0.25},
		{B0: 0.5, B1: 0.5, A1: -0.3},
	}
}

func TestFilter_ShortFIRImpulse(t *testing.T) {
	taps := []float64{0.25, 0.5, 0.25}

	f, err := New(design.FIR(taps))
	require.NoError(t, err)
	assert.Equal(t, RuntimeFIR, f.Runtime())

	out, err := f.Filter(testutil.Impulse(5, 0))
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, out, []float64{0.25, 0.5, 0.25, 0, 0}, 0)
}

func TestFilter_LongFIRUsesOverlapSave(t *testing.T) {
	spec := lowpassSpec()
	spec.Stopband = []float64{6000}

	d, err := linphase.Design(spec, linphase.Kaiser)
	require.NoError(t, err)
	require.Greater(t, len(d.Taps()), DirectTapLimit)

	f, err := New(d, core.WithBlockSize(50))
	require.NoError(t, err)
	assert.Equal(t, RuntimeOverlapSave, f.Runtime())
	assert.Equal(t, 50, f.BlockSize())

	x := testutil.Noise(7, 1, 777)

	got, err := f.Filter(x)
	require.NoError(t, err)

	want := make([]float64, len(x))
	fir.New(d.Taps()).ProcessBlockTo(want, x)

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-10)
}

func TestFilter_StateCarriesAcrossCalls(t *testing.T) {
	for name, rep := range map[string]analysis.Responder{
		"cascade":  sampleCascade(),
		"rational": mustRational(t, sampleCascade()),
		"fir":      design.FIR(testutil.Noise(1, 1, 100)),
	} {
		t.Run(name, func(t *testing.T) {
			x := testutil.Noise(5, 1, 300)

			f, err := New(rep, core.WithBlockSize(64))
			require.NoError(t, err)

			whole, err := f.Filter(x)
			require.NoError(t, err)

			f.Reset()

			first, err := f.Filter(x[:123])
			require.NoError(t, err)

			second, err := f.Filter(x[123:])
			require.NoError(t, err)

			testutil.RequireSliceNearlyEqual(t, append(first, second...), whole, 1e-10)
		})
	}
}

func mustRational(t *testing.T, c biquad.Cascade) design.TransferFunction {
	t.Helper()

	b, a := c.Rational()
	tf, err := design.NewTransferFunction(b, a)
	require.NoError(t, err)

	return tf
}

func TestFilter_DirectFormMatchesCascade(t *testing.T) {
	c := sampleCascade()

	fc, err := New(c)
	require.NoError(t, err)
	assert.Equal(t, RuntimeBiquad, fc.Runtime())

	fd, err := New(mustRational(t, c))
	require.NoError(t, err)
	assert.Equal(t, RuntimeDirectForm, fd.Runtime())

	x := testutil.Impulse(64, 0)

	yc, err := fc.Filter(x)
	require.NoError(t, err)

	yd, err := fd.Filter(x)
	require.NoError(t, err)

	testutil.RequireSliceNearlyEqual(t, yd, yc, 1e-12)
	testutil.RequireSliceNearlyEqual(t, yc, biquad.NewChain(c).ImpulseResponse(64), 1e-15)
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	f, err := New(sampleCascade())
	require.NoError(t, err)

	x := []float64{1, 2, 3}
	_, err = f.Filter(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, x)
}

func TestFilter_ToneLevels(t *testing.T) {
	spec := lowpassSpec()

	d, err := iir.Design(spec, iir.Elliptic)
	require.NoError(t, err)

	f, err := New(d)
	require.NoError(t, err)
	assert.Equal(t, RuntimeBiquad, f.Runtime())

	for _, tc := range []struct {
		freq float64
		check func(t *testing.T, gainDB float64)
	}{
		{1000, func(t *testing.T, g float64) { assert.InDelta(t, 0, g, spec.RippleDB+0.1) }},
		{12000, func(t *testing.T, g float64) { assert.Less(t, g, -spec.AttenuationDB+1) }},
	} {
		f.Reset()

		x := testutil.Sine(tc.freq, spec.SampleRate, 1, 4800)
		y, err := f.Filter(x)
		require.NoError(t, err)

		g, err := spectrum.ToneGainDB(x[2400:], y[2400:], tc.freq, spec.SampleRate)
		require.NoError(t, err)
		tc.check(t, g)
	}
}

func TestFilter_ToneGainDBMatchesResponse(t *testing.T) {
	spec := lowpassSpec()

	for _, m := range []linphase.Method{linphase.Kaiser, linphase.Equiripple} {
		d, err := linphase.Design(spec, m)
		require.NoError(t, err)

		f, err := New(d, core.WithSampleRate(spec.SampleRate))
		require.NoError(t, err)

		for _, freq := range []float64{0, 1000, 4000} {
			want := 20 * math.Log10(cmplx.Abs(d.Response(freq, spec.SampleRate)))

			got, err := f.ToneGainDB(freq)
			require.NoError(t, err)
			assert.InDelta(t, want, got, 0.01, "%v f=%v", m, freq)
		}

		g, err := f.ToneGainDB(12000)
		require.NoError(t, err)
		assert.Less(t, g, -spec.AttenuationDB+1)
	}

	d, err := iir.Design(spec, iir.Elliptic)
	require.NoError(t, err)

	f, err := New(d, core.WithSampleRate(spec.SampleRate))
	require.NoError(t, err)

	got, err := f.ToneGainDB(1000)
	require.NoError(t, err)
	assert.InDelta(t, 20*math.Log10(cmplx.Abs(d.Response(1000, spec.SampleRate))), got, 0.01)

	_, err = f.ToneGainDB(30000)
	require.ErrorIs(t, err, design.ErrInvalidSpec)
}

func TestFilter_ToneGainDBKeepsState(t *testing.T) {
	x := testutil.Noise(9, 1, 400)

	whole, err := New(sampleCascade())
	require.NoError(t, err)

	want, err := whole.Filter(x)
	require.NoError(t, err)

	split, err := New(sampleCascade())
	require.NoError(t, err)

	first, err := split.Filter(x[:150])
	require.NoError(t, err)

	_, err = split.ToneGainDB(2000)
	require.NoError(t, err)

	second, err := split.Filter(x[150:])
	require.NoError(t, err)

	testutil.RequireSliceNearlyEqual(t, append(first, second...), want, 0)
}

func TestFilter_FrequencyResponseAndPoleZero(t *testing.T) {
	spec := lowpassSpec()

	d, err := iir.Design(spec, iir.Chebyshev2)
	require.NoError(t, err)

	f, err := New(d, core.WithSampleRate(spec.SampleRate))
	require.NoError(t, err)

	c, err := f.FrequencyResponse(context.Background(), analysis.MagnitudeDB, 0, analysis.WithPoints(32))
	require.NoError(t, err)
	assert.Equal(t, "biquad", c.Label)
	assert.Equal(t, analysis.MagnitudeDB, c.Mode)
	require.Len(t, c.Points, 32)
	assert.InDelta(t, spec.SampleRate/2, c.Points[31].FreqHz, 1e-9)

	for _, p := range c.Points {
		assert.InDelta(t, 0, cmplx.Abs(p.Response-d.Response(p.FreqHz, spec.SampleRate)), 1e-9)
	}

	set, err := f.PoleZero()
	require.NoError(t, err)
	assert.Equal(t, d.Order, set.NumPoles())
	assert.InDelta(t, d.ZPK.Gain, set.Gain, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = f.FrequencyResponse(ctx, analysis.Phase, 0)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFilter_PoleZeroWithoutFactoredForm(t *testing.T) {
	f, err := New(sampleCascade())
	require.NoError(t, err)

	set, err := f.PoleZero()
	require.NoError(t, err)
	assert.Equal(t, 3, set.NumPoles())

	g, err := New(design.FIR([]float64{1, 1}))
	require.NoError(t, err)

	set, err = g.PoleZero()
	require.NoError(t, err)
	assert.Equal(t, 1, set.NumZeros())
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, design.ErrInvalidSpec)

	_, err = New((*design.Design)(nil))
	require.ErrorIs(t, err, design.ErrInvalidSpec)

	_, err = New(fir.New([]float64{1}))
	require.ErrorIs(t, err, design.ErrInvalidSpec)

	_, err = New(design.TransferFunction{B: []float64{1}, A: []float64{0.5}})
	require.ErrorIs(t, err, design.ErrInvalidSpec)

	_, err = New(biquad.Cascade{})
	require.ErrorIs(t, err, design.ErrInvalidSpec)

	assert.Equal(t, "Runtime(9)", Runtime(9).String())
}
