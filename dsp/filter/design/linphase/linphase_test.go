package linphase

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-filterdesign/dsp/core"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/internal/testutil"
)

func kaiserLowpass() design.Spec {
	return design.Spec{
		Band:          design.Lowpass,
		Passband:      []float64{0.125},
		Stopband:      []float64{0.1667},
		RippleDB:      0.1,
		AttenuationDB: 50,
		SampleRate:    1,
	}
}

func equirippleSpecs() map[string]design.Spec {
	return map[string]design.Spec{
		"lowpass": {
			Band: design.Lowpass, Passband: []float64{8000}, Stopband: []float64{10000},
			RippleDB: 1, AttenuationDB: 60, SampleRate: 48000,
		},
		"highpass": {
			Band: design.Highpass, Passband: []float64{10000}, Stopband: []float64{8000},
			RippleDB: 1, AttenuationDB: 50, SampleRate: 48000,
		},
		"bandpass": {
			Band: design.Bandpass, Passband: []float64{6000, 14000}, Stopband: []float64{4000, 16000},
			RippleDB: 1, AttenuationDB: 50, SampleRate: 48000,
		},
		"bandstop": {
			Band: design.Bandstop, Passband: []float64{4000, 16000}, Stopband: []float64{6000, 14000},
			RippleDB: 1, AttenuationDB: 40, SampleRate: 48000,
		},
	}
}

func TestDesign_KaiserLowpass(t *testing.T) {
	spec := kaiserLowpass()

	d, err := Design(spec, Kaiser)
	require.NoError(t, err)

	taps := d.Taps()
	assert.Equal(t, 1, len(taps)%2, "kaiser length is odd")
	assert.Equal(t, len(taps)-1, d.Order)
	assert.Equal(t, "kaiser", d.Method)
	assert.True(t, d.IsFIR())
	assert.Equal(t, []float64{1}, d.Coefficients.A)
	testutil.AssertSymmetric(t, taps, 0)

	edge := 20 * math.Log10(cmplx.Abs(d.Response(0.1667, 1)))
	assert.LessOrEqual(t, edge, -50+design.MeetSlackDB)
	assert.True(t, d.Meets(), "achieved %+v", d.Achieved)
	assert.Empty(t, d.Warnings)

	dc := cmplx.Abs(d.Response(0, 1))
	assert.InDelta(t, 1, dc, 1e-12)
}

func TestDesign_KaiserAllBands(t *testing.T) {
	for name, spec := range equirippleSpecs() {
		t.Run(name, func(t *testing.T) {
			d, err := Design(spec, Kaiser)
			require.NoError(t, err)
			assert.True(t, d.Meets(), "achieved %+v", d.Achieved)
			testutil.AssertSymmetric(t, d.Taps(), 0)

			if needsOdd(spec.Band) {
				assert.Equal(t, 1, len(d.Taps())%2)
			}
		})
	}
}

func TestDesign_EquirippleAllBands(t *testing.T) {
	for name, spec := range equirippleSpecs() {
		t.Run(name, func(t *testing.T) {
			d, err := Design(spec, Equiripple)
			require.NoError(t, err)

			assert.Equal(t, "equiripple", d.Method)
			assert.True(t, d.Meets(), "achieved %+v", d.Achieved)
			assert.Empty(t, d.Warnings)
			testutil.AssertSymmetric(t, d.Taps(), 0)

			if needsOdd(spec.Band) {
				assert.Equal(t, 1, len(d.Taps())%2)
			}
		})
	}
}

func TestDesign_EquirippleShorterThanKaiser(t *testing.T) {
	spec := equirippleSpecs()["lowpass"]

	k, err := Design(spec, Kaiser)
	require.NoError(t, err)

	e, err := Design(spec, Equiripple)
	require.NoError(t, err)

	assert.Less(t, e.Order, k.Order)
}

func TestDesign_ConstantGroupDelay(t *testing.T) {
	for _, m := range []Method{Kaiser, Equiripple} {
		t.Run(m.String(), func(t *testing.T) {
			spec := equirippleSpecs()["lowpass"]

			d, err := Design(spec, m)
			require.NoError(t, err)

			want := float64(d.Order) / 2
			for _, f := range []float64{0, 1000, 4000, 7500} {
				gd, singular := d.GroupDelay(f, spec.SampleRate)
				require.False(t, singular, "f=%v", f)
				assert.InDelta(t, want, gd, 1e-6, "f=%v", f)
			}
		})
	}
}

func TestDesign_Bump(t *testing.T) {
	spec := kaiserLowpass()

	base, err := Design(spec, Kaiser)
	require.NoError(t, err)

	// Kaiser attenuation is not monotonic in length at a fixed beta, so a
	// longer filter may still miss; the warning must track the measurement.
	for _, bump := range []int{4, 6, 10} {
		longer, err := Design(spec, Kaiser, WithBump(bump))
		require.NoError(t, err)
		assert.Equal(t, base.Order+bump, longer.Order, "bump %d", bump)
		assert.Equal(t, !longer.Meets(), longer.HasWarning(design.WarnTargetMissed), "bump %d: %+v", bump, longer.Achieved)
		testutil.AssertSymmetric(t, longer.Taps(), 0)
	}

	shorter, err := Design(spec, Kaiser, WithBump(-20))
	require.NoError(t, err)
	assert.Equal(t, base.Order-20, shorter.Order)
	assert.True(t, shorter.HasWarning(design.WarnTargetMissed))

	tiny, err := Design(spec, Kaiser, WithBump(-10000))
	require.NoError(t, err)
	assert.Len(t, tiny.Taps(), 3)
	assert.True(t, tiny.HasWarning(design.WarnTargetMissed))
}

func TestDesign_BumpKeepsOddLength(t *testing.T) {
	spec := equirippleSpecs()["highpass"]

	base, err := Design(spec, Equiripple)
	require.NoError(t, err)

	d, err := Design(spec, Equiripple, WithBump(1))
	require.NoError(t, err)
	assert.Equal(t, 1, len(d.Taps())%2)
	assert.Equal(t, base.Order+2, d.Order)
}

func TestDesign_InvalidSpec(t *testing.T) {
	spec := kaiserLowpass()
	spec.Stopband = []float64{0.1}

	_, err := Design(spec, Kaiser)
	require.ErrorIs(t, err, design.ErrInvalidSpec)

	_, err = Design(kaiserLowpass(), Method(9))
	require.ErrorIs(t, err, design.ErrInvalidSpec)
}

func TestDesign_DoesNotAliasSpec(t *testing.T) {
	spec := kaiserLowpass()

	d, err := Design(spec, Kaiser)
	require.NoError(t, err)

	spec.Passband[0] = 0.2
	assert.InDelta(t, 0.125, d.Spec.Passband[0], 0)
}

func TestWindowedSinc_ExactlySymmetric(t *testing.T) {
	cases := []struct {
		taps    int
		band    design.BandType
		cutoffs []float64
		beta    float64
	}{
		{71, design.Lowpass, []float64{0.1458}, 4.55},
		{70, design.Lowpass, []float64{0.2}, 6},
		{61, design.Highpass, []float64{0.3}, 5.65},
		{80, design.Bandpass, []float64{0.1, 0.3}, 3.4},
		{95, design.Bandstop, []float64{0.12, 0.37}, 8.9},
	}

	for _, c := range cases {
		h, err := WindowedSinc(c.taps, c.band, c.cutoffs, 1, c.beta)
		require.NoError(t, err)
		testutil.AssertSymmetric(t, h, 0)
	}
}

func TestWindowedSinc(t *testing.T) {
	h, err := WindowedSinc(51, design.Lowpass, []float64{1000}, 8000, 5)
	require.NoError(t, err)
	require.Len(t, h, 51)
	testutil.AssertSymmetric(t, h, 1e-15)

	tf := design.FIR(h)
	assert.InDelta(t, 1, cmplx.Abs(tf.Response(0, 8000)), 1e-12)
	assert.Less(t, cmplx.Abs(tf.Response(3000, 8000)), 5e-3)

	hp, err := WindowedSinc(51, design.Highpass, []float64{1000}, 8000, 5)
	require.NoError(t, err)
	hpf := design.FIR(hp)
	assert.InDelta(t, 1, cmplx.Abs(hpf.Response(4000, 8000)), 1e-12)
	assert.Less(t, cmplx.Abs(hpf.Response(0, 8000)), 5e-3)

	bp, err := WindowedSinc(101, design.Bandpass, []float64{1000, 2000}, 8000, 5)
	require.NoError(t, err)
	assert.InDelta(t, 1, cmplx.Abs(design.FIR(bp).Response(1500, 8000)), 1e-12)

	bs, err := WindowedSinc(101, design.Bandstop, []float64{1000, 2000}, 8000, 5)
	require.NoError(t, err)
	assert.Less(t, cmplx.Abs(design.FIR(bs).Response(1500, 8000)), 1e-2)
}

func TestWindowedSinc_Errors(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		band    design.BandType
		cutoffs []float64
		fs      float64
	}{
		{"no taps", 0, design.Lowpass, []float64{100}, 1000},
		{"bad rate", 11, design.Lowpass, []float64{100}, 0},
		{"cutoff count", 11, design.Bandpass, []float64{100}, 1000},
		{"even highpass", 10, design.Highpass, []float64{100}, 1000},
		{"even bandstop", 10, design.Bandstop, []float64{100, 200}, 1000},
		{"above nyquist", 11, design.Lowpass, []float64{600}, 1000},
		{"reversed", 11, design.Bandpass, []float64{200, 100}, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WindowedSinc(tt.n, tt.band, tt.cutoffs, tt.fs, 4)
			require.ErrorIs(t, err, design.ErrInvalidSpec)
		})
	}
}

func TestParseMethod(t *testing.T) {
	for in, want := range map[string]Method{
		"kaiser": Kaiser, "Window": Kaiser, "equiripple": Equiripple, " remez ": Equiripple, "pm": Equiripple,
	} {
		got, err := ParseMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMethod("least-squares")
	require.ErrorIs(t, err, design.ErrInvalidSpec)
	assert.Equal(t, "Method(7)", Method(7).String())
}

func TestKaiserParams_RippleDominates(t *testing.T) {
	spec := kaiserLowpass()
	spec.RippleDB = 0.001
	spec.AttenuationDB = 20

	atten, _, _, err := kaiserParams(spec)
	require.NoError(t, err)
	assert.InDelta(t, -core.LinearToDB(core.PassbandDeviation(0.001)), atten, 1e-9)
}
