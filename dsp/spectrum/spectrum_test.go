package spectrum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-filterdesign/internal/testutil"
)

func TestMagnitudeAndDB(t *testing.T) {
	h := []complex128{3 + 4i, -1 - 1i, 0, 0.1}

	mag := Magnitude(h)
	require.Len(t, mag, len(h))
	assert.InDelta(t, 5, mag[0], 1e-12)
	assert.InDelta(t, math.Sqrt2, mag[1], 1e-12)

	db := MagnitudeDB(h)
	assert.InDelta(t, 20*math.Log10(5), db[0], 1e-12)
	assert.True(t, math.IsInf(db[2], -1))
	assert.InDelta(t, -20, db[3], 1e-12)

	assert.Nil(t, Magnitude(nil))
	assert.Nil(t, MagnitudeDB(nil))
}

func TestPhase(t *testing.T) {
	p := Phase([]complex128{1i, -1, 1})
	assert.InDelta(t, math.Pi/2, p[0], 1e-15)
	assert.InDelta(t, math.Pi, p[1], 1e-15)
	assert.Zero(t, p[2])
}

func TestUnwrapPhase_LinearRamp(t *testing.T) {
	// A pure delay of 7.5 samples wraps many times over [0, pi].
	n := 200
	wrapped := make([]float64, n)
	want := make([]float64, n)

	for i := range wrapped {
		w := math.Pi * float64(i) / float64(n-1)
		want[i] = -7.5 * w
		wrapped[i] = math.Atan2(math.Sin(want[i]), math.Cos(want[i]))
	}

	testutil.RequireSliceNearlyEqual(t, UnwrapPhase(wrapped), want, 1e-9)
}

func TestUnwrapPhase_SkipsNaN(t *testing.T) {
	out := UnwrapPhase([]float64{2.8, math.NaN(), -2.7})
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 2*math.Pi-2.7, out[2], 1e-12)
}

func TestGoertzel_MatchesDFTBin(t *testing.T) {
	fs := 8000.0
	x := testutil.Sine(1000, fs, 1, 800)

	g, err := NewGoertzel(1000, fs)
	require.NoError(t, err)
	g.ProcessBlock(x)

	// |X[k]| = A*N/2 for a bin-centred sine.
	assert.InEpsilon(t, 400*400, g.Power(), 1e-6)

	g.Reset()
	assert.Zero(t, g.Power())
}

func TestToneGainDB(t *testing.T) {
	fs := 8000.0
	in := testutil.Sine(500, fs, 1, 1600)

	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = 0.1 * v
	}

	g, err := ToneGainDB(in, out, 500, fs)
	require.NoError(t, err)
	assert.InDelta(t, -20, g, 1e-9)

	_, err = ToneGainDB(in, out, 5000, fs)
	require.Error(t, err)

	_, err = ToneGainDB(make([]float64, 10), out, 500, fs)
	require.Error(t, err)
}
