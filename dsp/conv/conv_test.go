package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-filterdesign/internal/testutil"
)

func TestDirect(t *testing.T) {
	got, err := Direct([]float64{1, 2, 1}, []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 3, 1}, got)

	_, err = Direct(nil, []float64{1})
	require.ErrorIs(t, err, ErrEmptyKernel)
}

func TestStreamingOverlapSave_MatchesDirect(t *testing.T) {
	kernel := testutil.Noise(1, 1, 97)
	signal := testutil.Noise(2, 1, 1000)

	want, err := Direct(signal, kernel)
	require.NoError(t, err)

	for _, blocks := range [][]int{{64}, {1, 17, 64, 5, 40}, {30}} {
		s, err := NewStreamingOverlapSave(kernel, 64)
		require.NoError(t, err)

		got := make([]float64, 0, len(signal))
		pos, k := 0, 0

		for pos < len(signal) {
			n := min(blocks[k%len(blocks)], len(signal)-pos)
			out := make([]float64, n)
			require.NoError(t, s.ProcessBlockTo(out, signal[pos:pos+n]))

			got = append(got, out...)
			pos += n
			k++
		}

		testutil.RequireSliceNearlyEqual(t, got, want[:len(signal)], 1e-10)
	}
}

func TestStreamingOverlapSave_ResetAndLimits(t *testing.T) {
	s, err := NewStreamingOverlapSave([]float64{0, 1}, 8)
	require.NoError(t, err)
	assert.Equal(t, 2, s.KernelLen())
	assert.Equal(t, 8, s.MaxBlock())
	assert.Equal(t, 16, s.FFTSize())

	out := make([]float64, 3)
	require.NoError(t, s.ProcessBlockTo(out, []float64{1, 2, 3}))
	testutil.RequireSliceNearlyEqual(t, out, []float64{0, 1, 2}, 1e-12)

	s.Reset()
	require.NoError(t, s.ProcessBlockTo(out, []float64{4, 5, 6}))
	testutil.RequireSliceNearlyEqual(t, out, []float64{0, 4, 5}, 1e-12)

	require.ErrorIs(t, s.ProcessBlockTo(make([]float64, 9), make([]float64, 9)), ErrInvalidBlockSize)
	require.ErrorIs(t, s.ProcessBlockTo(make([]float64, 2), make([]float64, 3)), ErrLengthMismatch)

	_, err = NewStreamingOverlapSave(nil, 8)
	require.ErrorIs(t, err, ErrEmptyKernel)

	_, err = NewStreamingOverlapSave([]float64{1}, 0)
	require.ErrorIs(t, err, ErrInvalidBlockSize)
}
