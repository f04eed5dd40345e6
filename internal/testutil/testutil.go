// Package testutil provides shared assertions and deterministic signals for
// filter design and analysis tests.
package testutil

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	require.Len(t, got, len(want), "length mismatch")

	for i := range got {
		require.InDeltaf(t, want[i], got[i], eps, "index %d", i)
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		require.Falsef(t, math.IsNaN(v) || math.IsInf(v, 0), "index %d: non-finite value %v", i, v)
	}
}

// AssertSymmetric verifies that s[i] == s[n-1-i] within tolerance.
func AssertSymmetric(t *testing.T, s []float64, tolerance float64) bool {
	t.Helper()

	n := len(s)
	for i := range n / 2 {
		j := n - 1 - i
		if !assert.InDeltaf(t, s[i], s[j], tolerance, "not symmetric at %d/%d", i, j) {
			return false
		}
	}

	return true
}

// MaxAbsDiff returns the maximum absolute difference between two
// equal-length slices.
func MaxAbsDiff(a, b []float64) float64 {
	maxDiff := 0.0
	for i := range min(len(a), len(b)) {
		if d := math.Abs(a[i] - b[i]); d > maxDiff {
			maxDiff = d
		}
	}

	return maxDiff
}

// Span returns max(s) - min(s) over the finite entries of s.
func Span(s []float64) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}

		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	if hi < lo {
		return 0
	}

	return hi - lo
}

// Sine generates a deterministic sine wave.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// Noise generates white noise with a fixed seed for reproducibility.
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// RMS returns the root-mean-square of s, or 0 for an empty slice.
func RMS(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range s {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(s)))
}
