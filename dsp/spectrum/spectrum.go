package spectrum

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

// split copies the real and imaginary parts of in into pooled scratch.
func split(in []complex128) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)

	need := 2 * len(in)
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	}

	buf.data = buf.data[:need]
	re, im = buf.data[:len(in)], buf.data[len(in):]

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	return re, im, buf
}

// Magnitude returns |H| for each response sample.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := split(in)
	vecmath.Magnitude(out, re, im)
	scratchPool.Put(buf)

	return out
}

// MagnitudeDB returns 20*log10|H| for each response sample. Exact zeros
// map to -Inf.
func MagnitudeDB(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := split(in)
	vecmath.Power(out, re, im)
	scratchPool.Put(buf)

	for i, p := range out {
		if p == 0 {
			out[i] = math.Inf(-1)
			continue
		}

		out[i] = 10 * math.Log10(p)
	}

	return out
}

// Phase returns arg(H) in radians, wrapped to (-pi, pi].
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}

	return out
}

// UnwrapPhase returns a copy of phase with jumps larger than pi removed.
// NaN entries are passed through and do not disturb the running offset.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}

	out := make([]float64, len(phase))
	offset := 0.0
	prev := math.NaN()

	for i, p := range phase {
		if math.IsNaN(p) {
			out[i] = p
			continue
		}

		if !math.IsNaN(prev) {
			switch d := p - prev; {
			case d > math.Pi:
				offset -= 2 * math.Pi * math.Round(d/(2*math.Pi))
			case d < -math.Pi:
				offset += 2 * math.Pi * math.Round(-d/(2*math.Pi))
			}
		}

		out[i] = p + offset
		prev = p
	}

	return out
}
