package analysis

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/internal/zpoly"
)

// fftPoints evaluates tf at points uniformly spaced frequencies from DC to
// Nyquist using zero-padded FFTs of the numerator and denominator and of
// their index-weighted ramps. ok is false when the polynomials are longer
// than the transform.
func fftPoints(tf design.TransferFunction, fs float64, points int) ([]Point, bool) {
	n := 2 * (points - 1)
	if len(tf.B) > n || len(tf.A) > n {
		return nil, false
	}

	fft := fourier.NewFFT(n)

	b, rb, sb := polySpectrum(fft, tf.B, n)
	a, ra, sa := polySpectrum(fft, tf.A, n)

	out := make([]Point, points)
	for k := range out {
		p := Point{
			FreqHz:   float64(k) * fs / float64(n),
			Response: b[k] / a[k],
		}

		if cmplx.Abs(b[k]) <= zpoly.SingularTol*sb || cmplx.Abs(a[k]) <= zpoly.SingularTol*sa {
			p.GroupDelay = math.NaN()
			p.Singular = true
		} else {
			p.GroupDelay = real(rb[k]/b[k]) - real(ra[k]/a[k])
		}

		out[k] = p
	}

	return out, true
}

// polySpectrum returns the spectra of c and of n*c[n], and sum |c[n]|.
func polySpectrum(fft *fourier.FFT, c []float64, n int) ([]complex128, []complex128, float64) {
	seq := make([]float64, n)
	ramp := make([]float64, n)
	scale := 0.0

	for i, v := range c {
		seq[i] = v
		ramp[i] = float64(i) * v
		scale += math.Abs(v)
	}

	return fft.Coefficients(nil, seq), fft.Coefficients(nil, ramp), scale
}
