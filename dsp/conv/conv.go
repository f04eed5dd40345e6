package conv

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

var (
	ErrEmptyKernel      = errors.New("conv: empty kernel")
	ErrLengthMismatch   = errors.New("conv: buffer length mismatch")
	ErrInvalidBlockSize = errors.New("conv: invalid block size")
)

// Direct returns the full linear convolution of a and b.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	out := make([]float64, len(a)+len(b)-1)
	for i, x := range a {
		for j, y := range b {
			out[i+j] += x * y
		}
	}

	return out, nil
}

// StreamingOverlapSave convolves a stream with a fixed kernel using
// overlap-save. Blocks may have any length up to the maximum given at
// construction.
type StreamingOverlapSave struct {
	kernelLen int
	maxBlock  int
	fftSize   int

	fft       *fourier.FFT
	kernelFFT []complex128

	frame   []float64
	spec    []complex128
	history []float64 // last kernelLen-1 input samples
}

// NewStreamingOverlapSave prepares the kernel spectrum for blocks of at
// most maxBlock samples.
func NewStreamingOverlapSave(kernel []float64, maxBlock int) (*StreamingOverlapSave, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	if maxBlock <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, maxBlock)
	}

	n := nextPowerOf2(maxBlock + len(kernel) - 1)
	fft := fourier.NewFFT(n)

	padded := make([]float64, n)
	copy(padded, kernel)

	return &StreamingOverlapSave{
		kernelLen: len(kernel),
		maxBlock:  maxBlock,
		fftSize:   n,
		fft:       fft,
		kernelFFT: fft.Coefficients(nil, padded),
		frame:     make([]float64, n),
		spec:      make([]complex128, n/2+1),
		history:   make([]float64, len(kernel)-1),
	}, nil
}

// ProcessBlockTo writes the convolution output for src into dst. Both
// must have the same length, at most the configured maximum block.
func (s *StreamingOverlapSave) ProcessBlockTo(dst, src []float64) error {
	l := len(src)
	if len(dst) != l {
		return fmt.Errorf("%w: dst %d, src %d", ErrLengthMismatch, len(dst), l)
	}

	if l > s.maxBlock {
		return fmt.Errorf("%w: block of %d exceeds %d", ErrInvalidBlockSize, l, s.maxBlock)
	}

	if l == 0 {
		return nil
	}

	h := s.kernelLen - 1

	clear(s.frame)
	copy(s.frame, s.history)
	copy(s.frame[h:], src)

	s.fft.Coefficients(s.spec, s.frame)

	for i := range s.spec {
		s.spec[i] *= s.kernelFFT[i]
	}

	s.fft.Sequence(s.frame, s.spec)

	scale := 1 / float64(s.fftSize)
	for i := range dst {
		dst[i] = s.frame[h+i] * scale
	}

	if h == 0 {
		return nil
	}

	// The new history is the tail of [history, src].
	if l >= h {
		copy(s.history, src[l-h:])
	} else {
		copy(s.history, s.history[l:])
		copy(s.history[h-l:], src)
	}

	return nil
}

// Reset clears the overlap state.
func (s *StreamingOverlapSave) Reset() {
	clear(s.history)
}

// KernelLen returns the kernel length.
func (s *StreamingOverlapSave) KernelLen() int { return s.kernelLen }

// MaxBlock returns the largest accepted block.
func (s *StreamingOverlapSave) MaxBlock() int { return s.maxBlock }

// FFTSize returns the transform length.
func (s *StreamingOverlapSave) FFTSize() int { return s.fftSize }

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
