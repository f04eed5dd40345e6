package analysis

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

// Responder is anything whose frequency response and group delay can be
// sampled: design.TransferFunction, biquad.Cascade and *design.Design all
// qualify.
type Responder interface {
	Response(freqHz, sampleRate float64) complex128
	GroupDelay(freqHz, sampleRate float64) (float64, bool)
}

// Evaluate samples r on a uniform grid.
//
// Cascades are evaluated as the product of their sections. Rational forms
// over the full band take an FFT path. Points where the response has a
// zero or pole on the unit circle are flagged Singular and the curve
// carries a WarnNumericalInstability warning.
func Evaluate(r Responder, sampleRate float64, opts ...Option) (*Curve, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	return evaluate(r, sampleRate, cfg)
}

func evaluate(r Responder, fs float64, cfg config) (*Curve, error) {
	if r == nil {
		return nil, design.InvalidSpecf("nil responder")
	}

	if !(fs > 0) || math.IsInf(fs, 0) {
		return nil, design.InvalidSpecf("sample rate must be positive and finite, got %v", fs)
	}

	if cfg.points < 2 {
		return nil, design.InvalidSpecf("need at least 2 points, got %d", cfg.points)
	}

	lo, hi := 0.0, fs/2
	if cfg.ranged {
		lo, hi = cfg.fmin, cfg.fmax
	}

	if !(lo >= 0 && lo < hi && hi <= fs/2) {
		return nil, design.InvalidSpecf("range [%v, %v] Hz outside [0, %v]", lo, hi, fs/2)
	}

	if cfg.mode < MagnitudeDB || cfg.mode > GroupDelaySeconds {
		return nil, design.InvalidSpecf("unsupported mode %v", cfg.mode)
	}

	c := &Curve{
		Label:      cfg.label,
		SampleRate: fs,
		Mode:       cfg.mode,
	}

	if cfg.label == "" {
		if d, ok := r.(*design.Design); ok {
			c.Label = d.Method
		}
	}

	if tf, ok := rational(r); ok && lo == 0 && hi == fs/2 {
		if pts, ok := fftPoints(tf, fs, cfg.points); ok {
			c.Points = pts
		}
	}

	if c.Points == nil {
		grid := floats.Span(make([]float64, cfg.points), lo, hi)
		c.Points = make([]Point, len(grid))

		for i, f := range grid {
			gd, singular := r.GroupDelay(f, fs)
			c.Points[i] = Point{FreqHz: f, Response: r.Response(f, fs), GroupDelay: gd, Singular: singular}
		}
	}

	singular := 0
	for _, p := range c.Points {
		if p.Singular {
			singular++
		}
	}

	if singular > 0 {
		c.Warnings = append(c.Warnings, design.Warnf(design.WarnNumericalInstability,
			"%d of %d points lie on a unit-circle zero or pole", singular, len(c.Points)))
	}

	return c, nil
}

// rational returns the single-polynomial form of r, if that is how r is
// evaluated.
func rational(r Responder) (design.TransferFunction, bool) {
	switch v := r.(type) {
	case design.TransferFunction:
		return v, true
	case *design.TransferFunction:
		return *v, v != nil
	case *design.Design:
		if v != nil && len(v.Sections) == 0 {
			return v.Coefficients, true
		}
	}

	return design.TransferFunction{}, false
}

// Compare evaluates every responder on the same grid concurrently. Results
// are in input order. A curve without a label is named after its design
// method when it has one.
func Compare(ctx context.Context, sampleRate float64, rs []Responder, opts ...Option) ([]*Curve, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	out := make([]*Curve, len(rs))

	g, ctx := errgroup.WithContext(ctx)
	for i, r := range rs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			c, err := evaluate(r, sampleRate, cfg)
			if err != nil {
				return err
			}

			out[i] = c

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
