package linphase

import (
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

// Design returns a linear-phase FIR filter meeting spec.
//
// The tap count is the smallest the chosen method reaches from its
// empirical estimate. WithBump then shifts it; a bumped filter that misses
// the targets carries a WarnTargetMissed warning rather than an error.
func Design(spec design.Spec, method Method, opts ...Option) (*design.Design, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	var (
		taps []float64
		err  error
		tap  func(n int) ([]float64, error)
	)

	switch method {
	case Kaiser:
		_, _, beta, perr := kaiserParams(spec)
		if perr != nil {
			return nil, perr
		}

		tap = func(n int) ([]float64, error) { return kaiserTaps(spec, n, beta) }
		taps, err = designKaiser(spec)
	case Equiripple:
		bands := remezBands(spec, cfg.weightRatio)
		tap = func(n int) ([]float64, error) {
			h, _, rerr := remez(n, bands, cfg.gridDensity, cfg.maxIterations)
			return h, rerr
		}
		taps, err = designEquiripple(spec, bands, cfg)
	default:
		return nil, design.InvalidSpecf("unknown FIR method %v", method)
	}

	if err != nil {
		return nil, err
	}

	bumped := cfg.bump != 0
	if bumped {
		n := fitLength(spec.Band, len(taps)+cfg.bump)
		if taps, err = tap(n); err != nil {
			return nil, err
		}
	}

	d := &design.Design{
		Spec:         spec.Clone(),
		Coefficients: design.FIR(taps),
		Order:        len(taps) - 1,
		Method:       method.String(),
	}
	d.Achieved = design.Measure(d, spec)

	if bumped && !d.Meets() {
		d.Warnings = append(d.Warnings, design.Warnf(design.WarnTargetMissed,
			"%d taps: ripple %.4g dB, attenuation %.4g dB",
			len(taps), d.Achieved.PassbandRippleDB, d.Achieved.StopbandAttenuationDB))
	}

	return d, nil
}

// designEquiripple searches upward from the length estimate for the
// shortest Remez design that meets spec. A length at which the exchange
// does not converge is skipped.
func designEquiripple(spec design.Spec, bands []band, cfg config) ([]float64, error) {
	start := equirippleEstimate(spec)

	step := 1
	if needsOdd(spec.Band) {
		step = 2
	}

	limit := start + searchSteps

	for n := start; n <= limit; n += step {
		h, converged, err := remez(n, bands, cfg.gridDensity, cfg.maxIterations)
		if err != nil {
			return nil, design.NonConvergencef("remez at %d taps: %v", n, err)
		}

		if !converged {
			continue
		}

		if design.Measure(design.FIR(h), spec).Meets(spec) {
			return h, nil
		}
	}

	return nil, design.NonConvergencef("equiripple: %d..%d taps never met the targets", start, limit)
}
