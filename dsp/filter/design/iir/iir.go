package iir

import (
	"context"
	"math/cmplx"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

// Design returns the minimum-order IIR filter of the given family that
// meets spec.
//
// The result's Order is the realised digital order, the number of poles:
// twice the prototype order for bandpass and bandstop. The closed-form
// order is verified by measuring the digital response on a dense grid; if rounding leaves the filter short of its targets the
// order is raised, at most verifySteps times, before ErrNonConvergence is
// returned.
func Design(spec design.Spec, family Family, opts ...Option) (*design.Design, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	if spec.RippleDB >= spec.AttenuationDB {
		return nil, design.InvalidSpecf("ripple %v dB must be below attenuation %v dB",
			spec.RippleDB, spec.AttenuationDB)
	}

	proto, err := family.Prototype()
	if err != nil {
		return nil, err
	}

	wp := make([]float64, len(spec.Passband))
	for i, f := range spec.Passband {
		wp[i] = prewarp(f, spec.SampleRate)
	}

	ws := make([]float64, len(spec.Stopband))
	for i, f := range spec.Stopband {
		ws[i] = prewarp(f, spec.SampleRate)
	}

	if cfg.order > 0 {
		d, err := build(spec, family, proto, wp, cfg.order)
		if err != nil {
			return nil, err
		}

		if !d.Meets() {
			d.Warnings = append(d.Warnings, design.Warnf(design.WarnTargetMissed,
				"prototype order %d: ripple %.4g dB, attenuation %.4g dB",
				cfg.order, d.Achieved.PassbandRippleDB, d.Achieved.StopbandAttenuationDB))
		}

		return d, nil
	}

	sel := Selectivity{
		Ratio:         lowpassRatio(spec.Band, wp, ws),
		RippleDB:      spec.RippleDB,
		AttenuationDB: spec.AttenuationDB,
	}

	n := proto.Order(sel)
	if n < 1 {
		return nil, design.InvalidSpecf("no finite %v order for selectivity %v", family, sel.Ratio)
	}

	if n > cfg.maxOrder {
		return nil, design.InvalidSpecf("%v needs order %d, above the maximum %d", family, n, cfg.maxOrder)
	}

	limit := min(n+verifySteps, cfg.maxOrder)

	var last *design.Design

	for order := n; order <= limit; order++ {
		d, err := build(spec, family, proto, wp, order)
		if err != nil {
			return nil, err
		}

		if d.Meets() {
			return d, nil
		}

		last = d
	}

	return nil, design.NonConvergencef("%v: order %d..%d never met the targets (last: ripple %.4g dB, attenuation %.4g dB)",
		family, n, limit, last.Achieved.PassbandRippleDB, last.Achieved.StopbandAttenuationDB)
}

// rationalTolerance bounds the relative disagreement between the expanded
// transfer function and the cascade before the design is flagged.
const rationalTolerance = 1e-6

func build(spec design.Spec, family Family, proto AnalogPrototype, wp []float64, order int) (*design.Design, error) {
	analog, err := proto.ZPK(order, spec.RippleDB, spec.AttenuationDB)
	if err != nil {
		return nil, design.NonConvergencef("%v prototype of order %d: %v", family, order, err)
	}

	analog, err = toBand(analog, spec.Band, wp)
	if err != nil {
		return nil, err
	}

	zpk, err := bilinear(analog)
	if err != nil {
		return nil, design.NonConvergencef("%v bilinear transform: %v", family, err)
	}

	sections, err := zpk.Cascade()
	if err != nil {
		return nil, design.NonConvergencef("%v section pairing: %v", family, err)
	}

	tf, err := zpk.TransferFunction()
	if err != nil {
		return nil, design.NonConvergencef("%v expansion: %v", family, err)
	}

	d := &design.Design{
		Spec:         spec.Clone(),
		Coefficients: tf,
		Sections:     sections,
		ZPK:          &zpk,
		Order:        len(zpk.Poles),
		Method:       family.String(),
	}

	d.Achieved = design.Measure(d, spec)

	if dev := design.ResponseDeviation(sections, tf, spec.SampleRate); dev > rationalTolerance {
		d.Warnings = append(d.Warnings, design.Warnf(design.WarnIllConditioned,
			"rational form deviates from the sections by %.3g of peak; filter with the sections", dev))
	}

	for _, p := range zpk.Poles {
		if cmplx.Abs(p) >= 1 {
			d.Warnings = append(d.Warnings, design.Warnf(design.WarnNumericalInstability,
				"pole %v on or outside the unit circle", p))

			break
		}
	}

	return d, nil
}

// CompareFamilies designs spec with every family concurrently and returns
// the results in Families order.
func CompareFamilies(ctx context.Context, spec design.Spec, opts ...Option) ([]*design.Design, error) {
	out := make([]*design.Design, len(Families))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range Families {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			d, err := Design(spec, f, opts...)
			if err != nil {
				return err
			}

			out[i] = d

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
