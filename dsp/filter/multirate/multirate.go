package multirate

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-filterdesign/dsp/conv"
	"github.com/cwbudde/algo-filterdesign/dsp/core"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/analysis"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/fir"
)

// DirectTapLimit is the FIR length above which filtering switches to FFT
// overlap-save.
const DirectTapLimit = 64

// Option configures the processing block size and nominal sample rate.
type Option = core.ProcessorOption

// Runtime names the processing engine a Filter uses.
type Runtime int

const (
	RuntimeFIR Runtime = iota
	RuntimeOverlapSave
	RuntimeBiquad
	RuntimeDirectForm
)

func (r Runtime) String() string {
	switch r {
	case RuntimeFIR:
		return "fir"
	case RuntimeOverlapSave:
		return "overlap-save"
	case RuntimeBiquad:
		return "biquad"
	case RuntimeDirectForm:
		return "direct-form"
	default:
		return fmt.Sprintf("Runtime(%d)", int(r))
	}
}

// blockProcessor runs one block of at most BlockSize samples in place.
type blockProcessor interface {
	process(buf []float64) error
	reset()
}

// Filter is a stateful filter built from a coefficient set.
type Filter struct {
	cfg     core.ProcessorConfig
	runtime Runtime
	proc    blockProcessor

	tf      *design.TransferFunction
	cascade biquad.Cascade
	zpk     *design.ZPK
}

// New builds a Filter from a design.TransferFunction, a biquad.Cascade or
// a *design.Design. A design with sections runs on its cascade.
func New(rep analysis.Responder, opts ...Option) (*Filter, error) {
	f := &Filter{cfg: core.ApplyProcessorOptions(opts...)}

	var err error

	switch v := rep.(type) {
	case design.TransferFunction:
		err = f.fromTransferFunction(v)
	case *design.TransferFunction:
		if v == nil {
			return nil, design.InvalidSpecf("nil transfer function")
		}

		err = f.fromTransferFunction(*v)
	case biquad.Cascade:
		err = f.fromCascade(v)
	case *design.Design:
		if v == nil {
			return nil, design.InvalidSpecf("nil design")
		}

		if v.ZPK != nil {
			z := *v.ZPK
			f.zpk = &z
		}

		if len(v.Sections) > 0 {
			err = f.fromCascade(v.Sections)
		} else {
			err = f.fromTransferFunction(v.Coefficients)
		}
	default:
		return nil, design.InvalidSpecf("unsupported coefficient representation %T", rep)
	}

	if err != nil {
		return nil, err
	}

	return f, nil
}

func (f *Filter) fromTransferFunction(tf design.TransferFunction) error {
	if err := tf.Validate(); err != nil {
		return design.InvalidSpecf("transfer function: %v", err)
	}

	tf = tf.Clone()
	f.tf = &tf

	switch {
	case tf.IsFIR() && len(tf.B) > DirectTapLimit:
		ols, err := conv.NewStreamingOverlapSave(tf.B, f.cfg.BlockSize)
		if err != nil {
			return err
		}

		f.runtime, f.proc = RuntimeOverlapSave, &olsProc{ols: ols, out: make([]float64, f.cfg.BlockSize)}
	case tf.IsFIR():
		f.runtime, f.proc = RuntimeFIR, firProc{fir.New(tf.B)}
	default:
		f.runtime, f.proc = RuntimeDirectForm, dfProc{newDirectForm(tf.B, tf.A)}
	}

	return nil
}

func (f *Filter) fromCascade(c biquad.Cascade) error {
	if err := c.Validate(); err != nil {
		return design.InvalidSpecf("cascade: %v", err)
	}

	f.cascade = c.Clone()
	f.runtime, f.proc = RuntimeBiquad, chainProc{biquad.NewChain(f.cascade)}

	return nil
}

// Runtime reports which engine processes samples.
func (f *Filter) Runtime() Runtime { return f.runtime }

// BlockSize returns the processing block size.
func (f *Filter) BlockSize() int { return f.cfg.BlockSize }

// Filter returns the filtered signal. State carries over between calls,
// so consecutive calls behave like one call on the concatenated input.
// The input is not modified.
func (f *Filter) Filter(x []float64) ([]float64, error) {
	out := make([]float64, len(x))
	copy(out, x)

	for pos := 0; pos < len(out); pos += f.cfg.BlockSize {
		end := min(pos+f.cfg.BlockSize, len(out))
		if err := f.proc.process(out[pos:end]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Reset clears the filter state.
func (f *Filter) Reset() {
	f.proc.reset()
}

func (f *Filter) responder() analysis.Responder {
	if f.cascade != nil {
		return f.cascade
	}

	return *f.tf
}

// FrequencyResponse evaluates the filter's response at sampleRate. A
// sampleRate <= 0 uses the configured rate.
func (f *Filter) FrequencyResponse(ctx context.Context, mode analysis.Mode, sampleRate float64, opts ...analysis.Option) (*analysis.Curve, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if sampleRate <= 0 {
		sampleRate = f.cfg.SampleRate
	}

	opts = append([]analysis.Option{analysis.WithMode(mode), analysis.WithLabel(f.runtime.String())}, opts...)

	return analysis.Evaluate(f.responder(), sampleRate, opts...)
}

// PoleZero returns the filter's poles and zeros, from the factored form
// when the filter was built from a design that has one.
func (f *Filter) PoleZero() (analysis.PoleZeroSet, error) {
	switch {
	case f.zpk != nil:
		return analysis.PoleZeroFromZPK(*f.zpk), nil
	case f.cascade != nil:
		return analysis.PoleZeroFromCascade(f.cascade)
	default:
		return analysis.PoleZeroFromTransferFunction(*f.tf)
	}
}

type firProc struct{ f *fir.Filter }

func (p firProc) process(buf []float64) error {
	p.f.ProcessBlock(buf)
	return nil
}

func (p firProc) reset() { p.f.Reset() }

type olsProc struct {
	ols *conv.StreamingOverlapSave
	out []float64
}

func (p *olsProc) process(buf []float64) error {
	out := p.out[:len(buf)]
	if err := p.ols.ProcessBlockTo(out, buf); err != nil {
		return err
	}

	copy(buf, out)

	return nil
}

func (p *olsProc) reset() { p.ols.Reset() }

type chainProc struct{ c *biquad.Chain }

func (p chainProc) process(buf []float64) error {
	p.c.ProcessBlock(buf)
	return nil
}

func (p chainProc) reset() { p.c.Reset() }

type dfProc struct{ d *directForm }

func (p dfProc) process(buf []float64) error {
	p.d.processBlock(buf)
	return nil
}

func (p dfProc) reset() { p.d.reset() }
