package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/iir"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/linphase"
)

// specFlags are the flags shared by every command that designs a filter.
type specFlags struct {
	band     string
	pass     string
	stop     string
	ripple   float64
	atten    float64
	fs       float64
	method   string
	order    int
	bump     int
	logLevel string
}

func newFlagSet(name string, env *cliEnv, sf *specFlags) *flag.FlagSet {
	fset := flag.NewFlagSet(name, flag.ContinueOnError)
	fset.SetOutput(env.stderr)

	fset.StringVar(&sf.band, "band", "lowpass", "band shape: lowpass, highpass, bandpass, bandstop")
	fset.StringVar(&sf.pass, "pass", "", "passband edge(s) in Hz, comma separated for band shapes")
	fset.StringVar(&sf.stop, "stop", "", "stopband edge(s) in Hz, comma separated for band shapes")
	fset.Float64Var(&sf.ripple, "ripple", 1, "maximum passband ripple in dB")
	fset.Float64Var(&sf.atten, "atten", 60, "minimum stopband attenuation in dB")
	fset.Float64Var(&sf.fs, "fs", env.defaults.SampleRate, "sample rate in Hz")
	fset.StringVar(&sf.method, "method", "elliptic",
		"design method: kaiser, equiripple, butterworth, chebyshev1, chebyshev2, elliptic")
	fset.IntVar(&sf.order, "order", 0, "force the IIR prototype order (0 = minimum meeting the spec)")
	fset.IntVar(&sf.bump, "bump", 0, "FIR length adjustment in taps")
	fset.StringVar(&sf.logLevel, "log-level", env.defaults.LogLevel, "log level: debug, info, warn, error")

	return fset
}

func parseEdges(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))

	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid edge frequency %q: %w", p, err)
		}

		out = append(out, v)
	}

	return out, nil
}

func (sf *specFlags) spec() (design.Spec, error) {
	band, err := design.ParseBandType(sf.band)
	if err != nil {
		return design.Spec{}, err
	}

	pass, err := parseEdges(sf.pass)
	if err != nil {
		return design.Spec{}, err
	}

	stop, err := parseEdges(sf.stop)
	if err != nil {
		return design.Spec{}, err
	}

	s := design.Spec{
		Band:          band,
		Passband:      pass,
		Stopband:      stop,
		RippleDB:      sf.ripple,
		AttenuationDB: sf.atten,
		SampleRate:    sf.fs,
	}

	return s, s.Validate()
}

// designFor runs the FIR or IIR designer that method names.
func designFor(spec design.Spec, method string, order, bump int) (*design.Design, error) {
	if m, err := linphase.ParseMethod(method); err == nil {
		return linphase.Design(spec, m, linphase.WithBump(bump))
	}

	family, err := iir.ParseFamily(method)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown method %q", design.ErrInvalidSpec, method)
	}

	var opts []iir.Option
	if order > 0 {
		opts = append(opts, iir.WithOrder(order))
	}

	return iir.Design(spec, family, opts...)
}

func (sf *specFlags) design(logger *slog.Logger) (*design.Design, error) {
	spec, err := sf.spec()
	if err != nil {
		return nil, err
	}

	d, err := designFor(spec, sf.method, sf.order, sf.bump)
	if err != nil {
		return nil, err
	}

	logDesign(logger, d)

	return d, nil
}

func logDesign(logger *slog.Logger, d *design.Design) {
	logger.Info("designed filter",
		"method", d.Method,
		"band", d.Spec.Band.String(),
		"order", d.Order,
		"ripple_db", d.Achieved.PassbandRippleDB,
		"attenuation_db", d.Achieved.StopbandAttenuationDB,
	)

	for _, w := range d.Warnings {
		logger.Warn("design warning", "method", d.Method, "kind", w.Kind.String(), "message", w.Message)
	}
}

var warnColor = color.New(color.FgYellow)

func printWarnings(w io.Writer, d *design.Design) {
	for _, warn := range d.Warnings {
		_, _ = warnColor.Fprintf(w, "warning: %s: %s\n", d.Method, warn)
	}
}
