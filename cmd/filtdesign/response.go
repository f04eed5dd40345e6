package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/analysis"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/multirate"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/render"
)

// gridFlags select the evaluation grid and the output format.
type gridFlags struct {
	mode   string
	points int
	fmin   float64
	fmax   float64
	format string
}

func (g *gridFlags) register(fset *flag.FlagSet, env *cliEnv) {
	fset.StringVar(&g.mode, "mode", "magnitude-db",
		"response mode: magnitude-db, magnitude-linear, phase, gd-samples, gd-seconds")
	fset.IntVar(&g.points, "points", env.defaults.Points, "number of frequency points")
	fset.Float64Var(&g.fmin, "fmin", 0, "lowest evaluated frequency in Hz")
	fset.Float64Var(&g.fmax, "fmax", 0, "highest evaluated frequency in Hz (0 = Nyquist)")
	fset.StringVar(&g.format, "format", "table", "output format: table, csv")
}

func (g *gridFlags) options(fs float64) (analysis.Mode, []analysis.Option, error) {
	mode, err := analysis.ParseMode(g.mode)
	if err != nil {
		return 0, nil, err
	}

	opts := []analysis.Option{analysis.WithMode(mode), analysis.WithPoints(g.points)}

	if g.fmin > 0 || g.fmax > 0 {
		hi := g.fmax
		if hi <= 0 {
			hi = fs / 2
		}

		opts = append(opts, analysis.WithRange(g.fmin, hi))
	}

	return mode, opts, nil
}

func (g *gridFlags) renderer(w io.Writer) (render.Renderer, error) {
	switch g.format {
	case "table":
		return render.NewTableRenderer(w), nil
	case "csv":
		return render.NewCSVRenderer(w), nil
	default:
		return nil, fmt.Errorf("unknown format %q", g.format)
	}
}

func runResponse(_ context.Context, env *cliEnv, args []string) error {
	var (
		sf   specFlags
		grid gridFlags
	)

	fset := newFlagSet("response", env, &sf)
	grid.register(fset, env)
	pz := fset.Bool("pz", false, "print poles and zeros instead of the frequency response")
	coeffs := fset.String("coeffs", "", "evaluate a binary coefficient file instead of designing")

	if err := fset.Parse(args); err != nil {
		return errUsage
	}

	logger, err := newLogger(sf.logLevel, env.stderr)
	if err != nil {
		return err
	}

	r, err := grid.renderer(env.stdout)
	if err != nil {
		return err
	}

	rep, err := responder(&sf, *coeffs, logger, env)
	if err != nil {
		return err
	}

	if *pz {
		set, err := poleZeroOf(rep)
		if err != nil {
			return err
		}

		for _, w := range set.Warnings {
			_, _ = warnColor.Fprintf(env.stderr, "warning: %s\n", w)
		}

		return r.RenderPoleZero(set)
	}

	mode, opts, err := grid.options(sf.fs)
	if err != nil {
		return err
	}

	c, err := analysis.Evaluate(rep, sf.fs, opts...)
	if err != nil {
		return err
	}

	for _, w := range c.Warnings {
		_, _ = warnColor.Fprintf(env.stderr, "warning: %s\n", w)
	}

	logger.Debug("evaluated response", "label", c.Label, "points", len(c.Points), "singular", c.HasSingular())

	return r.RenderResponse([]*analysis.Curve{c}, mode)
}

// responder designs from the spec flags, or loads coefficients when path
// is set.
func responder(sf *specFlags, path string, logger *slog.Logger, env *cliEnv) (analysis.Responder, error) {
	if path != "" {
		rep, err := loadCoefficients(path)
		if err != nil {
			return nil, err
		}

		logger.Info("loaded coefficients", "path", path)

		return rep, nil
	}

	d, err := sf.design(logger)
	if err != nil {
		return nil, err
	}

	printWarnings(env.stderr, d)

	return d, nil
}

func poleZeroOf(rep analysis.Responder) (analysis.PoleZeroSet, error) {
	f, err := multirate.New(rep)
	if err != nil {
		return analysis.PoleZeroSet{}, err
	}

	return f.PoleZero()
}
