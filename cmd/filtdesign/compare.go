package main

import (
	"context"
	"strings"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/analysis"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

func runCompare(ctx context.Context, env *cliEnv, args []string) error {
	var (
		sf   specFlags
		grid gridFlags
	)

	fset := newFlagSet("compare", env, &sf)
	grid.register(fset, env)
	methods := fset.String("methods", "butterworth,chebyshev1,chebyshev2,elliptic",
		"comma separated design methods to compare")

	if err := fset.Parse(args); err != nil {
		return errUsage
	}

	logger, err := newLogger(sf.logLevel, env.stderr)
	if err != nil {
		return err
	}

	spec, err := sf.spec()
	if err != nil {
		return err
	}

	r, err := grid.renderer(env.stdout)
	if err != nil {
		return err
	}

	var (
		designs []*design.Design
		reps    []analysis.Responder
	)

	for _, m := range strings.Split(*methods, ",") {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}

		d, err := designFor(spec, m, sf.order, sf.bump)
		if err != nil {
			return err
		}

		logDesign(logger, d)
		printWarnings(env.stderr, d)

		designs = append(designs, d)
		reps = append(reps, d)
	}

	if len(designs) == 0 {
		return errUsage
	}

	if grid.format == "table" {
		if err := printSummary(env.stdout, designs); err != nil {
			return err
		}
	}

	mode, opts, err := grid.options(spec.SampleRate)
	if err != nil {
		return err
	}

	curves, err := analysis.Compare(ctx, spec.SampleRate, reps, opts...)
	if err != nil {
		return err
	}

	return r.RenderResponse(curves, mode)
}
