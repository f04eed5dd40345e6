package main

import (
	"context"
	"fmt"
	"math/cmplx"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-filterdesign/dsp/core"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/analysis"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/multirate"
)

func runApply(ctx context.Context, env *cliEnv, args []string) error {
	var sf specFlags

	fset := newFlagSet("apply", env, &sf)
	in := fset.String("in", "", "input WAV file")
	out := fset.String("out", "", "output WAV file")
	coeffs := fset.String("coeffs", "", "apply a binary coefficient file instead of designing")
	blockSize := fset.Int("block", 1024, "processing block size in samples")
	verify := fset.String("verify", "", "comma-separated tone frequencies (Hz) to measure through the filter")

	if err := fset.Parse(args); err != nil {
		return errUsage
	}

	tones, err := parseEdges(*verify)
	if err != nil {
		return fmt.Errorf("-verify: %w", err)
	}

	if *in == "" || *out == "" {
		_, _ = fmt.Fprintln(env.stderr, "apply needs -in and -out")
		fset.Usage()

		return errUsage
	}

	logger, err := newLogger(sf.logLevel, env.stderr)
	if err != nil {
		return err
	}

	src, err := readWAV(*in)
	if err != nil {
		return err
	}

	logger.Info("read input", "path", *in, "sample_rate", src.sampleRate,
		"channels", len(src.channels), "bit_depth", src.bitDepth)

	// The design always targets the file's own rate.
	sf.fs = float64(src.sampleRate)

	rep, err := responder(&sf, *coeffs, logger, env)
	if err != nil {
		return err
	}

	if len(tones) > 0 {
		if err := verifyTones(env, rep, sf.fs, tones); err != nil {
			return err
		}
	}

	dst := &pcmAudio{sampleRate: src.sampleRate, bitDepth: src.bitDepth, channels: make([][]float64, len(src.channels))}

	g, ctx := errgroup.WithContext(ctx)

	for ch, samples := range src.channels {
		f, err := multirate.New(rep, core.WithSampleRate(sf.fs), core.WithBlockSize(*blockSize))
		if err != nil {
			return err
		}

		if ch == 0 {
			logger.Info("filtering", "runtime", f.Runtime().String(), "block_size", f.BlockSize())
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			y, err := f.Filter(samples)
			if err != nil {
				return fmt.Errorf("channel %d: %w", ch, err)
			}

			dst.channels[ch] = y

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if err := writeWAV(*out, dst); err != nil {
		return err
	}

	logger.Info("wrote output", "path", *out)

	return nil
}

// toneToleranceDB bounds the disagreement between a measured tone gain and
// the evaluated response, absolute near 0 dB and relative in the stopband.
const toneToleranceDB = 0.05

// verifyTones runs each tone through a fresh filter and prints the measured
// gain next to the evaluated response.
func verifyTones(env *cliEnv, rep analysis.Responder, fs float64, tones []float64) error {
	f, err := multirate.New(rep, core.WithSampleRate(fs))
	if err != nil {
		return err
	}

	for _, tone := range tones {
		measured, err := f.ToneGainDB(tone)
		if err != nil {
			return err
		}

		predicted := core.LinearToDB(cmplx.Abs(rep.Response(tone, fs)))

		_, _ = fmt.Fprintf(env.stdout, "tone %g Hz: measured %.3f dB, response %.3f dB\n", tone, measured, predicted)

		if !core.NearlyEqual(measured, predicted, toneToleranceDB) {
			_, _ = warnColor.Fprintf(env.stderr, "warning: tone %g Hz measured %.3f dB against %.3f dB\n", tone, measured, predicted)
		}
	}

	return nil
}
