package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/analysis"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/codec"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

func runDesign(_ context.Context, env *cliEnv, args []string) error {
	var sf specFlags

	fset := newFlagSet("design", env, &sf)
	format := fset.String("format", "table", "coefficient output: table, flat, binary")
	out := fset.String("out", "", "write coefficients to this file instead of stdout (required for binary)")

	if err := fset.Parse(args); err != nil {
		return errUsage
	}

	switch *format {
	case "table", "flat":
	case "binary":
		if *out == "" {
			return fmt.Errorf("binary output needs -out")
		}
	default:
		return fmt.Errorf("unknown format %q", *format)
	}

	logger, err := newLogger(sf.logLevel, env.stderr)
	if err != nil {
		return err
	}

	d, err := sf.design(logger)
	if err != nil {
		return err
	}

	if err := printSummary(env.stdout, []*design.Design{d}); err != nil {
		return err
	}

	printWarnings(env.stderr, d)

	seq, err := encodeDesign(d)
	if err != nil {
		return err
	}

	if *out == "" {
		err = writeCoefficients(env.stdout, *format, d, seq)
	} else {
		err = writeCoefficientsFile(*out, *format, d, seq)
	}

	if err != nil {
		return err
	}

	logger.Debug("wrote coefficients", "format", *format, "values", len(seq))

	return nil
}

// writeCoefficients writes d in an already validated format.
func writeCoefficients(w io.Writer, format string, d *design.Design, seq []float64) error {
	switch format {
	case "table":
		return printCoefficients(w, d)
	case "flat":
		return printFlat(w, seq)
	default:
		return codec.WriteBinary(w, seq)
	}
}

func writeCoefficientsFile(path, format string, d *design.Design, seq []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := writeCoefficients(f, format, d, seq); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	return nil
}

// encodeDesign picks the section form for IIR designs and the rational
// form otherwise.
func encodeDesign(d *design.Design) ([]float64, error) {
	if len(d.Sections) > 0 {
		return codec.EncodeCascade(d.Sections)
	}

	return codec.EncodeTransferFunction(d.Coefficients)
}

func printSummary(w io.Writer, ds []*design.Design) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "Method\tBand\tOrder\tRipple [dB]\tAttenuation [dB]\tMeets\n"); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	if _, err := fmt.Fprintf(tw, "------\t----\t-----\t-----------\t----------------\t-----\n"); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	for _, d := range ds {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%d\t%.4f\t%.2f\t%t\n",
			d.Method,
			d.Spec.Band,
			d.Order,
			d.Achieved.PassbandRippleDB,
			d.Achieved.StopbandAttenuationDB,
			d.Meets(),
		); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	return tw.Flush()
}

func printCoefficients(w io.Writer, d *design.Design) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if len(d.Sections) > 0 {
		_, _ = fmt.Fprintf(tw, "Section\tb0\tb1\tb2\ta0\ta1\ta2\n")

		for i, s := range d.Sections {
			row := s.Row()
			_, _ = fmt.Fprintf(tw, "%d\t%.12g\t%.12g\t%.12g\t%.12g\t%.12g\t%.12g\n",
				i, row[0], row[1], row[2], row[3], row[4], row[5])
		}

		return tw.Flush()
	}

	_, _ = fmt.Fprintf(tw, "n\tb[n]\n")

	for i, v := range d.Coefficients.B {
		_, _ = fmt.Fprintf(tw, "%d\t%.12g\n", i, v)
	}

	return tw.Flush()
}

func printFlat(w io.Writer, seq []float64) error {
	fields := make([]string, len(seq))
	for i, v := range seq {
		fields[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	_, err := fmt.Fprintln(w, strings.Join(fields, " "))

	return err
}

// loadCoefficients reads a binary coefficient file written by
// "design -format binary".
func loadCoefficients(path string) (analysis.Responder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open coefficient file: %w", err)
	}
	defer f.Close()

	seq, err := codec.ReadBinary(f)
	if err != nil {
		return nil, err
	}

	dec, err := codec.Decode(seq)
	if err != nil {
		return nil, err
	}

	if dec.TF != nil {
		return *dec.TF, nil
	}

	return dec.Cascade, nil
}
