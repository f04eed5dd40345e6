package render

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/analysis"
)

// ErrGridMismatch is returned when curves rendered side by side were not
// sampled on the same frequency grid.
var ErrGridMismatch = errors.New("render: curves use different frequency grids")

// TableRenderer writes aligned text tables.
type TableRenderer struct {
	w io.Writer
	// Precision is the number of significant digits printed.
	Precision int
}

// NewTableRenderer returns a renderer writing to w.
func NewTableRenderer(w io.Writer) *TableRenderer {
	return &TableRenderer{w: w, Precision: 6}
}

// RenderResponse prints one row per frequency with one column per curve.
// Singular points print as "singular".
func (r *TableRenderer) RenderResponse(curves []*analysis.Curve, mode analysis.Mode) error {
	if !alignedGrid(curves) {
		return ErrGridMismatch
	}

	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)

	series := make([]Series, len(curves))
	header := []string{"Freq [Hz]"}
	rule := []string{"---------"}

	for i, c := range curves {
		series[i] = SeriesFromCurve(c, mode)

		h := columnLabel(c.Label, i, mode)
		header = append(header, h)
		rule = append(rule, strings.Repeat("-", len(h)))
	}

	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(tw, strings.Join(rule, "\t")); err != nil {
		return err
	}

	if len(series) > 0 {
		for i, f := range series[0].X {
			row := []string{fmt.Sprintf("%.*g", r.Precision, f)}
			for _, s := range series {
				row = append(row, r.cell(s, i))
			}

			if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
				return err
			}
		}
	}

	return tw.Flush()
}

// RenderPoleZero prints one row per distinct root.
func (r *TableRenderer) RenderPoleZero(set analysis.PoleZeroSet) error {
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "Kind\tRe\tIm\t|z|\tMult\n----\t--\t--\t---\t----\n"); err != nil {
		return err
	}

	for _, p := range ScatterFromPoleZero(set) {
		if _, err := fmt.Fprintf(tw, "%s\t%.*g\t%.*g\t%.*g\t%d\n",
			p.Marker, r.Precision, p.Re, r.Precision, p.Im, r.Precision, p.Radius, p.Multiplicity); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(tw, "gain\t%.*g\t\t\t\n", r.Precision, set.Gain); err != nil {
		return err
	}

	return tw.Flush()
}

func (r *TableRenderer) cell(s Series, i int) string {
	if s.Singular[i] {
		return "singular"
	}

	return fmt.Sprintf("%.*g", r.Precision, s.Y[i])
}

func columnLabel(label string, i int, mode analysis.Mode) string {
	if label == "" {
		label = fmt.Sprintf("#%d", i+1)
	}

	if u := mode.Unit(); u != "" {
		return fmt.Sprintf("%s [%s]", label, u)
	}

	return label
}
