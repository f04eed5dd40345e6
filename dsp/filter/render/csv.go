package render

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/analysis"
)

// CSVRenderer writes comma-separated values with a header row. Singular
// points are written as empty fields.
type CSVRenderer struct {
	w io.Writer
}

// NewCSVRenderer returns a renderer writing to w.
func NewCSVRenderer(w io.Writer) *CSVRenderer {
	return &CSVRenderer{w: w}
}

// RenderResponse writes freq_hz followed by one column per curve.
func (r *CSVRenderer) RenderResponse(curves []*analysis.Curve, mode analysis.Mode) error {
	if !alignedGrid(curves) {
		return ErrGridMismatch
	}

	cw := csv.NewWriter(r.w)

	series := make([]Series, len(curves))
	header := []string{"freq_hz"}

	for i, c := range curves {
		series[i] = SeriesFromCurve(c, mode)
		header = append(header, columnLabel(c.Label, i, mode))
	}

	if err := cw.Write(header); err != nil {
		return err
	}

	if len(series) > 0 {
		for i, f := range series[0].X {
			row := []string{format(f)}
			for _, s := range series {
				if s.Singular[i] {
					row = append(row, "")
					continue
				}

				row = append(row, format(s.Y[i]))
			}

			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()

	return cw.Error()
}

// RenderPoleZero writes kind,re,im,radius,multiplicity rows.
func (r *CSVRenderer) RenderPoleZero(set analysis.PoleZeroSet) error {
	cw := csv.NewWriter(r.w)

	if err := cw.Write([]string{"kind", "re", "im", "radius", "multiplicity"}); err != nil {
		return err
	}

	for _, p := range ScatterFromPoleZero(set) {
		if err := cw.Write([]string{
			p.Marker.String(), format(p.Re), format(p.Im), format(p.Radius), strconv.Itoa(p.Multiplicity),
		}); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
