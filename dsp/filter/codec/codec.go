package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

// Format tags.
const (
	TagRational = 1
	TagCascade  = 2
)

// maxLength bounds declared lengths so a corrupt header cannot request an
// absurd allocation.
const maxLength = 1 << 24

// ErrMalformed is returned for sequences that do not decode.
var ErrMalformed = errors.New("codec: malformed coefficient sequence")

func malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformed}, args...)...)
}

// EncodeTransferFunction returns the tagged rational form of tf.
func EncodeTransferFunction(tf design.TransferFunction) ([]float64, error) {
	if err := tf.Validate(); err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}

	out := make([]float64, 0, 3+len(tf.B)+len(tf.A))
	out = append(out, TagRational, float64(len(tf.B)))
	out = append(out, tf.B...)
	out = append(out, float64(len(tf.A)))
	out = append(out, tf.A...)

	return out, nil
}

// EncodeCascade returns the tagged cascade form of c.
func EncodeCascade(c biquad.Cascade) ([]float64, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}

	out := make([]float64, 0, 2+6*len(c))
	out = append(out, TagCascade, float64(len(c)))

	for _, row := range c.Rows() {
		out = append(out, row[:]...)
	}

	return out, nil
}

// Decoded holds exactly one of the two representations.
type Decoded struct {
	TF      *design.TransferFunction
	Cascade biquad.Cascade
}

// Decode parses a tagged sequence. Trailing values, non-integer lengths
// and coefficients that violate the representation's invariants are
// rejected with ErrMalformed.
func Decode(seq []float64) (Decoded, error) {
	if len(seq) < 2 {
		return Decoded{}, malformedf("need tag and length, got %d values", len(seq))
	}

	switch seq[0] {
	case TagRational:
		return decodeRational(seq[1:])
	case TagCascade:
		return decodeCascade(seq[1:])
	default:
		return Decoded{}, malformedf("unknown tag %v", seq[0])
	}
}

func length(v float64) (int, error) {
	if v != math.Trunc(v) || v < 1 || v > maxLength {
		return 0, malformedf("invalid length %v", v)
	}

	return int(v), nil
}

func decodeRational(seq []float64) (Decoded, error) {
	nb, err := length(seq[0])
	if err != nil {
		return Decoded{}, err
	}

	seq = seq[1:]
	if len(seq) < nb+1 {
		return Decoded{}, malformedf("numerator needs %d values, %d left", nb, len(seq))
	}

	b := seq[:nb]

	na, err := length(seq[nb])
	if err != nil {
		return Decoded{}, err
	}

	seq = seq[nb+1:]
	if len(seq) != na {
		return Decoded{}, malformedf("denominator needs %d values, %d left", na, len(seq))
	}

	tf := design.TransferFunction{B: append([]float64(nil), b...), A: append([]float64(nil), seq...)}
	if err := tf.Validate(); err != nil {
		return Decoded{}, malformedf("%v", err)
	}

	return Decoded{TF: &tf}, nil
}

func decodeCascade(seq []float64) (Decoded, error) {
	n, err := length(seq[0])
	if err != nil {
		return Decoded{}, err
	}

	seq = seq[1:]
	if len(seq) != 6*n {
		return Decoded{}, malformedf("%d sections need %d values, got %d", n, 6*n, len(seq))
	}

	c := make(biquad.Cascade, n)
	for i := range c {
		var row [6]float64
		copy(row[:], seq[6*i:6*i+6])

		s, err := biquad.FromRow(row)
		if err != nil {
			return Decoded{}, malformedf("section %d: %v", i, err)
		}

		c[i] = s
	}

	if err := c.Validate(); err != nil {
		return Decoded{}, malformedf("%v", err)
	}

	return Decoded{Cascade: c}, nil
}

// WriteBinary writes seq as little-endian float64 values.
func WriteBinary(w io.Writer, seq []float64) error {
	return binary.Write(w, binary.LittleEndian, seq)
}

// ReadBinary reads little-endian float64 values until EOF. A trailing
// partial value is ErrMalformed.
func ReadBinary(r io.Reader) ([]float64, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if len(raw)%8 != 0 {
		return nil, malformedf("%d bytes is not a whole number of float64 values", len(raw))
	}

	out := make([]float64, len(raw)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
	}

	return out, nil
}
