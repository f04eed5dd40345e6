package iir

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

// Family selects the analog prototype of an IIR design.
type Family int

const (
	Butterworth Family = iota
	Chebyshev1
	Chebyshev2
	Elliptic
)

// Families lists every family in enum order.
var Families = []Family{Butterworth, Chebyshev1, Chebyshev2, Elliptic}

func (f Family) String() string {
	switch f {
	case Butterworth:
		return "butterworth"
	case Chebyshev1:
		return "chebyshev1"
	case Chebyshev2:
		return "chebyshev2"
	case Elliptic:
		return "elliptic"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// ParseFamily accepts the family names as printed by String plus a few
// common aliases.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "butterworth", "butter", "bw":
		return Butterworth, nil
	case "chebyshev1", "cheby1", "cheb1", "chebyshev":
		return Chebyshev1, nil
	case "chebyshev2", "cheby2", "cheb2":
		return Chebyshev2, nil
	case "elliptic", "ellip", "cauer":
		return Elliptic, nil
	default:
		return 0, design.InvalidSpecf("unknown IIR family %q", s)
	}
}

// Prototype returns the analog prototype implementing f.
func (f Family) Prototype() (AnalogPrototype, error) {
	switch f {
	case Butterworth:
		return butterworth{}, nil
	case Chebyshev1:
		return chebyshev1{}, nil
	case Chebyshev2:
		return chebyshev2{}, nil
	case Elliptic:
		return elliptic{}, nil
	default:
		return nil, design.InvalidSpecf("unknown IIR family %v", f)
	}
}
