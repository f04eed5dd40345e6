package linphase

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

// Method selects the FIR design algorithm.
type Method int

const (
	// Kaiser is the tapered-window method.
	Kaiser Method = iota
	// Equiripple is the Parks-McClellan minimax method.
	Equiripple
)

func (m Method) String() string {
	switch m {
	case Kaiser:
		return "kaiser"
	case Equiripple:
		return "equiripple"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod accepts "kaiser"/"window" and "equiripple"/"remez"/"pm".
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kaiser", "window":
		return Kaiser, nil
	case "equiripple", "remez", "pm", "parks-mcclellan":
		return Equiripple, nil
	default:
		return 0, design.InvalidSpecf("unknown FIR method %q", s)
	}
}

const (
	defaultGridDensity   = 16
	defaultMaxIterations = 100
	// searchSteps caps how far an order search may move past its estimate.
	searchSteps = 20
)

type config struct {
	bump          int
	weightRatio   float64
	gridDensity   int
	maxIterations int
}

func defaultConfig() config {
	return config{
		weightRatio:   1,
		gridDensity:   defaultGridDensity,
		maxIterations: defaultMaxIterations,
	}
}

// Option configures Design.
type Option func(*config)

// WithBump adds n taps (n may be negative) to the length found by the
// order search. The result is clamped to at least 3 taps and kept odd
// where the band shape requires it.
func WithBump(n int) Option {
	return func(c *config) { c.bump = n }
}

// WithWeightRatio scales the equiripple stopband weight relative to its
// default of deltaPass/deltaStop. Values <= 0 are ignored.
func WithWeightRatio(r float64) Option {
	return func(c *config) {
		if r > 0 {
			c.weightRatio = r
		}
	}
}

// WithGridDensity sets the Remez grid density (points per extremal).
// Values < 2 are ignored.
func WithGridDensity(n int) Option {
	return func(c *config) {
		if n >= 2 {
			c.gridDensity = n
		}
	}
}

// WithMaxIterations sets the Remez iteration cap. Values < 1 are ignored.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.maxIterations = n
		}
	}
}
