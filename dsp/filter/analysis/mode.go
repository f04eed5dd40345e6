package analysis

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

// Mode selects the quantity a curve is viewed as.
type Mode int

const (
	MagnitudeDB Mode = iota
	MagnitudeLinear
	Phase
	GroupDelaySamples
	GroupDelaySeconds
)

var modeNames = [...]string{
	MagnitudeDB:       "magnitude-db",
	MagnitudeLinear:   "magnitude-linear",
	Phase:             "phase",
	GroupDelaySamples: "gd-samples",
	GroupDelaySeconds: "gd-seconds",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

// Unit returns the unit label of the mode's values.
func (m Mode) Unit() string {
	switch m {
	case MagnitudeDB:
		return "dB"
	case Phase:
		return "rad"
	case GroupDelaySamples:
		return "samples"
	case GroupDelaySeconds:
		return "s"
	default:
		return ""
	}
}

// ParseMode accepts the String form plus the short aliases "db", "mag",
// "gd" and "gds".
func ParseMode(s string) (Mode, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "db":
		return MagnitudeDB, nil
	case "mag", "linear":
		return MagnitudeLinear, nil
	case "gd":
		return GroupDelaySamples, nil
	case "gds":
		return GroupDelaySeconds, nil
	default:
		for m, name := range modeNames {
			if v == name {
				return Mode(m), nil
			}
		}
	}

	return 0, design.InvalidSpecf("unknown response mode %q", s)
}
