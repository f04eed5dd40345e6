package design

import (
	"fmt"
	"strings"
)

// BandType is the shape of the amplitude response.
type BandType int

const (
	Lowpass BandType = iota
	Highpass
	Bandpass
	Bandstop
)

func (b BandType) String() string {
	switch b {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	case Bandstop:
		return "bandstop"
	default:
		return fmt.Sprintf("BandType(%d)", int(b))
	}
}

// Edges returns the number of passband (and stopband) edges the shape
// needs: 1 for lowpass/highpass, 2 for bandpass/bandstop, 0 if unknown.
func (b BandType) Edges() int {
	switch b {
	case Lowpass, Highpass:
		return 1
	case Bandpass, Bandstop:
		return 2
	default:
		return 0
	}
}

// ParseBandType accepts the long names and the short forms lp, hp, bp, bs.
func ParseBandType(s string) (BandType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lowpass", "lp", "low":
		return Lowpass, nil
	case "highpass", "hp", "high":
		return Highpass, nil
	case "bandpass", "bp", "pass":
		return Bandpass, nil
	case "bandstop", "bs", "stop", "notch":
		return Bandstop, nil
	default:
		return 0, InvalidSpecf("unknown band type %q", s)
	}
}
