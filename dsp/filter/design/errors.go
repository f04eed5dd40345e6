package design

import (
	"errors"
	"fmt"
)

// ErrDesign is the umbrella for every error returned by the designers.
var ErrDesign = errors.New("filter design")

var (
	// ErrInvalidSpec reports a specification that cannot be realized:
	// edges outside (0, fs/2), misordered edges, non-positive ripple or
	// attenuation, or an unsupported band shape.
	ErrInvalidSpec = fmt.Errorf("%w: invalid specification", ErrDesign)

	// ErrNonConvergence reports that an order search or the Remez
	// exchange exhausted its iteration cap.
	ErrNonConvergence = fmt.Errorf("%w: no convergence", ErrDesign)
)

// InvalidSpecf wraps ErrInvalidSpec with a formatted detail message.
func InvalidSpecf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSpec, fmt.Sprintf(format, args...))
}

// NonConvergencef wraps ErrNonConvergence with a formatted detail message.
func NonConvergencef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNonConvergence, fmt.Sprintf(format, args...))
}

// WarningKind classifies a non-fatal condition attached to a result.
type WarningKind int

const (
	// WarnNumericalInstability marks evaluation points where the response
	// is singular (a zero or pole on the unit circle).
	WarnNumericalInstability WarningKind = iota + 1
	// WarnIllConditioned marks results whose accuracy is doubtful, such as
	// roots with a large backward error or an expanded rational form that
	// has drifted from its sections.
	WarnIllConditioned
	// WarnTargetMissed marks a design that, after a user order
	// adjustment, no longer meets its ripple or attenuation target.
	WarnTargetMissed
)

func (k WarningKind) String() string {
	switch k {
	case WarnNumericalInstability:
		return "numerical-instability"
	case WarnIllConditioned:
		return "ill-conditioned"
	case WarnTargetMissed:
		return "target-missed"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning is a non-fatal diagnostic returned alongside a result.
type Warning struct {
	Kind    WarningKind
	Message string
}

// Warnf builds a Warning with a formatted message.
func Warnf(kind WarningKind, format string, args ...any) Warning {
	return Warning{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (w Warning) String() string {
	return w.Kind.String() + ": " + w.Message
}
