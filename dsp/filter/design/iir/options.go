package iir

// DefaultMaxOrder bounds the order a design may reach.
const DefaultMaxOrder = 64

// verifySteps caps how far the verification loop may raise the order
// beyond the closed-form estimate.
const verifySteps = 20

type config struct {
	order    int
	maxOrder int
}

func defaultConfig() config {
	return config{maxOrder: DefaultMaxOrder}
}

// Option configures Design.
type Option func(*config)

// WithOrder fixes the prototype order and skips the order formula and the
// verification loop. A fixed-order design that misses its targets carries
// a WarnTargetMissed warning instead of failing.
func WithOrder(n int) Option {
	return func(c *config) { c.order = n }
}

// WithMaxOrder sets the largest prototype order a design may use. Values < 1 are
// ignored.
func WithMaxOrder(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.maxOrder = n
		}
	}
}
