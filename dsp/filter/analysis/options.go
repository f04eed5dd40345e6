package analysis

// DefaultPoints is the number of frequency points Evaluate uses when
// WithPoints is not given.
const DefaultPoints = 512

type config struct {
	fmin, fmax float64
	ranged     bool
	points     int
	label      string
	mode       Mode
}

func defaultConfig() config {
	return config{points: DefaultPoints, mode: MagnitudeDB}
}

// Option configures Evaluate and Compare.
type Option func(*config)

// WithRange limits the evaluated band to [fmin, fmax] Hz. The default is
// DC to Nyquist.
func WithRange(fmin, fmax float64) Option {
	return func(c *config) {
		c.fmin, c.fmax, c.ranged = fmin, fmax, true
	}
}

// WithPoints sets the number of uniformly spaced frequency points.
func WithPoints(n int) Option {
	return func(c *config) { c.points = n }
}

// WithLabel names the curve.
func WithLabel(label string) Option {
	return func(c *config) { c.label = label }
}

// WithMode sets the curve's default view.
func WithMode(m Mode) Option {
	return func(c *config) { c.mode = m }
}
