package multirate

// directForm runs an arbitrary-order rational transfer function in
// direct-form II transposed. a[0] is assumed to be 1.
type directForm struct {
	b, a  []float64
	state []float64
}

func newDirectForm(b, a []float64) *directForm {
	n := max(len(b), len(a))

	d := &directForm{
		b:     make([]float64, n),
		a:     make([]float64, n),
		state: make([]float64, n-1),
	}
	copy(d.b, b)
	copy(d.a, a)

	return d
}

func (d *directForm) processSample(x float64) float64 {
	y := d.b[0]*x
	if len(d.state) > 0 {
		y += d.state[0]
	}

	last := len(d.state) - 1
	for i := range last {
		d.state[i] = d.state[i+1] + d.b[i+1]*x - d.a[i+1]*y
	}

	if last >= 0 {
		d.state[last] = d.b[last+1]*x - d.a[last+1]*y
	}

	return y
}

func (d *directForm) processBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = d.processSample(x)
	}
}

func (d *directForm) reset() {
	clear(d.state)
}
