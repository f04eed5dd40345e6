package zpoly

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEval_MatchesDirectSum(t *testing.T) {
	c := []float64{0.5, -0.25, 0.125, 2}
	for _, w := range []float64{0, 0.3, 1.2, math.Pi} {
		var want complex128
		for n, v := range c {
			want += complex(v, 0) * cmplx.Exp(complex(0, -w*float64(n)))
		}
		assert.InDelta(t, 0, cmplx.Abs(Eval(c, w)-want), 1e-14)
	}
}

func TestGroupDelay_PureDelay(t *testing.T) {
	// z^-3 delays every frequency by exactly 3 samples.
	c := []float64{0, 0, 0, 1}
	for _, w := range []float64{0.1, 1, 3} {
		d, singular := GroupDelay(c, w)
		assert.False(t, singular)
		assert.InDelta(t, 3, d, 1e-12)
	}
}

func TestGroupDelay_SymmetricIsHalfLength(t *testing.T) {
	c := []float64{1, 2, 3, 2, 1}
	d, singular := GroupDelay(c, 0.4)
	assert.False(t, singular)
	assert.InDelta(t, 2, d, 1e-12)
}

func TestGroupDelay_SingularAtUnitCircleZero(t *testing.T) {
	// 1 + z^-1 vanishes at w = pi.
	d, singular := GroupDelay([]float64{1, 1}, math.Pi)
	assert.True(t, singular)
	assert.True(t, math.IsNaN(d))
}

func TestRationalGroupDelay_OnePole(t *testing.T) {
	// H = 1/(1 - p z^-1): tau(0) = -p/(1-p).
	p := 0.5
	d, singular := RationalGroupDelay([]float64{1}, []float64{1, -p}, 0)
	assert.False(t, singular)
	assert.InDelta(t, p/(1-p), d, 1e-12)
}

func TestOmega(t *testing.T) {
	assert.InDelta(t, math.Pi, Omega(24000, 48000), 1e-15)
}
