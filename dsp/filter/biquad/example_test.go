package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
)

func ExampleSection_ProcessSample() {
	s := biquad.NewSection(biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	})

	for i := range 4 {
		var x float64
		if i == 0 {
			x = 1
		}

		fmt.Printf("y[%d] = %.6f\n", i, s.ProcessSample(x))
	}
	// Output:
	// y[0] = 0.250000
	// y[1] = 0.550000
	// y[2] = 0.350000
	// y[3] = 0.048000
}

func ExampleCascade_Rational() {
	c := biquad.Cascade{
		{B0: 1, B1: 2, B2: 1, A1: -0.5, A2: 0},
		{B0: 1, B1: 1, A1: 0.25},
	}

	b, a := c.Rational()
	fmt.Println(b, a, c.Order())
	// Output:
	// [1 3 3 1] [1 -0.25 -0.125] 3
}
