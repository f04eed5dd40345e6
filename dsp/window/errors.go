package window

import (
	"errors"
	"fmt"
	"math"
)

var errMismatchedLength = errors.New("window: samples and coefficients must have same length")

func validateKaiser(size int, beta float64) error {
	if size <= 0 {
		return fmt.Errorf("window: size must be > 0: %d", size)
	}

	if beta < 0 || math.IsNaN(beta) {
		return fmt.Errorf("window: kaiser beta must be >= 0: %f", beta)
	}

	return nil
}

func validateTransition(width float64) error {
	if !(width > 0 && width < 0.5) {
		return fmt.Errorf("window: transition width must be in (0, 0.5): %f", width)
	}

	return nil
}
