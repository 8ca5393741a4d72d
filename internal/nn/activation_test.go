package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSigmoid_Range(t *testing.T) {
	for x := -30.0; x <= 30.0; x += 0.25 {
		s := Sigmoid(x)
		assert.Greater(t, s, 0.0, "x=%v", x)
		assert.Less(t, s, 1.0, "x=%v", x)
	}
	assert.Equal(t, 0.5, Sigmoid(0))
}

func TestSigmoid_Symmetry(t *testing.T) {
	for _, x := range []float64{0.1, 1, 2.5, 7} {
		assert.InDelta(t, 1.0, Sigmoid(x)+Sigmoid(-x), 1e-15)
	}
}

func TestSigmoidDerivative_MatchesAnalytic(t *testing.T) {
	for _, x := range []float64{-4, -1, -0.3, 0, 0.3, 1, 4} {
		a := Sigmoid(x)
		assert.Equal(t, a*(1-a), SigmoidDerivative(a))

		// Same value as the derivative of σ at the pre-activation x.
		want := math.Exp(-x) / ((1 + math.Exp(-x)) * (1 + math.Exp(-x)))
		assert.InDelta(t, want, SigmoidDerivative(a), 1e-12)
	}
	assert.Equal(t, 0.25, SigmoidDerivative(0.5))
}
