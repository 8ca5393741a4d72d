package nn

import "math"

// Sigmoid is the logistic function σ(x) = 1 / (1 + e^-x).
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// SigmoidDerivative returns σ'(z) expressed through the already activated
// output a = σ(z): a * (1 - a).
//
// The backward pass always feeds the cached forward output here and never
// recomputes σ of the pre-activation.
func SigmoidDerivative(a float64) float64 {
	return a * (1.0 - a)
}
