package ops

import "math"

// SigmoidOp represents the sigmoid activation: σ(x) = 1 / (1 + exp(-x)).
type SigmoidOp struct{}

// Name returns "sigmoid".
func (SigmoidOp) Name() string { return "sigmoid" }

// Arity returns 1.
func (SigmoidOp) Arity() int { return 1 }

// Forward returns σ(x).
func (SigmoidOp) Forward(inputs []float64) float64 {
	return 1 / (1 + math.Exp(-inputs[0]))
}

// Backward computes the gradient for sigmoid.
//
// Since the output σ(x) is already known:
// grad_input = grad_output * output * (1 - output).
func (SigmoidOp) Backward(_ []float64, output, outputGrad float64, grads []float64) {
	grads[0] = outputGrad * output * (1 - output)
}
