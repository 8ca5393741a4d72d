// Package ops defines the scalar operations of the autodiff graph.
//
// Each operation implements the Operation interface, which provides:
//   - Forward: the value of the operation for the given input values
//   - Backward: the local gradient contribution to each input
//
// Supported operations:
//   - AddOp: addition (d(a+b)/da = 1, d(a+b)/db = 1)
//   - SubOp: subtraction (d(a-b)/da = 1, d(a-b)/db = -1)
//   - MulOp: multiplication (d(a*b)/da = b, d(a*b)/db = a)
//   - SigmoidOp: logistic sigmoid (dσ(x)/dx = σ(x) * (1 - σ(x)))
package ops

// Operation is a differentiable scalar function of a fixed number of inputs.
type Operation interface {
	// Name returns a short identifier used in graph dumps.
	Name() string

	// Arity returns the number of inputs.
	Arity() int

	// Forward computes the output value.
	Forward(inputs []float64) float64

	// Backward writes outputGrad * ∂output/∂inputs[i] into grads[i].
	// output is the value previously returned by Forward for inputs.
	Backward(inputs []float64, output, outputGrad float64, grads []float64)
}
