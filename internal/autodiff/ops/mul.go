package ops

// MulOp represents multiplication: out = a * b.
type MulOp struct{}

// Name returns "mul".
func (MulOp) Name() string { return "mul" }

// Arity returns 2.
func (MulOp) Arity() int { return 2 }

// Forward returns a * b.
func (MulOp) Forward(inputs []float64) float64 {
	return inputs[0] * inputs[1]
}

// Backward computes the product rule:
//
//	grad_a = grad * b
//	grad_b = grad * a
func (MulOp) Backward(inputs []float64, _, outputGrad float64, grads []float64) {
	grads[0] = outputGrad * inputs[1]
	grads[1] = outputGrad * inputs[0]
}
