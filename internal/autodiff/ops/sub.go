package ops

// SubOp represents subtraction: out = a - b.
type SubOp struct{}

// Name returns "sub".
func (SubOp) Name() string { return "sub" }

// Arity returns 2.
func (SubOp) Arity() int { return 2 }

// Forward returns a - b.
func (SubOp) Forward(inputs []float64) float64 {
	return inputs[0] - inputs[1]
}

// Backward computes grad_a = grad, grad_b = -grad.
func (SubOp) Backward(_ []float64, _, outputGrad float64, grads []float64) {
	grads[0] = outputGrad
	grads[1] = -outputGrad
}
