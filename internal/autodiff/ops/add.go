package ops

// AddOp represents addition: out = a + b.
type AddOp struct{}

// Name returns "add".
func (AddOp) Name() string { return "add" }

// Arity returns 2.
func (AddOp) Arity() int { return 2 }

// Forward returns a + b.
func (AddOp) Forward(inputs []float64) float64 {
	return inputs[0] + inputs[1]
}

// Backward passes the output gradient through unchanged to both inputs.
func (AddOp) Backward(_ []float64, _, outputGrad float64, grads []float64) {
	grads[0] = outputGrad
	grads[1] = outputGrad
}
