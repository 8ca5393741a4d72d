package optim

import (
	"github.com/born-ml/perceptron/internal/matrix"
	"github.com/born-ml/perceptron/internal/nn"
)

// Backprop computes gradients analytically: every example is forwarded and
// backpropagated into the layer accumulators, then the batch average is
// taken out.
type Backprop struct{}

// Name returns "backprop".
func (Backprop) Name() string { return BackpropName }

// Gradient implements Strategy.
func (Backprop) Gradient(net *nn.Network, data nn.Dataset, grads []*matrix.Matrix) error {
	if err := data.Validate(net.InputSize(), net.OutputSize()); err != nil {
		return err
	}
	net.ResetGradients()
	if err := net.Accumulate(data); err != nil {
		net.ResetGradients()
		return err
	}
	return net.TakeGradients(grads)
}
