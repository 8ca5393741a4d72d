package optim

import (
	"fmt"

	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/perceptron/internal/matrix"
	"github.com/born-ml/perceptron/internal/nn"
)

// DefaultEpsilon is the finite-difference step used when none is configured.
const DefaultEpsilon = 1e-4

// FiniteDifference estimates every partial derivative numerically with the
// forward difference
//
//	K * (Cost(w + ε) - Cost(w)) / ε
//
// where K is the output width, perturbing one weight at a time and restoring
// it afterwards. Bias weights are covered because they are ordinary weights
// in the last row.
//
// It costs one full dataset evaluation per weight and is meant for
// validating Backprop, not for training at scale.
type FiniteDifference struct {
	Epsilon float64 // Step size (default: DefaultEpsilon)
}

// Name returns "finite-difference".
func (FiniteDifference) Name() string { return FiniteDifferenceName }

func (f FiniteDifference) step() float64 {
	if f.Epsilon == 0 {
		return DefaultEpsilon
	}
	return f.Epsilon
}

// Gradient implements Strategy.
func (f FiniteDifference) Gradient(net *nn.Network, data nn.Dataset, grads []*matrix.Matrix) error {
	eps := f.step()
	if eps < 0 {
		return fmt.Errorf("%w: epsilon %g", ErrInvalidConfig, eps)
	}
	if len(grads) != net.NumLayers() {
		return fmt.Errorf("%w: %d gradient matrices for %d layers", nn.ErrShapeMismatch, len(grads), net.NumLayers())
	}

	baseline, err := net.Cost(data)
	if err != nil {
		return err
	}
	scale := float64(net.OutputSize())
	settings := &fd.Settings{
		Formula:     fd.Forward,
		Step:        eps,
		OriginKnown: true,
		OriginValue: baseline,
	}

	for li, l := range net.Layers() {
		w := l.Weights()
		g := grads[li]
		if !g.SameShape(w) {
			return fmt.Errorf("layer %d: %w: gradient is %dx%d, weights are %dx%d",
				li, nn.ErrShapeMismatch, g.Rows(), g.Cols(), w.Rows(), w.Cols())
		}
		for r := 0; r < w.Rows(); r++ {
			row := w.RawRow(r)
			for c, orig := range row {
				var costErr error
				d := fd.Derivative(func(x float64) float64 {
					row[c] = x
					cost, err := net.Cost(data)
					if err != nil && costErr == nil {
						costErr = err
					}
					return cost
				}, orig, settings)
				row[c] = orig
				if costErr != nil {
					return fmt.Errorf("layer %d weight (%d, %d): %w", li, r, c, costErr)
				}
				g.Set(r, c, scale*d)
			}
		}
	}
	return nil
}
