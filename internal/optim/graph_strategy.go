package optim

import (
	"fmt"

	"github.com/born-ml/perceptron/internal/autodiff"
	"github.com/born-ml/perceptron/internal/matrix"
	"github.com/born-ml/perceptron/internal/nn"
)

// Autodiff differentiates the cost by building it as a scalar expression
// graph over every weight and running reverse-mode autodiff.
//
// The graph sums squared errors over outputs and averages over examples, so
// it yields the same objective gradient as Backprop. The graph grows with
// weights × examples, so it is a cross-check, not a trainer for large
// networks.
type Autodiff struct{}

// Name returns "autodiff".
func (Autodiff) Name() string { return AutodiffName }

// Gradient implements Strategy.
func (Autodiff) Gradient(net *nn.Network, data nn.Dataset, grads []*matrix.Matrix) error {
	if err := data.Validate(net.InputSize(), net.OutputSize()); err != nil {
		return err
	}
	if len(grads) != net.NumLayers() {
		return fmt.Errorf("%w: %d gradient matrices for %d layers", nn.ErrShapeMismatch, len(grads), net.NumLayers())
	}

	g := autodiff.New()
	weights := make([][]autodiff.NodeID, net.NumLayers())
	for li, l := range net.Layers() {
		w := l.Weights()
		if !grads[li].SameShape(w) {
			return fmt.Errorf("layer %d: %w: gradient is %dx%d, weights are %dx%d",
				li, nn.ErrShapeMismatch, grads[li].Rows(), grads[li].Cols(), w.Rows(), w.Cols())
		}
		rows, cols := w.Dims()
		ids := make([]autodiff.NodeID, 0, rows*cols)
		for r := 0; r < rows; r++ {
			for _, v := range w.RawRow(r) {
				ids = append(ids, g.Value(v))
			}
		}
		weights[li] = ids
	}

	one := g.Value(1)
	total := autodiff.InvalidNode
	for _, ex := range data {
		acts := make([]autodiff.NodeID, 0, len(ex.Input)+1)
		for _, v := range ex.Input {
			acts = append(acts, g.Value(v))
		}
		for li, l := range net.Layers() {
			in := append(acts, one)
			cols := l.OutputSize()
			out := make([]autodiff.NodeID, cols)
			for c := range out {
				z := g.Mul(in[0], weights[li][c])
				for r := 1; r < len(in); r++ {
					z = g.Add(z, g.Mul(in[r], weights[li][r*cols+c]))
				}
				out[c] = g.Sigmoid(z)
			}
			acts = out
		}
		for i, a := range acts {
			d := g.Sub(a, g.Value(ex.Expected[i]))
			sq := g.Mul(d, d)
			if total == autodiff.InvalidNode {
				total = sq
			} else {
				total = g.Add(total, sq)
			}
		}
	}
	cost := g.Mul(total, g.Value(1/float64(len(data))))

	if err := g.Backward(cost); err != nil {
		return err
	}
	for li, ids := range weights {
		cols := grads[li].Cols()
		for k, id := range ids {
			v, err := g.Grad(id)
			if err != nil {
				return err
			}
			grads[li].Set(k/cols, k%cols, v)
		}
	}
	return nil
}
