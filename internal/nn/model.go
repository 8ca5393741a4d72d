package nn

import (
	"fmt"

	"github.com/born-ml/perceptron/internal/matrix"
)

// Model is a snapshot of a network's parameters: one weight matrix per
// layer, each (inputSize+1) × outputSize with the bias weights in the last row.
//
// Models are what training hands to collaborators such as persistence or
// visualization. They never alias a live network.
type Model []*matrix.Matrix

// Sizes derives the declared layer sizes from the weight shapes.
//
// Returns ErrInvalidLayerSpec for an empty model and ErrShapeMismatch when
// consecutive layers do not chain.
func (m Model) Sizes() ([]int, error) {
	if len(m) == 0 {
		return nil, fmt.Errorf("%w: empty model", ErrInvalidLayerSpec)
	}
	sizes := make([]int, 0, len(m)+1)
	sizes = append(sizes, m[0].Rows()-1)
	for i, w := range m {
		rows, cols := w.Dims()
		if rows-1 != sizes[i] {
			return nil, fmt.Errorf("%w: layer %d takes %d inputs, previous layer has %d outputs",
				ErrShapeMismatch, i, rows-1, sizes[i])
		}
		sizes = append(sizes, cols)
	}
	return sizes, nil
}

// Clone returns a deep copy of m.
func (m Model) Clone() Model {
	out := make(Model, len(m))
	for i, w := range m {
		out[i] = w.Clone()
	}
	return out
}

// NewNetworkFromModel builds a network whose weights are copies of model's.
func NewNetworkFromModel(model Model) (*Network, error) {
	sizes, err := model.Sizes()
	if err != nil {
		return nil, err
	}
	net, err := NewNetwork(sizes, Constant(0))
	if err != nil {
		return nil, err
	}
	if err := net.LoadModel(model); err != nil {
		return nil, err
	}
	return net, nil
}
