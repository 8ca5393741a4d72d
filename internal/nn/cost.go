package nn

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// OutputError returns the mean squared error between the cached output of
// the last Forward and expected.
func (n *Network) OutputError(expected []float64) (float64, error) {
	if len(expected) != n.OutputSize() {
		return 0, fmt.Errorf("%w: expected vector has %d values, network has %d outputs",
			ErrShapeMismatch, len(expected), n.OutputSize())
	}
	floats.SubTo(n.scratch, n.outputLayer().Output(), expected)
	return floats.Dot(n.scratch, n.scratch) / float64(len(n.scratch)), nil
}

// Cost returns the mean over the dataset of each example's mean squared
// error. Every example is forwarded first, so the result never depends on
// stale cached outputs.
func (n *Network) Cost(data Dataset) (float64, error) {
	if err := data.Validate(n.InputSize(), n.OutputSize()); err != nil {
		return 0, err
	}
	var total float64
	for _, ex := range data {
		if _, err := n.Forward(ex.Input); err != nil {
			return 0, err
		}
		e, err := n.OutputError(ex.Expected)
		if err != nil {
			return 0, err
		}
		total += e
	}
	return total / float64(len(data)), nil
}
