package nn

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/perceptron/internal/matrix"
)

// Network is an ordered sequence of fully connected sigmoid layers.
//
// All buffers used by Forward and Backward (layer outputs, deltas, gradient
// accumulators, the bias-augmented input row and the error scratch vector)
// are allocated once by NewNetwork and reused for every example.
//
// A Network is not safe for concurrent use. Data-parallel training uses one
// Clone per worker and merges their accumulators with MergeGradients.
//
// Example:
//
//	net, err := nn.NewNetwork([]int{2, 3, 1}, nn.Random())
//	if err != nil {
//	    return err
//	}
//	costs, err := net.Train(data, 1000, 0.5)
type Network struct {
	sizes  []int
	layers []*Layer

	input   *matrix.Matrix // 1 × (in+1), trailing bias 1
	scratch []float64      // output-width error buffer
}

// NewNetwork creates a network for the declared layer sizes
// (input, hidden..., output). Every weight, bias weights included, is
// drawn from gen.
//
// Returns ErrInvalidLayerSpec for fewer than two sizes or a non-positive size.
func NewNetwork(sizes []int, gen Generator) (*Network, error) {
	if len(sizes) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 sizes, got %d", ErrInvalidLayerSpec, len(sizes))
	}
	for i, s := range sizes {
		if s <= 0 {
			return nil, fmt.Errorf("%w: size %d at index %d", ErrInvalidLayerSpec, s, i)
		}
	}

	layers := make([]*Layer, len(sizes)-1)
	for i := range layers {
		l, err := NewLayer(sizes[i], sizes[i+1], gen)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		layers[i] = l
	}

	input, err := matrix.Filled(1, sizes[0]+1, 1)
	if err != nil {
		return nil, err
	}

	return &Network{
		sizes:   append([]int(nil), sizes...),
		layers:  layers,
		input:   input,
		scratch: make([]float64, sizes[len(sizes)-1]),
	}, nil
}

// NewRandomNetwork creates a network with weights drawn from U[0, 1).
func NewRandomNetwork(sizes []int) (*Network, error) {
	return NewNetwork(sizes, Random())
}

// Sizes returns a copy of the declared layer sizes.
func (n *Network) Sizes() []int {
	return append([]int(nil), n.sizes...)
}

// InputSize returns the width of the input layer.
func (n *Network) InputSize() int { return n.sizes[0] }

// OutputSize returns the width of the output layer.
func (n *Network) OutputSize() int { return n.sizes[len(n.sizes)-1] }

// NumLayers returns the number of layer transitions (len(Sizes()) - 1).
func (n *Network) NumLayers() int { return len(n.layers) }

// Layer returns the i-th layer.
func (n *Network) Layer(i int) *Layer { return n.layers[i] }

// Layers returns the layers in forward order. The slice must not be modified.
func (n *Network) Layers() []*Layer { return n.layers }

func (n *Network) outputLayer() *Layer { return n.layers[len(n.layers)-1] }

func (n *Network) loadInput(input []float64) error {
	if len(input) != n.InputSize() {
		return fmt.Errorf("%w: input has %d values, network takes %d",
			ErrShapeMismatch, len(input), n.InputSize())
	}
	copy(n.input.RawRow(0), input)
	return nil
}

// Forward folds input through every layer and returns the final activations.
//
// The returned slice aliases the output layer's buffer: it stays valid until
// the next Forward. Copy it to keep it.
func (n *Network) Forward(input []float64) ([]float64, error) {
	if err := n.loadInput(input); err != nil {
		return nil, err
	}
	prev := n.input
	for i, l := range n.layers {
		out, err := l.Forward(prev)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		prev = out
	}
	return n.outputLayer().Output(), nil
}

// Backward computes every layer's delta for the example (input, expected)
// and accumulates its gradient contribution. Forward must have been called
// with the same input first, and each Forward backs exactly one Backward.
//
// Deltas are computed from the last layer to the first, since each needs the
// next layer's delta. Gradients are then accumulated from the first layer to
// the last, since each needs the previous layer's output.
func (n *Network) Backward(input, expected []float64) error {
	if len(input) != n.InputSize() {
		return fmt.Errorf("%w: input has %d values, network takes %d",
			ErrShapeMismatch, len(input), n.InputSize())
	}
	if !floats.Same(input, n.input.RawRow(0)[:n.InputSize()]) {
		return fmt.Errorf("%w: input differs from the last forwarded input", ErrNotForwarded)
	}

	last := len(n.layers) - 1
	if err := n.layers[last].ComputeOutputDelta(expected); err != nil {
		return fmt.Errorf("layer %d: %w", last, err)
	}
	for i := last - 1; i >= 0; i-- {
		if err := n.layers[i].ComputeDelta(n.layers[i+1]); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}

	prev := n.input
	for i, l := range n.layers {
		if err := l.AccumulateGradient(prev); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
		prev = l.OutputBuffer()
	}
	return nil
}

// FlushWeights applies the accumulated, batch-averaged gradient step on
// every layer.
func (n *Network) FlushWeights(learningRate float64) error {
	for i, l := range n.layers {
		if err := l.Flush(learningRate); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}

// Accumulate runs Forward and Backward over every example in data, summing
// gradients into the layer accumulators without touching weights.
func (n *Network) Accumulate(data Dataset) error {
	for i, ex := range data {
		if _, err := n.Forward(ex.Input); err != nil {
			return fmt.Errorf("example %d: %w", i, err)
		}
		if err := n.Backward(ex.Input, ex.Expected); err != nil {
			return fmt.Errorf("example %d: %w", i, err)
		}
	}
	return nil
}

// Train runs full-batch gradient descent: each iteration accumulates the
// gradient of every example, flushes the weights once and records the
// dataset cost after the update.
//
// Returns the per-iteration costs.
func (n *Network) Train(data Dataset, iterations int, learningRate float64) ([]float64, error) {
	if iterations < 0 {
		return nil, fmt.Errorf("nn: negative iteration count %d", iterations)
	}
	if err := data.Validate(n.InputSize(), n.OutputSize()); err != nil {
		return nil, err
	}

	costs := make([]float64, 0, iterations)
	for it := 0; it < iterations; it++ {
		if err := n.Accumulate(data); err != nil {
			return costs, fmt.Errorf("iteration %d: %w", it, err)
		}
		if err := n.FlushWeights(learningRate); err != nil {
			return costs, fmt.Errorf("iteration %d: %w", it, err)
		}
		cost, err := n.Cost(data)
		if err != nil {
			return costs, fmt.Errorf("iteration %d: %w", it, err)
		}
		costs = append(costs, cost)
	}
	return costs, nil
}

// NewGradientSet allocates zeroed matrices shaped like each layer's weights.
func (n *Network) NewGradientSet() []*matrix.Matrix {
	grads := make([]*matrix.Matrix, len(n.layers))
	for i, l := range n.layers {
		// Layer shapes are validated at construction.
		g, _ := matrix.Zeros(l.inputSize+1, l.outputSize)
		grads[i] = g
	}
	return grads
}

func (n *Network) checkGradientSet(grads []*matrix.Matrix) error {
	if len(grads) != len(n.layers) {
		return fmt.Errorf("%w: %d gradient matrices for %d layers", ErrShapeMismatch, len(grads), len(n.layers))
	}
	return nil
}

// TakeGradients moves every layer's batch-averaged gradient into grads and
// resets the accumulators.
func (n *Network) TakeGradients(grads []*matrix.Matrix) error {
	if err := n.checkGradientSet(grads); err != nil {
		return err
	}
	for i, l := range n.layers {
		if err := l.TakeGradient(grads[i]); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}

// ApplyGradients performs weight -= learningRate * grads[i] on every layer.
func (n *Network) ApplyGradients(grads []*matrix.Matrix, learningRate float64) error {
	if err := n.checkGradientSet(grads); err != nil {
		return err
	}
	for i, l := range n.layers {
		if err := l.ApplyGradient(grads[i], learningRate); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}

// MergeGradients sums other's accumulators into n and resets other's.
// Both networks must have the same layer sizes.
func (n *Network) MergeGradients(other *Network) error {
	if err := n.checkSameTopology(other); err != nil {
		return err
	}
	for i, l := range n.layers {
		if err := l.MergeGradient(other.layers[i]); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}

// ResetGradients discards every layer's accumulated gradient.
func (n *Network) ResetGradients() {
	for _, l := range n.layers {
		l.ResetGradient()
	}
}

func (n *Network) checkSameTopology(other *Network) error {
	if len(n.sizes) != len(other.sizes) {
		return fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, n.sizes, other.sizes)
	}
	for i := range n.sizes {
		if n.sizes[i] != other.sizes[i] {
			return fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, n.sizes, other.sizes)
		}
	}
	return nil
}

// Model returns a deep copy of every layer's weights.
func (n *Network) Model() Model {
	model := make(Model, len(n.layers))
	for i, l := range n.layers {
		model[i] = l.weights.Clone()
	}
	return model
}

// LoadModel overwrites the network's weights with copies of model's.
func (n *Network) LoadModel(model Model) error {
	if len(model) != len(n.layers) {
		return fmt.Errorf("%w: model has %d layers, network has %d", ErrShapeMismatch, len(model), len(n.layers))
	}
	for i, l := range n.layers {
		if !l.weights.SameShape(model[i]) {
			return fmt.Errorf("layer %d: %w: model weights are %dx%d, network weights are %dx%d",
				i, ErrShapeMismatch, model[i].Rows(), model[i].Cols(), l.weights.Rows(), l.weights.Cols())
		}
	}
	for i, l := range n.layers {
		// Shapes checked above.
		_ = l.weights.CopyFrom(model[i])
	}
	return nil
}

// CopyWeightsFrom overwrites n's weights with other's.
func (n *Network) CopyWeightsFrom(other *Network) error {
	if err := n.checkSameTopology(other); err != nil {
		return err
	}
	for i, l := range n.layers {
		if err := l.weights.CopyFrom(other.layers[i].weights); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns an independent network with the same sizes and weights and
// fresh buffers. No storage is shared with n.
func (n *Network) Clone() *Network {
	// Sizes were validated when n was built.
	c, _ := NewNetwork(n.sizes, Constant(0))
	_ = c.CopyWeightsFrom(n)
	return c
}
