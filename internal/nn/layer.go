package nn

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/perceptron/internal/matrix"
)

// layerState tracks where a layer is in a training step:
//
//	idle -> forwarded -> deltaComputed -> accumulated -> (next example) forwarded ...
//
// Flush returns the layer to idle.
type layerState int

const (
	stateIdle layerState = iota
	stateForwarded
	stateDeltaComputed
	stateAccumulated
)

// Layer is a fully connected sigmoid layer.
//
// The weight matrix has shape (inputSize+1) × outputSize. Row r < inputSize
// holds the weights from input neuron r, the last row holds the bias weights,
// which are multiplied by a constant 1 input.
//
// The output buffer has shape 1 × (outputSize+1). Its trailing cell is the
// constant 1 consumed by the next layer's bias row and is never written by
// Forward, so the buffer can be fed to the next layer unchanged.
type Layer struct {
	inputSize  int
	outputSize int

	weights  *matrix.Matrix // (in+1) × out
	gradient *matrix.Matrix // (in+1) × out, summed over the batch
	examples int            // examples accumulated into gradient

	output     *matrix.Matrix // 1 × (out+1), trailing bias 1
	activation *matrix.Matrix // 1 × out view of output
	delta      *matrix.Matrix // 1 × out

	state layerState
}

// NewLayer creates a layer mapping inputSize neurons to outputSize neurons.
// Weights, including bias weights, are drawn from gen.
func NewLayer(inputSize, outputSize int, gen Generator) (*Layer, error) {
	if inputSize <= 0 || outputSize <= 0 {
		return nil, fmt.Errorf("%w: layer %d -> %d", ErrInvalidLayerSpec, inputSize, outputSize)
	}

	weights, err := matrix.New(inputSize+1, outputSize, gen)
	if err != nil {
		return nil, err
	}
	gradient, err := matrix.Zeros(inputSize+1, outputSize)
	if err != nil {
		return nil, err
	}
	output, err := matrix.Filled(1, outputSize+1, 1)
	if err != nil {
		return nil, err
	}
	delta, err := matrix.Zeros(1, outputSize)
	if err != nil {
		return nil, err
	}

	return &Layer{
		inputSize:  inputSize,
		outputSize: outputSize,
		weights:    weights,
		gradient:   gradient,
		output:     output,
		activation: output.View(0, 1, 0, outputSize),
		delta:      delta,
	}, nil
}

// InputSize returns the number of input neurons (excluding bias).
func (l *Layer) InputSize() int { return l.inputSize }

// OutputSize returns the number of output neurons.
func (l *Layer) OutputSize() int { return l.outputSize }

// Weights returns the weight matrix. The last row holds the bias weights.
//
// The matrix is owned by the layer; callers must treat it as read-only.
func (l *Layer) Weights() *matrix.Matrix { return l.weights }

// Gradient returns the gradient accumulator (a sum, not yet averaged).
func (l *Layer) Gradient() *matrix.Matrix { return l.gradient }

// Examples returns the number of examples accumulated since the last flush.
func (l *Layer) Examples() int { return l.examples }

// Output returns the activations cached by the last Forward.
// The slice aliases the layer's buffer and is overwritten by the next Forward.
func (l *Layer) Output() []float64 { return l.activation.RawRow(0) }

// Delta returns the error signal computed by the last delta computation.
func (l *Layer) Delta() []float64 { return l.delta.RawRow(0) }

// OutputBuffer returns the bias-augmented 1 × (out+1) output buffer, which is
// the input expected by the next layer's Forward.
func (l *Layer) OutputBuffer() *matrix.Matrix { return l.output }

// Forward computes sigmoid(input × weights) into the layer's output buffer.
//
// input must be a bias-augmented 1 × (inputSize+1) row whose last cell is 1.
// Returns the output buffer for chaining into the next layer.
func (l *Layer) Forward(input *matrix.Matrix) (*matrix.Matrix, error) {
	if err := matrix.MultiplyInto(input, l.weights, l.activation); err != nil {
		return nil, err
	}
	out := l.activation.RawRow(0)
	for i, z := range out {
		out[i] = Sigmoid(z)
	}
	l.state = stateForwarded
	return l.output, nil
}

// ComputeOutputDelta computes the output layer error signal for the expected
// vector y:
//
//	delta[i] = 2 * (a[i] - y[i]) * a[i] * (1 - a[i])
//
// The layer must have been forwarded since its last delta computation.
func (l *Layer) ComputeOutputDelta(expected []float64) error {
	if l.state != stateForwarded {
		return ErrNotForwarded
	}
	if len(expected) != l.outputSize {
		return fmt.Errorf("%w: expected vector has %d values, layer has %d outputs",
			ErrShapeMismatch, len(expected), l.outputSize)
	}

	a := l.activation.RawRow(0)
	delta := l.delta.RawRow(0)
	for i := range delta {
		delta[i] = 2 * (a[i] - expected[i]) * SigmoidDerivative(a[i])
	}
	l.state = stateDeltaComputed
	return nil
}

// ComputeDelta backpropagates next's error signal into this layer:
//
//	delta[i] = a[i] * (1 - a[i]) * Σ_k next.delta[k] * next.weights[i][k]
//
// next must be the layer directly after l with an up to date delta, and l
// must have been forwarded since its last delta computation.
func (l *Layer) ComputeDelta(next *Layer) error {
	if l.state != stateForwarded {
		return ErrNotForwarded
	}
	if next.inputSize != l.outputSize {
		return fmt.Errorf("%w: next layer takes %d inputs, layer has %d outputs",
			ErrShapeMismatch, next.inputSize, l.outputSize)
	}
	if !next.hasDelta() {
		return fmt.Errorf("next layer: %w", ErrDeltaNotComputed)
	}

	a := l.activation.RawRow(0)
	delta := l.delta.RawRow(0)
	nextDelta := next.delta.RawRow(0)
	for i := range delta {
		delta[i] = SigmoidDerivative(a[i]) * floats.Dot(nextDelta, next.weights.RawRow(i))
	}
	l.state = stateDeltaComputed
	return nil
}

func (l *Layer) hasDelta() bool {
	return l.state == stateDeltaComputed || l.state == stateAccumulated
}

// AccumulateGradient adds delta[c] * prev[r] to gradient[r][c] for every
// weight and counts one more example.
//
// prev is the bias-augmented output of the previous layer (or the network
// input), so the bias row receives delta[c] * 1.
func (l *Layer) AccumulateGradient(prev *matrix.Matrix) error {
	if l.state != stateDeltaComputed {
		return ErrDeltaNotComputed
	}
	rows, cols := prev.Dims()
	if rows != 1 || cols != l.inputSize+1 {
		return fmt.Errorf("%w: previous output is %dx%d, want 1x%d",
			ErrShapeMismatch, rows, cols, l.inputSize+1)
	}

	in := prev.RawRow(0)
	delta := l.delta.RawRow(0)
	for r, x := range in {
		floats.AddScaled(l.gradient.RawRow(r), x, delta)
	}
	l.examples++
	l.state = stateAccumulated
	return nil
}

// Flush applies the batch-averaged gradient step
//
//	weight -= learningRate * gradient / examples
//
// and resets the accumulator. Returns ErrNoAccumulatedGradient when nothing
// was accumulated since the last flush.
func (l *Layer) Flush(learningRate float64) error {
	if l.examples == 0 {
		return ErrNoAccumulatedGradient
	}
	scale := -learningRate / float64(l.examples)
	for r := 0; r <= l.inputSize; r++ {
		floats.AddScaled(l.weights.RawRow(r), scale, l.gradient.RawRow(r))
	}
	l.ResetGradient()
	return nil
}

// TakeGradient writes the batch-averaged gradient into dst and resets the
// accumulator. Same guard as Flush.
func (l *Layer) TakeGradient(dst *matrix.Matrix) error {
	if l.examples == 0 {
		return ErrNoAccumulatedGradient
	}
	if err := dst.CopyFrom(l.gradient); err != nil {
		return err
	}
	dst.Scale(1 / float64(l.examples))
	l.ResetGradient()
	return nil
}

// ApplyGradient performs weight -= learningRate * grad.
func (l *Layer) ApplyGradient(grad *matrix.Matrix, learningRate float64) error {
	if !l.weights.SameShape(grad) {
		return fmt.Errorf("%w: gradient is %dx%d, weights are %dx%d",
			ErrShapeMismatch, grad.Rows(), grad.Cols(), l.weights.Rows(), l.weights.Cols())
	}
	for r := 0; r <= l.inputSize; r++ {
		floats.AddScaled(l.weights.RawRow(r), -learningRate, grad.RawRow(r))
	}
	return nil
}

// MergeGradient sums other's accumulated gradient and example count into l
// and resets other. Used to combine per-worker accumulators before a single
// flush.
func (l *Layer) MergeGradient(other *Layer) error {
	if err := l.gradient.Add(other.gradient); err != nil {
		return err
	}
	l.examples += other.examples
	if l.examples > 0 {
		l.state = stateAccumulated
	}
	other.ResetGradient()
	return nil
}

// ResetGradient zeroes the accumulator and example count.
func (l *Layer) ResetGradient() {
	l.gradient.Zero()
	l.examples = 0
	l.state = stateIdle
}
