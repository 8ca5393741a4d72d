package nn

import (
	"errors"

	"github.com/born-ml/perceptron/internal/matrix"
)

// Training engine errors. All of them are fatal for the current call: the
// engine never continues with partially updated numeric state.
var (
	// ErrShapeMismatch is returned when vector or matrix dimensions disagree.
	// It is the same sentinel as matrix.ErrShapeMismatch.
	ErrShapeMismatch = matrix.ErrShapeMismatch

	// ErrEmptyDataset is returned when cost or gradients are requested for a
	// dataset with no examples.
	ErrEmptyDataset = errors.New("nn: empty dataset")

	// ErrInvalidLayerSpec is returned for fewer than two layer sizes or a
	// non-positive layer size.
	ErrInvalidLayerSpec = errors.New("nn: invalid layer sizes")

	// ErrNoAccumulatedGradient is returned when weights are flushed before any
	// example gradient was accumulated (the average would divide by zero).
	ErrNoAccumulatedGradient = errors.New("nn: no accumulated gradient to flush")

	// ErrNotForwarded is returned when a delta is requested from a layer that
	// has no cached forward output.
	ErrNotForwarded = errors.New("nn: layer has not been forwarded")

	// ErrDeltaNotComputed is returned when a gradient is accumulated, or a
	// delta backpropagated, from a layer whose delta is stale.
	ErrDeltaNotComputed = errors.New("nn: layer delta has not been computed")
)
