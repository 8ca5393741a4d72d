// Package optim implements training strategies and the gradient descent
// trainer for sigmoid networks.
//
// This package provides:
//   - Strategy interface: produces one gradient matrix per layer
//   - Backprop: analytic backpropagation
//   - FiniteDifference: forward-difference numeric gradient
//   - ParallelBackprop: data-parallel backpropagation over worker replicas
//   - Autodiff: reverse-mode differentiation of the cost expression graph
//   - Trainer: applies weight -= rate * gradient for a number of iterations
//
// Example usage:
//
//	net, _ := nn.NewNetwork([]int{2, 3, 1}, nn.Random())
//	trainer := optim.NewTrainer(optim.Config{
//	    LearningRate: 0.5,
//	    Iterations:   1000,
//	    Strategy:     optim.Backprop{},
//	})
//	result, err := trainer.Train(net, data)
package optim

import (
	"errors"
	"fmt"

	"github.com/born-ml/perceptron/internal/matrix"
	"github.com/born-ml/perceptron/internal/nn"
)

var (
	// ErrUnknownStrategy is returned by NewStrategy for an unrecognized name.
	ErrUnknownStrategy = errors.New("optim: unknown strategy")

	// ErrGradientMismatch is returned by CheckGradients when the analytic and
	// numeric gradients disagree by more than the tolerance.
	ErrGradientMismatch = errors.New("optim: gradient mismatch")

	// ErrInvalidConfig is returned for negative iteration counts, epsilons
	// or tolerances.
	ErrInvalidConfig = errors.New("optim: invalid configuration")
)

// Strategy names accepted by NewStrategy.
const (
	BackpropName         = "backprop"
	FiniteDifferenceName = "finite-difference"
	ParallelBackpropName = "parallel-backprop"
	AutodiffName         = "autodiff"
)

// Strategy computes the gradient of the training objective with respect to
// every weight of a network.
//
// The objective is each example's squared error summed over output neurons,
// averaged over the dataset: OutputSize() × Network.Cost. It is the quantity
// the layers' delta rule and Network.FlushWeights descend, so every strategy
// produces the same update for the same learning rate.
//
// Gradient writes one matrix per layer into grads, each shaped like that
// layer's weights (bias row last). The caller applies the learning rate.
// Implementations leave the network's weights unchanged.
type Strategy interface {
	// Name identifies the strategy in logs and progress reports.
	Name() string

	// Gradient fills grads (see Network.NewGradientSet) for data.
	Gradient(net *nn.Network, data nn.Dataset, grads []*matrix.Matrix) error
}

// StrategyConfig selects and parameterizes a strategy by name.
type StrategyConfig struct {
	Name    string  // One of the *Name constants (default: backprop)
	Epsilon float64 // Finite-difference step (default: DefaultEpsilon)
	Workers int     // Parallel workers (default: number of CPUs)
}

// NewStrategy builds the strategy described by cfg.
func NewStrategy(cfg StrategyConfig) (Strategy, error) {
	switch cfg.Name {
	case "", BackpropName:
		return Backprop{}, nil
	case FiniteDifferenceName:
		if cfg.Epsilon < 0 {
			return nil, fmt.Errorf("%w: epsilon %g", ErrInvalidConfig, cfg.Epsilon)
		}
		return FiniteDifference{Epsilon: cfg.Epsilon}, nil
	case ParallelBackpropName:
		if cfg.Workers < 0 {
			return nil, fmt.Errorf("%w: %d workers", ErrInvalidConfig, cfg.Workers)
		}
		return NewParallelBackprop(cfg.Workers), nil
	case AutodiffName:
		return Autodiff{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, cfg.Name)
	}
}
