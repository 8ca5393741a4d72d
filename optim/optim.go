// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/perceptron/internal/nn"
	"github.com/born-ml/perceptron/internal/optim"
)

// Strategy computes the gradient of a network's cost on a dataset.
type Strategy = optim.Strategy

// StrategyConfig selects a strategy by name.
type StrategyConfig = optim.StrategyConfig

// Strategy names.
const (
	BackpropName         = optim.BackpropName
	FiniteDifferenceName = optim.FiniteDifferenceName
	ParallelBackpropName = optim.ParallelBackpropName
	AutodiffName         = optim.AutodiffName
)

// DefaultEpsilon is the finite-difference step used when none is set.
const DefaultEpsilon = optim.DefaultEpsilon

// Errors.
var (
	ErrUnknownStrategy  = optim.ErrUnknownStrategy
	ErrGradientMismatch = optim.ErrGradientMismatch
	ErrInvalidConfig    = optim.ErrInvalidConfig
)

// NewStrategy builds the strategy named by cfg.
func NewStrategy(cfg StrategyConfig) (Strategy, error) {
	return optim.NewStrategy(cfg)
}

// Strategies

// Backprop computes gradients with the delta rule.
type Backprop = optim.Backprop

// FiniteDifference estimates gradients numerically.
type FiniteDifference = optim.FiniteDifference

// Autodiff differentiates a scalar graph of the cost.
type Autodiff = optim.Autodiff

// ParallelBackprop shards backprop over worker replicas.
type ParallelBackprop = optim.ParallelBackprop

// NewParallelBackprop creates a parallel strategy. workers <= 0 uses one
// worker per CPU.
func NewParallelBackprop(workers int) *ParallelBackprop {
	return optim.NewParallelBackprop(workers)
}

// Training

// Config represents the trainer configuration.
type Config = optim.Config

// Progress describes one completed iteration.
type Progress = optim.Progress

// Result is the outcome of a training run.
type Result = optim.Result

// Trainer runs full-batch gradient descent.
type Trainer = optim.Trainer

// NewTrainer creates a trainer, filling defaults for zero fields.
//
// Example:
//
//	trainer := optim.NewTrainer(optim.Config{LearningRate: 0.5, Iterations: 100})
//	result, err := trainer.Train(net, data)
func NewTrainer(cfg Config) *Trainer {
	return optim.NewTrainer(cfg)
}

// Fit creates a network from sizes and gen and trains it on data.
func Fit(sizes []int, gen nn.Generator, data nn.Dataset, cfg Config) (*nn.Network, *Result, error) {
	return optim.Fit(sizes, gen, data, cfg)
}

// GradientReport summarizes a gradient check.
type GradientReport = optim.GradientReport

// CheckGradients compares Backprop against FiniteDifference.
func CheckGradients(net *nn.Network, data nn.Dataset, epsilon, tol float64) (GradientReport, error) {
	return optim.CheckGradients(net, data, epsilon, tol)
}
