// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import "github.com/born-ml/perceptron/internal/nn"

// Network is a feedforward chain of sigmoid layers.
type Network = nn.Network

// Layer is a fully connected sigmoid layer.
type Layer = nn.Layer

// Model holds one weight matrix per layer.
type Model = nn.Model

// Example is one (input, expected output) pair.
type Example = nn.Example

// Dataset is an ordered collection of examples.
type Dataset = nn.Dataset

// Generator produces initial weights, one call per weight.
type Generator = nn.Generator

// Errors.
var (
	ErrShapeMismatch         = nn.ErrShapeMismatch
	ErrEmptyDataset          = nn.ErrEmptyDataset
	ErrInvalidLayerSpec      = nn.ErrInvalidLayerSpec
	ErrNoAccumulatedGradient = nn.ErrNoAccumulatedGradient
	ErrNotForwarded          = nn.ErrNotForwarded
	ErrDeltaNotComputed      = nn.ErrDeltaNotComputed
)

// NewNetwork creates a network with len(sizes)-1 layers whose weights are
// drawn from gen.
//
// Example:
//
//	net, err := nn.NewNetwork([]int{2, 3, 1}, nn.Uniform(-1, 1))
func NewNetwork(sizes []int, gen Generator) (*Network, error) {
	return nn.NewNetwork(sizes, gen)
}

// NewRandomNetwork creates a network with weights drawn from U[0, 1).
func NewRandomNetwork(sizes []int) (*Network, error) {
	return nn.NewRandomNetwork(sizes)
}

// NewNetworkFromModel creates a network whose weights are copies of model.
func NewNetworkFromModel(model Model) (*Network, error) {
	return nn.NewNetworkFromModel(model)
}

// NewLayer creates a single layer.
func NewLayer(inputSize, outputSize int, gen Generator) (*Layer, error) {
	return nn.NewLayer(inputSize, outputSize, gen)
}

// NewDataset pairs inputs[i] with outputs[i].
func NewDataset(inputs, outputs [][]float64) (Dataset, error) {
	return nn.NewDataset(inputs, outputs)
}

// Generators

// Constant returns a generator that always yields v.
func Constant(v float64) Generator { return nn.Constant(v) }

// Uniform returns a generator drawing from U[min, max).
func Uniform(min, max float64) Generator { return nn.Uniform(min, max) }

// Random returns a generator drawing from U[0, 1).
func Random() Generator { return nn.Random() }

// Sequence returns a generator yielding start+step, start+2*step, ...
func Sequence(start, step float64) Generator { return nn.Sequence(start, step) }

// Activations

// Sigmoid returns 1 / (1 + e^-x).
func Sigmoid(x float64) float64 { return nn.Sigmoid(x) }

// SigmoidDerivative returns a * (1 - a) for an activation a = Sigmoid(x).
func SigmoidDerivative(a float64) float64 { return nn.SigmoidDerivative(a) }
