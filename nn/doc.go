// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides fully connected sigmoid networks trained with
// full-batch gradient descent on mean squared error.
//
// # Overview
//
// This package contains:
//   - Network: an ordered chain of sigmoid layers
//   - Layer: one weight matrix with its bias row and training buffers
//   - Dataset: (input, expected) pairs
//   - Generators: Constant, Uniform, Random, Sequence
//   - Model: the weight matrices of a network, for saving and cloning
//
// # Basic Usage
//
//	import "github.com/born-ml/perceptron/nn"
//
//	func main() {
//	    net, _ := nn.NewNetwork([]int{2, 3, 1}, nn.Random())
//	    data, _ := nn.NewDataset(
//	        [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
//	        [][]float64{{0}, {1}, {1}, {0}},
//	    )
//
//	    costs, _ := net.Train(data, 1000, 0.5)
//	    out, _ := net.Forward([]float64{1, 0})
//	}
//
// # Weight Layout
//
// A layer mapping n inputs to m outputs stores an (n+1)×m matrix. Row i < n
// holds the weights leaving input neuron i, row n holds the bias weights.
// Generators fill the matrices layer by layer in row-major order.
//
// # Cost
//
// Cost is the mean over examples of each example's mean squared error
// across output neurons. Backward differentiates the per-example summed
// squared error, so training descends OutputSize() times Cost. Use the optim
// package to pick between gradient strategies.
package nn
