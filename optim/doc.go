// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient strategies and the trainer that applies
// them.
//
// # Overview
//
// This package contains:
//   - Backprop: analytic gradients from the layers' delta rule
//   - ParallelBackprop: Backprop sharded over worker replicas
//   - FiniteDifference: forward-difference numeric gradients
//   - Autodiff: gradients from a reverse-mode scalar graph of the cost
//   - Trainer: full-batch gradient descent driven by any Strategy
//   - CheckGradients: Backprop versus FiniteDifference comparison
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/perceptron/nn"
//	    "github.com/born-ml/perceptron/optim"
//	)
//
//	func main() {
//	    net, _ := nn.NewNetwork([]int{2, 3, 1}, nn.Random())
//
//	    trainer := optim.NewTrainer(optim.Config{
//	        LearningRate: 0.5,
//	        Iterations:   1000,
//	        Strategy:     optim.NewParallelBackprop(4),
//	    })
//	    result, _ := trainer.Train(net, data)
//	    fmt.Println(result.FinalCost())
//	}
//
// # Strategies
//
// Every strategy returns the gradient of the same objective: each example's
// squared error summed over output neurons, averaged over the dataset. That
// is nn.Network.Cost times the output width, and it is what Network.Train
// descends, so strategies can be swapped without retuning the learning rate.
package optim
