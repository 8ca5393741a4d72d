// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over
// scalar expression graphs.
//
// Example:
//
//	g := autodiff.New()
//	x := g.Value(2)
//	w := g.Value(0.5)
//	y := g.Sigmoid(g.Mul(x, w))
//	err := g.Backward(y)
//	dw, _ := g.Grad(w)
package autodiff

import "github.com/born-ml/perceptron/internal/autodiff"

// Graph records scalar operations for differentiation.
type Graph = autodiff.Graph

// NodeID identifies a node within a Graph.
type NodeID = autodiff.NodeID

// InvalidNode is returned by builders once the graph has an error.
const InvalidNode = autodiff.InvalidNode

// Errors.
var (
	ErrUnknownNode = autodiff.ErrUnknownNode
	ErrArity       = autodiff.ErrArity
	ErrNotLeaf     = autodiff.ErrNotLeaf
)

// New creates an empty graph.
func New() *Graph {
	return autodiff.New()
}
