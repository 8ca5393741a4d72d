// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the dense float64 matrices used by the network.
//
// A Matrix is a thin wrapper over gonum's mat.Dense with row access that
// aliases the backing storage, so hot loops never allocate:
//
//	w, _ := matrix.FromRows([][]float64{{0.5}, {0.5}, {0.5}})
//	x, _ := matrix.FromRows([][]float64{{1, 0, 1}})
//	y, _ := matrix.Multiply(x, w) // 1×1
package matrix

import "github.com/born-ml/perceptron/internal/matrix"

// Matrix is a dense row-major float64 matrix.
type Matrix = matrix.Matrix

// Errors returned by constructors and arithmetic.
var (
	ErrBadShape      = matrix.ErrBadShape
	ErrShapeMismatch = matrix.ErrShapeMismatch
	ErrAliasedOutput = matrix.ErrAliasedOutput
)

// New creates a rows×cols matrix filled in row-major order by gen.
func New(rows, cols int, gen func() float64) (*Matrix, error) {
	return matrix.New(rows, cols, gen)
}

// Zeros creates a rows×cols matrix of zeros.
func Zeros(rows, cols int) (*Matrix, error) {
	return matrix.Zeros(rows, cols)
}

// Filled creates a rows×cols matrix with every cell set to v.
func Filled(rows, cols int, v float64) (*Matrix, error) {
	return matrix.Filled(rows, cols, v)
}

// FromRows copies rows into a new matrix. All rows must have equal length.
func FromRows(rows [][]float64) (*Matrix, error) {
	return matrix.FromRows(rows)
}

// Multiply returns a × b.
func Multiply(a, b *Matrix) (*Matrix, error) {
	return matrix.Multiply(a, b)
}

// MultiplyInto writes a × b into out. out must not share storage with a or b.
func MultiplyInto(a, b, out *Matrix) error {
	return matrix.MultiplyInto(a, b, out)
}
