// Package matrix implements the dense 2D float64 container used by the
// training engine.
//
// A Matrix is a thin wrapper around a gonum *mat.Dense that adds:
//   - Construction from a value generator (random or constant initialization)
//   - Lazy, restartable row and column iteration without copying
//   - In-place arithmetic that reports dimension mismatches as errors
//   - MultiplyInto, which writes a product into a caller-owned, pre-sized buffer
//
// Binary operations never broadcast: operands must have exactly the
// documented shapes or ErrShapeMismatch is returned.
package matrix

import (
	"fmt"
	"iter"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense rows×cols grid of float64 values.
//
// Element (r, c) is independently addressable. Views created by View share
// storage with their parent; every other constructor allocates fresh storage.
type Matrix struct {
	dense *mat.Dense
	root  *mat.Dense // storage owner, used for alias detection
}

// New creates a rows×cols matrix and fills every cell, row by row, from gen.
//
// Returns ErrBadShape if rows or cols is not positive.
func New(rows, cols int, gen func() float64) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadShape, rows, cols)
	}
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = gen()
	}
	d := mat.NewDense(rows, cols, data)
	return &Matrix{dense: d, root: d}, nil
}

// Zeros creates a zero-filled rows×cols matrix.
func Zeros(rows, cols int) (*Matrix, error) {
	return Filled(rows, cols, 0)
}

// Filled creates a rows×cols matrix with every cell set to v.
func Filled(rows, cols int, v float64) (*Matrix, error) {
	return New(rows, cols, func() float64 { return v })
}

// FromRows creates a matrix from a slice of equally sized rows.
// The input is copied.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty rows", ErrBadShape)
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrBadShape, i, len(row), cols)
		}
		data = append(data, row...)
	}
	d := mat.NewDense(len(rows), cols, data)
	return &Matrix{dense: d, root: d}, nil
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (rows, cols int) {
	return m.dense.Dims()
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	r, _ := m.dense.Dims()
	return r
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	_, c := m.dense.Dims()
	return c
}

// At returns the element at (row, col). Panics if the index is out of range.
func (m *Matrix) At(row, col int) float64 {
	return m.dense.At(row, col)
}

// Set sets the element at (row, col). Panics if the index is out of range.
func (m *Matrix) Set(row, col int, v float64) {
	m.dense.Set(row, col, v)
}

// RawRow returns the backing slice of row i. Writes through it are visible
// in the matrix.
func (m *Matrix) RawRow(i int) []float64 {
	return m.dense.RawRowView(i)
}

// Row returns a lazy sequence over the values of row i.
//
// The sequence reads the live matrix every time it is ranged over, so it can
// be restarted and always observes the current values.
func (m *Matrix) Row(i int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for _, v := range m.dense.RawRowView(i) {
			if !yield(v) {
				return
			}
		}
	}
}

// Column returns a lazy sequence over the values of column j.
func (m *Matrix) Column(j int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		raw := m.dense.RawMatrix()
		if j < 0 || j >= raw.Cols {
			panic(mat.ErrColAccess)
		}
		for i := 0; i < raw.Rows; i++ {
			if !yield(raw.Data[i*raw.Stride+j]) {
				return
			}
		}
	}
}

// View returns the sub-matrix [r0, r1) × [c0, c1) sharing storage with m.
func (m *Matrix) View(r0, r1, c0, c1 int) *Matrix {
	return &Matrix{
		dense: m.dense.Slice(r0, r1, c0, c1).(*mat.Dense),
		root:  m.root,
	}
}

// Clone returns a deep copy of m with its own storage.
func (m *Matrix) Clone() *Matrix {
	d := mat.DenseCopyOf(m.dense)
	return &Matrix{dense: d, root: d}
}

// Dense exposes m as a read-only gonum matrix.
func (m *Matrix) Dense() mat.Matrix {
	return m.dense
}

// SameShape reports whether m and other have identical dimensions.
func (m *Matrix) SameShape(other *Matrix) bool {
	r1, c1 := m.Dims()
	r2, c2 := other.Dims()
	return r1 == r2 && c1 == c2
}

// Equal reports whether m and other have the same shape and elements.
func (m *Matrix) Equal(other *Matrix) bool {
	return mat.Equal(m.dense, other.dense)
}

// EqualApprox reports whether m and other have the same shape and every
// element pair is within tol (absolute or relative).
func (m *Matrix) EqualApprox(other *Matrix, tol float64) bool {
	return mat.EqualApprox(m.dense, other.dense, tol)
}

// String formats the matrix for debugging.
func (m *Matrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(m.dense, mat.Squeeze()))
}

func (m *Matrix) shapeError(op string, other *Matrix) error {
	r1, c1 := m.Dims()
	r2, c2 := other.Dims()
	return fmt.Errorf("%w: %s %dx%d with %dx%d", ErrShapeMismatch, op, r1, c1, r2, c2)
}
