package matrix

import (
	"fmt"
)

// Add performs m += other element-wise.
func (m *Matrix) Add(other *Matrix) error {
	if !m.SameShape(other) {
		return m.shapeError("add", other)
	}
	m.dense.Add(m.dense, other.dense)
	return nil
}

// Sub performs m -= other element-wise.
func (m *Matrix) Sub(other *Matrix) error {
	if !m.SameShape(other) {
		return m.shapeError("sub", other)
	}
	m.dense.Sub(m.dense, other.dense)
	return nil
}

// CopyFrom overwrites m with the contents of other.
func (m *Matrix) CopyFrom(other *Matrix) error {
	if !m.SameShape(other) {
		return m.shapeError("copy", other)
	}
	m.dense.Copy(other.dense)
	return nil
}

// Scale multiplies every element by s in place.
func (m *Matrix) Scale(s float64) {
	m.dense.Scale(s, m.dense)
}

// Map applies fn to every element in place.
func (m *Matrix) Map(fn func(float64) float64) {
	rows := m.Rows()
	for i := 0; i < rows; i++ {
		row := m.dense.RawRowView(i)
		for j, v := range row {
			row[j] = fn(v)
		}
	}
}

// Fill sets every element to v.
func (m *Matrix) Fill(v float64) {
	rows := m.Rows()
	for i := 0; i < rows; i++ {
		row := m.dense.RawRowView(i)
		for j := range row {
			row[j] = v
		}
	}
}

// Zero sets every element to 0.
func (m *Matrix) Zero() {
	m.dense.Zero()
}

// MultiplyInto computes out = a × b.
//
// out must already be a.Rows()×b.Cols() and must not share storage with a
// or b. No memory is allocated, which is what lets the training loop reuse
// the same buffers for every example.
func MultiplyInto(a, b, out *Matrix) error {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		return fmt.Errorf("%w: multiply %dx%d by %dx%d", ErrShapeMismatch, ar, ac, br, bc)
	}
	or, oc := out.Dims()
	if or != ar || oc != bc {
		return fmt.Errorf("%w: product is %dx%d, output buffer is %dx%d", ErrShapeMismatch, ar, bc, or, oc)
	}
	if out.root == a.root || out.root == b.root {
		return ErrAliasedOutput
	}
	out.dense.Mul(a.dense, b.dense)
	return nil
}

// Multiply returns a newly allocated a × b.
func Multiply(a, b *Matrix) (*Matrix, error) {
	out, err := Zeros(a.Rows(), b.Cols())
	if err != nil {
		return nil, err
	}
	if err := MultiplyInto(a, b, out); err != nil {
		return nil, err
	}
	return out, nil
}
