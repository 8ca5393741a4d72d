package matrix

import "errors"

// Sentinel errors returned by matrix operations. Callers match them with errors.Is.
var (
	// ErrBadShape is returned when a requested shape is invalid (rows or cols <= 0, ragged rows).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrShapeMismatch indicates incompatible operand dimensions, e.g. Add with
	// different shapes or MultiplyInto where a.Cols != b.Rows.
	ErrShapeMismatch = errors.New("matrix: dimension mismatch")

	// ErrAliasedOutput is returned when the output buffer of MultiplyInto shares
	// storage with one of its operands.
	ErrAliasedOutput = errors.New("matrix: output aliases an operand")
)
