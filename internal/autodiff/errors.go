package autodiff

import "errors"

var (
	// ErrUnknownNode is returned when a NodeID does not belong to the graph.
	ErrUnknownNode = errors.New("autodiff: unknown node")

	// ErrArity is returned when an operation receives the wrong number of inputs.
	ErrArity = errors.New("autodiff: wrong number of operation inputs")

	// ErrNotLeaf is returned when the value of a computed node is assigned.
	ErrNotLeaf = errors.New("autodiff: node is not a leaf")
)
