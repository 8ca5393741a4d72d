// Package autodiff implements reverse-mode automatic differentiation over
// scalar expression graphs.
//
// Nodes live in an arena and are referenced by index. An operation can only
// consume nodes that already exist, so arena order is a topological order
// and Backward is a single reverse sweep over the indices.
//
// Example:
//
//	g := autodiff.New()
//	w, x, b := g.Value(0.5), g.Value(2), g.Value(0.1)
//	y := g.Sigmoid(g.Add(g.Mul(w, x), b))
//	if err := g.Backward(y); err != nil {
//	    return err
//	}
//	dw, _ := g.Grad(w)
package autodiff

import (
	"fmt"

	"github.com/born-ml/perceptron/internal/autodiff/ops"
)

// maxArity bounds the number of inputs any operation may take.
const maxArity = 2

// NodeID identifies a node by its index in the graph arena.
type NodeID int

// InvalidNode is returned by operations once the graph has failed.
const InvalidNode NodeID = -1

type node struct {
	value  float64
	grad   float64
	op     ops.Operation // nil for leaves
	inputs [maxArity]NodeID
}

// Graph is an arena of expression nodes.
//
// Building operations do not return errors. The first failure (an unknown
// input or a wrong input count) is recorded, every later operation returns
// InvalidNode, and Err and Backward report it.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	nodes   []node
	adjoint []float64 // per-Backward scratch
	err     error
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodes: make([]node, 0, 64)}
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Err returns the first error recorded while building the graph.
func (g *Graph) Err() error { return g.err }

// Reset removes every node and clears the recorded error. Capacity is kept
// so the arena can be rebuilt without reallocating.
func (g *Graph) Reset() {
	g.nodes = g.nodes[:0]
	g.err = nil
}

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

func (g *Graph) check(id NodeID) error {
	if !g.valid(id) {
		return fmt.Errorf("%w: %d (graph has %d nodes)", ErrUnknownNode, id, len(g.nodes))
	}
	return nil
}

func (g *Graph) fail(err error) NodeID {
	if g.err == nil {
		g.err = err
	}
	return InvalidNode
}

// Value adds a leaf holding v.
func (g *Graph) Value(v float64) NodeID {
	g.nodes = append(g.nodes, node{value: v, inputs: [maxArity]NodeID{InvalidNode, InvalidNode}})
	return NodeID(len(g.nodes) - 1)
}

// Apply adds a node computing op over inputs.
func (g *Graph) Apply(op ops.Operation, inputs ...NodeID) NodeID {
	if g.err != nil {
		return InvalidNode
	}
	if len(inputs) != op.Arity() || len(inputs) > maxArity {
		return g.fail(fmt.Errorf("%w: %s takes %d, got %d", ErrArity, op.Name(), op.Arity(), len(inputs)))
	}

	n := node{op: op, inputs: [maxArity]NodeID{InvalidNode, InvalidNode}}
	var in [maxArity]float64
	for i, id := range inputs {
		if err := g.check(id); err != nil {
			return g.fail(fmt.Errorf("%s input %d: %w", op.Name(), i, err))
		}
		n.inputs[i] = id
		in[i] = g.nodes[id].value
	}
	n.value = op.Forward(in[:len(inputs)])

	g.nodes = append(g.nodes, n)
	return NodeID(len(g.nodes) - 1)
}

// Add returns a + b.
func (g *Graph) Add(a, b NodeID) NodeID { return g.Apply(ops.AddOp{}, a, b) }

// Sub returns a - b.
func (g *Graph) Sub(a, b NodeID) NodeID { return g.Apply(ops.SubOp{}, a, b) }

// Mul returns a * b.
func (g *Graph) Mul(a, b NodeID) NodeID { return g.Apply(ops.MulOp{}, a, b) }

// Sigmoid returns σ(x).
func (g *Graph) Sigmoid(x NodeID) NodeID { return g.Apply(ops.SigmoidOp{}, x) }

// Data returns the forward value of id.
func (g *Graph) Data(id NodeID) (float64, error) {
	if err := g.check(id); err != nil {
		return 0, err
	}
	return g.nodes[id].value, nil
}

// Grad returns the gradient accumulated into id by Backward.
func (g *Graph) Grad(id NodeID) (float64, error) {
	if err := g.check(id); err != nil {
		return 0, err
	}
	return g.nodes[id].grad, nil
}

// SetValue replaces the value of leaf id. Computed nodes keep their old
// values until Recompute.
func (g *Graph) SetValue(id NodeID, v float64) error {
	if err := g.check(id); err != nil {
		return err
	}
	if g.nodes[id].op != nil {
		return fmt.Errorf("%w: %d is %s", ErrNotLeaf, id, g.nodes[id].op.Name())
	}
	g.nodes[id].value = v
	return nil
}

// Recompute re-evaluates every computed node in arena order.
func (g *Graph) Recompute() {
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.op == nil {
			continue
		}
		arity := n.op.Arity()
		var in [maxArity]float64
		for k := 0; k < arity; k++ {
			in[k] = g.nodes[n.inputs[k]].value
		}
		n.value = n.op.Forward(in[:arity])
	}
}

// ZeroGrad clears every node's gradient.
func (g *Graph) ZeroGrad() {
	for i := range g.nodes {
		g.nodes[i].grad = 0
	}
}
