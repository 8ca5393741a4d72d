package autodiff

// Backward computes d(root)/d(node) for every node at or before root and
// adds it to the node's gradient.
//
// Algorithm:
//  1. Seed root's adjoint with 1
//  2. Walk nodes from root down to index 0
//  3. For each computed node, add its adjoint times the local derivative
//     into each input's adjoint
//  4. Add every adjoint into the stored gradient
//
// A node used by several consumers receives the sum of their contributions.
// Calling Backward twice without ZeroGrad accumulates both results.
func (g *Graph) Backward(root NodeID) error {
	if g.err != nil {
		return g.err
	}
	if err := g.check(root); err != nil {
		return err
	}

	n := int(root) + 1
	if cap(g.adjoint) < n {
		g.adjoint = make([]float64, n)
	}
	adj := g.adjoint[:n]
	for i := range adj {
		adj[i] = 0
	}
	adj[root] = 1

	var in, grads [maxArity]float64
	for i := int(root); i >= 0; i-- {
		nd := &g.nodes[i]
		if nd.op == nil || adj[i] == 0 {
			continue
		}
		arity := nd.op.Arity()
		for k := 0; k < arity; k++ {
			in[k] = g.nodes[nd.inputs[k]].value
		}
		nd.op.Backward(in[:arity], nd.value, adj[i], grads[:arity])
		for k := 0; k < arity; k++ {
			adj[nd.inputs[k]] += grads[k]
		}
	}

	for i, a := range adj {
		g.nodes[i].grad += a
	}
	return nil
}
